// Package caption turns camera metadata into a photo title and a short multi-line description.
package caption

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tstromberg/bildtext/pkg/textflow"
	"k8s.io/klog/v2"
)

// ErrMissingTimestamp is returned for metadata without a capture date.
var ErrMissingTimestamp = errors.New("missing timestamp")

var (
	// DefaultMaxWidth is the caption line width, in columns.
	DefaultMaxWidth = 20
	// DefaultSeparator joins chunks on a line.
	DefaultSeparator = ", "

	// unknownAperture is reported by Fujifilm bodies for non-electronic lenses.
	unknownAperture = 1.0
	settingsSep     = ", "
	profileLabel    = "Profile: "
)

// Metadata describes a photo as read from its embedded tags.
type Metadata struct {
	// Source identifies the record in errors, usually a file path.
	Source string

	CameraMake    Opt[string]
	CameraModel   Opt[string]
	CameraProfile Opt[string]

	Title       Opt[string]
	Description Opt[string]
	Location    Opt[string]

	Date      Opt[time.Time]
	LocalDate Opt[LocalDate]

	ExposureTime Opt[string]
	FNumber      Opt[string]
	FocalLength  Opt[float64]
	ISO          Opt[string]

	LensMake  Opt[string]
	LensModel Opt[string]
}

// Caption is a displayable title and description.
type Caption struct {
	Title       Opt[string]
	Description string
}

// Config holds caption layout settings.
type Config struct {
	MaxWidth  int
	Separator string
}

// DefaultConfig returns the default layout settings.
func DefaultConfig() Config {
	return Config{MaxWidth: DefaultMaxWidth, Separator: DefaultSeparator}
}

func (c Config) withDefaults() Config {
	if c.MaxWidth <= 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	return c
}

// Describe summarizes metadata using the default configuration.
func Describe(m Metadata) (Caption, error) {
	return DefaultConfig().Describe(m)
}

// Describe summarizes metadata into a title and description.
func (c Config) Describe(m Metadata) (Caption, error) {
	if !m.Date.OK() {
		src := m.Source
		if src == "" {
			src = "metadata"
		}
		return Caption{}, fmt.Errorf("%s: %w", src, ErrMissingTimestamp)
	}
	c = c.withDefaults()

	details := textflow.Render(textflow.Lines(c.MaxWidth, Chunks(m), c.Separator), c.Separator)

	parts := []string{}
	if details != "" {
		parts = append(parts, details)
	}
	if d, ok := text(m.Description); ok {
		parts = append(parts, d)
	}

	return Caption{
		Title:       m.Title,
		Description: strings.TrimSpace(strings.Join(parts, "\n")),
	}, nil
}

// Camera returns the normalized camera name.
func Camera(m Metadata) string {
	return CollapseWhitespace(m.CameraMake.Or("") + " " + m.CameraModel.Or(""))
}

// Lens returns the lens name without the camera brand and with prettified aperture markers.
func Lens(m Metadata) string {
	lens := CollapseWhitespace(m.LensMake.Or("") + " " + m.LensModel.Or(""))
	lens = TrimCommonPrefixWords(Camera(m), lens)
	return PrettifyAperture(lens)
}

// Settings returns exposure time, aperture, and ISO as one chunk.
func Settings(m Metadata, lens string) string {
	var s []string

	if et, ok := text(m.ExposureTime); ok {
		s = append(s, et+"s")
	}

	if raw, ok := text(m.FNumber); ok {
		fNum, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		switch {
		case err != nil:
			klog.V(1).Infof("%s: dropping unparseable f-number %q: %v", m.Source, raw, err)
		case fNum == unknownAperture:
			klog.V(2).Infof("%s: dropping f-number %q: lens reports no aperture", m.Source, raw)
		case LensSpecMatchesFNum(lens, fNum):
			klog.V(2).Infof("%s: f-number %q already in lens name %q", m.Source, raw, lens)
		default:
			s = append(s, FSymbol+raw)
		}
	}

	if iso, ok := text(m.ISO); ok {
		s = append(s, "ISO "+iso)
	}

	return strings.Join(s, settingsSep)
}

// Chunks returns the indivisible pieces of a caption, in display order, without empties.
func Chunks(m Metadata) []string {
	var chunks []string
	add := func(ss ...string) {
		for _, s := range ss {
			if s != "" {
				chunks = append(chunks, s)
			}
		}
	}

	if ld, ok := m.LocalDate.Get(); ok {
		if s, ok := FormatLocalDate(ld); ok {
			add(s)
		} else {
			klog.V(1).Infof("%s: dropping invalid local date %v", m.Source, ld)
		}
	}

	if loc, ok := text(m.Location); ok {
		add(loc)
	}

	add(Camera(m))

	lens := Lens(m)
	if fl, ok := m.FocalLength.Get(); ok && lens != "" && fl != 0 {
		add(SummarizeLensFocalLength(lens, fl)...)
	} else {
		add(lens)
	}

	add(Settings(m, lens))

	if raw, ok := text(m.CameraProfile); ok {
		if p, ok := ParseCameraProfile(raw); ok {
			add(profileLabel + p)
		} else {
			klog.V(2).Infof("%s: ignoring unrecognized camera profile %q", m.Source, raw)
		}
	}

	return chunks
}
