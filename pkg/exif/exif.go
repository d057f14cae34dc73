// Package exif reads caption metadata from image files using exiftool.
package exif

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/tstromberg/bildtext/pkg/caption"
	"k8s.io/klog/v2"
)

var (
	exifDate   = "2006:01:02 15:04:05"
	exifOffset = "-07:00"
)

// Reader extracts caption metadata from image files.
type Reader struct {
	et       *exiftool.Exiftool
	sidecars bool
}

// NewReader starts an exiftool process. If sidecars is set, Takeout JSON sidecars override titles and descriptions.
func NewReader(sidecars bool) (*Reader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Reader{et: et, sidecars: sidecars}, nil
}

// Close stops the exiftool process.
func (r *Reader) Close() error {
	return r.et.Close()
}

// Read returns the metadata for the image at path.
func (r *Reader) Read(path string) (caption.Metadata, error) {
	fis := r.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return caption.Metadata{}, fmt.Errorf("no metadata for %q", path)
	}

	m, err := Convert(fis[0])
	if err != nil {
		return m, err
	}
	m.Source = path

	if !r.sidecars {
		return m, nil
	}

	s, err := ReadSidecar(path)
	if err != nil {
		klog.Warningf("unable to read sidecar for %s: %v", path, err)
		return m, nil
	}
	if s != nil {
		s.Apply(&m, path)
	}
	return m, nil
}

// Convert maps exiftool fields to caption metadata.
func Convert(fi exiftool.FileMetadata) (caption.Metadata, error) {
	m := caption.Metadata{Source: fi.File}

	if fi.Err != nil {
		return m, fmt.Errorf("extract fail for %q: %w", fi.File, fi.Err)
	}

	for k, v := range fi.Fields {
		klog.V(2).Infof("%q=%v", k, v)
	}

	m.CameraMake = str(fi, "Make")
	m.CameraModel = str(fi, "Model")
	m.CameraProfile = str(fi, "CameraProfile")
	m.LensMake = str(fi, "LensMake")
	m.LensModel = str(fi, "LensModel")

	m.Title = str(fi, "Headline", "Title")
	m.Description = str(fi, "ImageDescription", "Description")
	m.Location = location(fi)

	m.ExposureTime = str(fi, "ExposureTime")
	m.FNumber = str(fi, "FNumber")
	m.ISO = str(fi, "ISO")

	if fl, ok := str(fi, "FocalLength").Get(); ok {
		if v, err := parseFocalLength(fl); err == nil {
			m.FocalLength = caption.Some(v)
		} else {
			klog.V(1).Infof("unable to parse focal length for %s: %v", fi.File, err)
		}
	}

	ds, ok := str(fi, "DateTimeOriginal", "CreateDate").Get()
	if !ok {
		klog.V(1).Infof("no capture date for %s", fi.File)
		return m, nil
	}

	loc := time.UTC
	if off, ok := str(fi, "OffsetTimeOriginal", "OffsetTime").Get(); ok {
		if ot, err := time.Parse(exifOffset, off); err == nil {
			loc = ot.Location()
		} else {
			klog.V(1).Infof("unable to parse offset %q for %s: %v", off, fi.File, err)
		}
	}

	// Capture times are recorded as wall-clock values in the camera's zone.
	wall, err := time.Parse(exifDate, ds)
	if err != nil {
		return m, fmt.Errorf("parse time %q: %w", ds, err)
	}
	taken, err := time.ParseInLocation(exifDate, ds, loc)
	if err != nil {
		return m, fmt.Errorf("parse time %q: %w", ds, err)
	}

	m.Date = caption.Some(taken)
	m.LocalDate = caption.Some(caption.LocalDate{
		strconv.Itoa(wall.Year()),
		strconv.Itoa(int(wall.Month())),
		strconv.Itoa(wall.Day()),
		strconv.Itoa(wall.Hour()),
		strconv.Itoa(wall.Minute()),
		strconv.Itoa(wall.Second()),
	})
	return m, nil
}

// str returns the first non-empty field among keys.
func str(fi exiftool.FileMetadata, keys ...string) caption.Opt[string] {
	for _, k := range keys {
		s, err := fi.GetString(k)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return caption.Some(s)
		}
	}
	return caption.None[string]()
}

// location prefers an explicit location, falling back to "City, Country".
func location(fi exiftool.FileMetadata) caption.Opt[string] {
	if l, ok := str(fi, "Location", "Sub-location").Get(); ok {
		return caption.Some(l)
	}

	var parts []string
	for _, k := range []string{"City", "Country"} {
		if s, ok := str(fi, k).Get(); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return caption.None[string]()
	}
	return caption.Some(strings.Join(parts, ", "))
}

// parseFocalLength parses values such as "23.0 mm" or "23".
func parseFocalLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "mm"))
	return strconv.ParseFloat(s, 64)
}
