package exif

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tstromberg/bildtext/pkg/caption"
	"k8s.io/klog/v2"
)

// TakeoutSidecar is a JSON file for EXIF overrides that is compatible with Google Takeout.
type TakeoutSidecar struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// sidecarPaths returns candidate sidecar locations for an image, in order of preference.
func sidecarPaths(path string) []string {
	return []string{
		path + ".json",
		path + ".supplemental-metadata.json",
	}
}

// ReadSidecar returns the sidecar for the image at path, or nil if there is none.
func ReadSidecar(path string) (*TakeoutSidecar, error) {
	for _, p := range sidecarPaths(path) {
		bs, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		s := &TakeoutSidecar{}
		if err := json.Unmarshal(bs, s); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", p, err)
		}
		klog.V(1).Infof("found sidecar %s: %+v", p, *s)
		return s, nil
	}
	return nil, nil
}

// Apply overrides the title and description of m with non-empty sidecar values.
// Takeout fills in the file name as a title when none was set, so that is ignored.
func (s *TakeoutSidecar) Apply(m *caption.Metadata, path string) {
	if t := strings.TrimSpace(s.Title); t != "" && t != filepath.Base(path) {
		m.Title = caption.Some(t)
	}
	if d := strings.TrimSpace(s.Description); d != "" {
		m.Description = caption.Some(d)
	}
}
