package exif

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

var imageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".heif": true,
	".tif":  true,
	".tiff": true,
}

// Supported reports whether path looks like an image exiftool can describe.
func Supported(path string) bool {
	return imageExt[strings.ToLower(filepath.Ext(path))]
}

// Find returns the images in the given files and directories. Directories are walked recursively, skipping dotfiles.
func Find(roots ...string) ([]string, error) {
	found := []string{}

	for _, root := range roots {
		st, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat: %w", err)
		}

		if !st.IsDir() {
			found = append(found, root)
			continue
		}

		err = godirwalk.Walk(root, &godirwalk.Options{
			Callback: func(path string, de *godirwalk.Dirent) error {
				if path != root && strings.HasPrefix(filepath.Base(path), ".") {
					return godirwalk.SkipThis
				}
				if de.IsDir() || !Supported(path) {
					return nil
				}
				klog.V(1).Infof("found %s", path)
				found = append(found, path)
				return nil
			},
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return found, nil
}
