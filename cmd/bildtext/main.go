// bildtext prints photo captions built from embedded camera metadata.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/bildtext/pkg/caption"
	"github.com/tstromberg/bildtext/pkg/exif"
)

var (
	width     = flag.Int("width", caption.DefaultMaxWidth, "maximum caption line width, in columns")
	sep       = flag.String("sep", caption.DefaultSeparator, "separator between caption chunks on a line")
	sidecars  = flag.Bool("sidecars", false, "apply title and description overrides from Google Takeout JSON sidecars")
	watchFlag = flag.Bool("watch", false, "watch inputs for changes and print updated captions")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() == 0 {
		klog.Exitf("usage: %s [flags] <file-or-dir> ...", os.Args[0])
	}

	c := caption.Config{MaxWidth: *width, Separator: *sep}
	if err := run(os.Stdout, c, flag.Args(), *sidecars, *watchFlag); err != nil {
		klog.Exitf("%v", err)
	}
}

// run captions every image under inputs, then optionally watches them for changes.
func run(w io.Writer, c caption.Config, inputs []string, sidecars bool, watching bool) error {
	paths, err := exif.Find(inputs...)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}

	r, err := exif.NewReader(sidecars)
	if err != nil {
		return fmt.Errorf("reader: %w", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			klog.Errorf("close: %v", err)
		}
	}()
	klog.V(1).Infof("describing %d images ...", len(paths))

	failed := 0
	for _, p := range paths {
		if err := describe(w, r, c, p); err != nil {
			klog.Errorf("%v", err)
			failed++
		}
	}
	if failed > 0 {
		klog.Warningf("%d of %d images have no caption", failed, len(paths))
	}

	if !watching {
		return nil
	}
	if err := watch(w, r, c, inputs); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// describe reads the image at path and writes its caption to w.
func describe(w io.Writer, r *exif.Reader, c caption.Config, path string) error {
	m, err := r.Read(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	cp, err := c.Describe(m)
	if err != nil {
		if errors.Is(err, caption.ErrMissingTimestamp) {
			return fmt.Errorf("skipping: %w", err)
		}
		return fmt.Errorf("describe: %w", err)
	}

	_, err = io.WriteString(w, format(path, cp))
	return err
}

// format renders a caption as an indented block headed by its path.
func format(path string, c caption.Caption) string {
	var b strings.Builder
	b.WriteString(path + "\n")
	if t, ok := c.Title.Get(); ok && t != "" {
		fmt.Fprintf(&b, "  # %s\n", t)
	}
	if c.Description != "" {
		for _, l := range strings.Split(c.Description, "\n") {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// watchDirs returns the directories to watch for the given inputs.
func watchDirs(inputs []string) ([]string, error) {
	dirs := []string{}
	for _, in := range inputs {
		st, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("stat: %w", err)
		}
		if !st.IsDir() {
			dirs = append(dirs, filepath.Dir(in))
			continue
		}

		dirs = append(dirs, in)
		paths, err := exif.Find(in)
		if err != nil {
			return nil, fmt.Errorf("find: %w", err)
		}
		for _, p := range paths {
			dirs = append(dirs, filepath.Dir(p))
		}
	}

	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

// changedImage returns the image affected by an event, if any. Sidecar changes map to their image.
func changedImage(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}

	p := event.Name
	for _, suffix := range []string{".supplemental-metadata.json", ".json"} {
		if strings.HasSuffix(p, suffix) {
			p = strings.TrimSuffix(p, suffix)
			break
		}
	}
	return p, exif.Supported(p)
}

// newDir returns the directory created by an event, if any. Dotted directories are skipped like in exif.Find.
func newDir(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) || strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}
	st, err := os.Stat(event.Name)
	if err != nil || !st.IsDir() {
		return "", false
	}
	return event.Name, true
}

// watch watches the inputs for changes and prints updated captions.
func watch(out io.Writer, r *exif.Reader, c caption.Config, inputs []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	dirs, err := watchDirs(inputs)
	if err != nil {
		return err
	}

	klog.Infof("watching %d dirs ...", len(dirs))
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("add %s: %w", d, err)
		}
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %s", event)
			if d, ok := newDir(event); ok {
				klog.Infof("watching new dir %s", d)
				if err := w.Add(d); err != nil {
					klog.Errorf("add %s: %v", d, err)
				}
				continue
			}
			p, ok := changedImage(event)
			if !ok {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				klog.V(1).Infof("ignoring %s: %v", p, err)
				continue
			}
			if err := describe(out, r, c, p); err != nil {
				klog.Errorf("%v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
