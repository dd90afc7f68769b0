package config

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"bylaws/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report archive. When destination cannot be created
// report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, seen: make(map[string]int)}, nil
}

// item is either in-memory data or a file which is read when report is
// finalized (logs keep growing until program ends).
type item struct {
	name  string
	path  string
	data  []byte
	stamp time.Time
}

// Report accumulates debug information for a single program run: processed
// configuration, logs, decoded sources, layout dumps, validation reports and
// produced documents. Nil report accepts and ignores everything.
// NOTE: not to be used concurrently!
type Report struct {
	file  *os.File
	items []item
	seen  map[string]int
}

// Close writes the archive.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	err = r.finalize()
	return multierr.Append(err, r.file.Close())
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store schedules file to be put into report under name.
func (r *Report) Store(name, file string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	r.add(item{name: name, path: file})
}

// StoreData puts data into report under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.add(item{name: name, data: data, stamp: time.Now()})
}

// StoreYAML puts v serialized as YAML into report under name.
func (r *Report) StoreYAML(name string, v any) error {
	if r == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to marshal %s for report: %w", name, err)
	}
	r.StoreData(name, data)
	return nil
}

// StoreJSON puts v serialized as indented JSON into report under name.
func (r *Report) StoreJSON(name string, v any) error {
	if r == nil {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal %s for report: %w", name, err)
	}
	r.StoreData(name, data)
	return nil
}

// add keeps every item, repeated names (same source file name in different
// directories) get numeric suffix before extension: "layout-rules~2.txt".
func (r *Report) add(it item) {
	name := filepath.ToSlash(it.name)
	if r.seen == nil {
		r.seen = make(map[string]int)
	}
	r.seen[name]++
	if n := r.seen[name]; n > 1 {
		ext := path.Ext(name)
		name = fmt.Sprintf("%s~%d%s", strings.TrimSuffix(name, ext), n, ext)
	}
	it.name = name
	r.items = append(r.items, it)
}

func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	now := time.Now()
	items := slices.Clone(r.items)
	slices.SortStableFunc(items, func(a, b item) int {
		switch {
		case natural.Less(a.name, b.name):
			return -1
		case natural.Less(b.name, a.name):
			return 1
		}
		return 0
	})

	var manifest bytes.Buffer
	fmt.Fprintf(&manifest, "%s %s (%s)\n", misc.GetAppName(), misc.GetVersion(), misc.GetGitHash())
	for _, it := range items {
		if it.stamp.IsZero() {
			it.stamp = now
		}
		fmt.Fprintf(&manifest, "%s\t%s\t%s\n", it.stamp.UTC().Format(time.RFC3339), it.name, it.path)
	}
	if err := addFile(arc, "MANIFEST", now, &manifest); err != nil {
		return err
	}

	for _, it := range items {
		if it.path == "" {
			if err := addFile(arc, it.name, it.stamp, bytes.NewReader(it.data)); err != nil {
				return err
			}
			continue
		}
		// files which never got created (no panic happened) are skipped
		f, err := os.Open(it.path)
		if err != nil {
			continue
		}
		stamp := now
		if info, err := f.Stat(); err == nil {
			stamp = info.ModTime()
		}
		err = addFile(arc, it.name, stamp, f)
		if err = multierr.Append(err, f.Close()); err != nil {
			return err
		}
	}
	return nil
}

func addFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	return nil
}
