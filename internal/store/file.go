package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File keeps the slot in a small YAML document, e.g. `highScore: "9250"`.
// Other keys in the document are preserved on write.
type File struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewFile returns a slot stored at path under key. The file is created on first Set.
func NewFile(path, key string) *File {
	return &File{path: path, key: key}
}

// Get reads the slot; a missing file or key reports ok=false.
func (f *File) Get(_ context.Context) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return 0, false, err
	}
	text, ok := doc[f.key]
	if !ok {
		return 0, false, nil
	}
	n, err := parseScore(text)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Set writes the slot through a temp file and rename.
func (f *File) Set(_ context.Context, score int) error {
	text, err := formatScore(score)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[f.key] = text
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }

func (f *File) read() (map[string]string, error) {
	doc := map[string]string{}
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, f.path, err)
	}
	if doc == nil {
		doc = map[string]string{}
	}
	return doc, nil
}
