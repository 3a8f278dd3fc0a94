// Package project provides the file tree the generator reads from and writes to
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var ErrInvalidPath = errors.New("invalid project path")

// Tree is a project file tree addressed by slash-separated relative paths.
type Tree interface {
	// Exists reports whether a regular file exists at p
	Exists(p string) bool

	// Read returns the full text of the file at p
	Read(p string) (string, error)

	// Overwrite replaces the content of an existing file
	Overwrite(p, content string) error

	// Write creates the file at p, or replaces it if it already exists
	Write(p, content string) error
}

// Clean validates a tree path and returns its canonical form.
func Clean(p string) (string, error) {
	if p == "" || path.IsAbs(p) || filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	c := path.Clean(filepath.ToSlash(p))
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return c, nil
}

// DiskTree is a Tree rooted at a directory on disk.
type DiskTree struct {
	root string
}

// NewDiskTree creates a tree rooted at root.
func NewDiskTree(root string) *DiskTree {
	return &DiskTree{root: root}
}

// Root returns the directory the tree is rooted at.
func (t *DiskTree) Root() string {
	return t.root
}

func (t *DiskTree) abs(p string) (string, error) {
	c, err := Clean(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(t.root, filepath.FromSlash(c)), nil
}

func (t *DiskTree) Exists(p string) bool {
	full, err := t.abs(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

func (t *DiskTree) Read(p string) (string, error) {
	full, err := t.abs(p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", p, err)
	}
	return string(data), nil
}

func (t *DiskTree) Overwrite(p, content string) error {
	if !t.Exists(p) {
		return fmt.Errorf("cannot overwrite %s: %w", p, fs.ErrNotExist)
	}
	return t.Write(p, content)
}

func (t *DiskTree) Write(p, content string) error {
	full, err := t.abs(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("%s: failed to ensure parent directory exists: %w", p, err)
	}

	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return fmt.Errorf("%s: error while writing file: %w", p, err)
	}
	return nil
}

// MemTree is an in-memory Tree.
type MemTree struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMemTree creates a tree holding files, keyed by path.
func NewMemTree(files map[string]string) *MemTree {
	t := &MemTree{files: make(map[string]string, len(files))}
	for p, content := range files {
		if c, err := Clean(p); err == nil {
			t.files[c] = content
		}
	}
	return t
}

func (t *MemTree) Exists(p string) bool {
	c, err := Clean(p)
	if err != nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.files[c]
	return ok
}

func (t *MemTree) Read(p string) (string, error) {
	c, err := Clean(p)
	if err != nil {
		return "", err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	content, ok := t.files[c]
	if !ok {
		return "", fmt.Errorf("failed to read %s: %w", p, fs.ErrNotExist)
	}
	return content, nil
}

func (t *MemTree) Overwrite(p, content string) error {
	c, err := Clean(p)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.files[c]; !ok {
		return fmt.Errorf("cannot overwrite %s: %w", p, fs.ErrNotExist)
	}
	t.files[c] = content
	return nil
}

func (t *MemTree) Write(p, content string) error {
	c, err := Clean(p)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.files[c] = content
	t.mu.Unlock()
	return nil
}

// Paths returns every file path in the tree, sorted.
func (t *MemTree) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	paths := make([]string, 0, len(t.files))
	for p := range t.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
