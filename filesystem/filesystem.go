// Package filesystem is the file access seam of msgformat. Config discovery
// and the lint walk read through it, so tests can substitute an in-memory
// tree for the disk.
package filesystem

import (
	"io/fs"
	"os"
)

// FileSystem is the subset of file access msgformat needs. Paths are
// slash-separated and relative to the root, as io/fs requires.
type FileSystem interface {
	Open(name string) (fs.File, error)
	ReadFile(name string) ([]byte, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	Exists(name string) bool
}

// WrappedFS adapts any fs.FS, such as an fstest.MapFS, to FileSystem.
type WrappedFS struct {
	FS fs.FS
}

// NewWrappedFS roots a FileSystem at a directory on disk.
func NewWrappedFS(root string) *WrappedFS {
	return &WrappedFS{FS: os.DirFS(root)}
}

func (w *WrappedFS) Open(name string) (fs.File, error) {
	return w.FS.Open(name)
}

func (w *WrappedFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(w.FS, name)
}

func (w *WrappedFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(w.FS, root, fn)
}

// Exists reports whether name is a regular file. Directories, invalid
// paths such as "../x" or "/abs", and unreadable entries all count as absent.
func (w *WrappedFS) Exists(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(w.FS, name)
	return err == nil && info.Mode().IsRegular()
}
