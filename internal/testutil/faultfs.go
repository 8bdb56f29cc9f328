package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/htmlindexer/internal/fsys"
)

// FaultFS wraps a filesystem and returns injected errors for chosen paths.
// Paths are compared after filepath.Clean. It also records every write.
type FaultFS struct {
	Base fsys.FS

	StatErrs    map[string]error
	ReadDirErrs map[string]error
	ReadErrs    map[string]error
	WriteErrs   map[string]error

	mu     sync.Mutex
	writes []string
}

// NewFaultFS wraps the host filesystem.
func NewFaultFS() *FaultFS {
	return &FaultFS{
		Base:        fsys.New(),
		StatErrs:    map[string]error{},
		ReadDirErrs: map[string]error{},
		ReadErrs:    map[string]error{},
		WriteErrs:   map[string]error{},
	}
}

func lookup(m map[string]error, path string) error {
	if m == nil {
		return nil
	}
	return m[filepath.Clean(path)]
}

func (f *FaultFS) Stat(path string) (fs.FileInfo, error) {
	if err := lookup(f.StatErrs, path); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return f.Base.Stat(path)
}

func (f *FaultFS) ReadDir(path string) ([]string, error) {
	if err := lookup(f.ReadDirErrs, path); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: err}
	}
	return f.Base.ReadDir(path)
}

func (f *FaultFS) ReadFile(path string) ([]byte, error) {
	if err := lookup(f.ReadErrs, path); err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return f.Base.ReadFile(path)
}

func (f *FaultFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := lookup(f.WriteErrs, path); err != nil {
		return &fs.PathError{Op: "open", Path: path, Err: err}
	}
	f.mu.Lock()
	f.writes = append(f.writes, filepath.Clean(path))
	f.mu.Unlock()
	return f.Base.WriteFile(path, data, perm)
}

func (f *FaultFS) Exists(path string) (bool, error) {
	if err := lookup(f.StatErrs, path); err != nil {
		return false, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return f.Base.Exists(path)
}

// Writes returns the cleaned paths written so far, in order.
func (f *FaultFS) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}
