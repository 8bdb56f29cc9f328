// Package fsys defines the filesystem operations the indexer needs as an
// injectable capability, so tests can substitute failures without touching
// real permissions.
package fsys

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the set of filesystem operations used by traversal and generation.
type FS interface {
	Stat(path string) (fs.FileInfo, error)
	// ReadDir returns the names of the immediate children of path.
	ReadDir(path string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Exists(path string) (bool, error)
}

// OS implements FS on top of the host filesystem.
type OS struct{}

// New returns the host filesystem.
func New() OS { return OS{} }

func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (OS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from the traversal of the requested root.
	return os.ReadFile(path)
}

func (OS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsSkippable reports whether err is a not-found or permission-denied error,
// the two conditions traversal treats as local to a subtree.
func IsSkippable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
