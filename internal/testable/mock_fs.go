package testable

import (
	"io/fs"
	"os"
	"path/filepath"
)

// MockFileSystem is a test double for FileSystem. Each method has a
// corresponding function field. When the field is non-nil, the mock calls it;
// otherwise, it falls through to OsFileSystem.
//
// Scanner tests mostly need a file that enumerates fine but cannot be read;
// ReadErrors covers that without a custom ReadFileFn.
type MockFileSystem struct {
	// ReadErrors maps a file base name to the error ReadFile returns for
	// every file with that name. It is consulted before ReadFileFn.
	ReadErrors map[string]error

	AbsFn          func(path string) (string, error)
	EvalSymlinksFn func(path string) (string, error)
	StatFn         func(name string) (os.FileInfo, error)
	ReadFileFn     func(name string) ([]byte, error)
	WalkDirFn      func(root string, fn fs.WalkDirFunc) error
	CreateFn       func(name string) (*os.File, error)
	WriteFileFn    func(name string, data []byte, perm os.FileMode) error
}

// osFS backs every method whose function field is nil.
var osFS OsFileSystem

// Abs calls AbsFn if set, otherwise the real file system.
func (m *MockFileSystem) Abs(path string) (string, error) {
	if m.AbsFn == nil {
		return osFS.Abs(path)
	}
	return m.AbsFn(path)
}

// EvalSymlinks calls EvalSymlinksFn if set, otherwise the real file system.
func (m *MockFileSystem) EvalSymlinks(path string) (string, error) {
	if m.EvalSymlinksFn == nil {
		return osFS.EvalSymlinks(path)
	}
	return m.EvalSymlinksFn(path)
}

// Stat calls StatFn if set, otherwise the real file system.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn == nil {
		return osFS.Stat(name)
	}
	return m.StatFn(name)
}

// ReadFile fails for names listed in ReadErrors, then calls ReadFileFn if
// set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := m.ReadErrors[filepath.Base(name)]; ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	if m.ReadFileFn == nil {
		return osFS.ReadFile(name)
	}
	return m.ReadFileFn(name)
}

// WalkDir calls WalkDirFn if set, otherwise the real file system.
func (m *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	if m.WalkDirFn == nil {
		return osFS.WalkDir(root, fn)
	}
	return m.WalkDirFn(root, fn)
}

// Create calls CreateFn if set, otherwise the real file system.
func (m *MockFileSystem) Create(name string) (*os.File, error) {
	if m.CreateFn == nil {
		return osFS.Create(name)
	}
	return m.CreateFn(name)
}

// WriteFile calls WriteFileFn if set, otherwise the real file system.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn == nil {
		return osFS.WriteFile(name, data, perm)
	}
	return m.WriteFileFn(name, data, perm)
}

var _ FileSystem = (*MockFileSystem)(nil)
