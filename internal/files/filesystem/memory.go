package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements Provider for in-memory testing. It models a
// single flat directory of files.
type MemoryFileSystem struct {
	root  string
	files map[string]*memoryFile // bare file name -> file
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
// The root path is normalized to forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		root:  path.Clean(filepath.ToSlash(root)),
		files: make(map[string]*memoryFile),
	}
}

// AddFile adds a file with the given bare name under the root directory.
func (m *MemoryFileSystem) AddFile(name string, content []byte) {
	m.AddFileWithTime(name, content, time.Now())
}

// AddFileWithTime adds a file with an explicit modification time.
func (m *MemoryFileSystem) AddFileWithTime(name string, content []byte, modTime time.Time) {
	m.files[name] = &memoryFile{
		content: content,
		info: &memoryFileInfo{
			name:    name,
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	f, ok := m.files[m.bareName(p)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", p, fs.ErrNotExist)
	}
	return f.content, nil
}

func (m *MemoryFileSystem) ReadDir(p string) ([]FileInfo, error) {
	if path.Clean(filepath.ToSlash(p)) != m.root {
		return nil, fmt.Errorf("directory not found: %s: %w", p, fs.ErrNotExist)
	}

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	// Deterministic order; the OS provider returns directory order instead.
	sort.Strings(names)

	result := make([]FileInfo, 0, len(names))
	for _, name := range names {
		result = append(result, m.files[name].info)
	}
	return result, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	if path.Clean(filepath.ToSlash(p)) == m.root {
		return &memoryFileInfo{name: path.Base(m.root), mode: 0755 | fs.ModeDir, isDir: true, modTime: time.Now()}, nil
	}
	f, ok := m.files[m.bareName(p)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", p, fs.ErrNotExist)
	}
	return f.info, nil
}

func (m *MemoryFileSystem) bareName(p string) string {
	return path.Base(filepath.ToSlash(p))
}
