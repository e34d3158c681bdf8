package files

import (
	"io"
	"io/fs"
	"strings"

	"github.com/jonathan/filebridge/internal/types"
)

// File is a project file known by its relative path whose content can be read on demand.
type File interface {
	Path() string
	Open() (io.ReadCloser, error)
}

// MemFile is a File held in memory.
type MemFile struct {
	Name    string
	Content string
}

// Path returns the file's relative path.
func (f MemFile) Path() string { return f.Name }

// Open returns a reader over the file's content.
func (f MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.Content)), nil
}

// FSFile is a File backed by an fs.FS.
type FSFile struct {
	FS   fs.FS
	Name string
}

// Path returns the file's path within its file system.
func (f FSFile) Path() string { return f.Name }

// Open opens the file in its file system.
func (f FSFile) Open() (io.ReadCloser, error) {
	return f.FS.Open(f.Name)
}

// FromFileSet wraps every entry of set as a MemFile, in insertion order.
func FromFileSet(set *types.FileSet) []File {
	paths := set.Paths()
	out := make([]File, 0, len(paths))
	for _, p := range paths {
		lf, _ := set.Get(p)
		out = append(out, MemFile{Name: p, Content: lf.Content})
	}
	return out
}
