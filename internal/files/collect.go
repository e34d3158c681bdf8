package files

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/jonathan/filebridge/internal/types"
)

// MaxFiles is the default cap on includable files in a collected directory.
const MaxFiles = 1000

// Skip reasons reported in Collection.Skipped.
const (
	SkipIgnored = "ignored"
	SkipBinary  = "binary"
)

// TooManyFilesError is returned when a directory holds more includable files than allowed.
type TooManyFilesError struct {
	Limit int
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("directory contains more than %d files after applying ignore rules", e.Limit)
}

// SkippedFile records a file left out of a Collection.
type SkippedFile struct {
	Path   string
	Reason string
}

// Collection is the set of text files gathered from a directory.
type Collection struct {
	Files   []File
	Skipped []SkippedFile
}

// Collect walks fsys, dropping ignored paths and binary files.
// Ignored directories are not descended into. A maxFiles of zero or less uses MaxFiles.
func Collect(fsys fs.FS, rules *IgnoreRules, maxFiles int) (*Collection, error) {
	if rules == nil {
		rules = DefaultIgnoreRules()
	}
	if maxFiles <= 0 {
		maxFiles = MaxFiles
	}

	var included []File
	c := &Collection{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			if rules.Ignores(p) {
				return fs.SkipDir
			}
			return nil
		}
		if rules.Ignores(p) {
			c.Skipped = append(c.Skipped, SkippedFile{Path: p, Reason: SkipIgnored})
			return nil
		}
		included = append(included, FSFile{FS: fsys, Name: p})
		if len(included) > maxFiles {
			return &TooManyFilesError{Limit: maxFiles}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, f := range included {
		binary, err := IsBinary(f)
		if err != nil {
			return nil, err
		}
		if binary {
			c.Skipped = append(c.Skipped, SkippedFile{Path: f.Path(), Reason: SkipBinary})
			continue
		}
		c.Files = append(c.Files, f)
	}

	return c, nil
}

// FileSet reads every collected file into a FileSet, in walk order.
func (c *Collection) FileSet() (*types.FileSet, error) {
	set := types.NewFileSet()
	for _, f := range c.Files {
		content, err := readAll(f)
		if err != nil {
			return nil, err
		}
		set.Set(f.Path(), types.LoadedFile{Content: content})
	}
	return set, nil
}

func readAll(f File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Path(), err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Path(), err)
	}
	return string(data), nil
}
