package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LoadedFile holds the verbatim content of a single retrieved file.
type LoadedFile struct {
	Content string `json:"content"`
}

// FileSet maps file paths to their content and remembers insertion order,
// so serialized output is reproducible for a given input.
type FileSet struct {
	order []string
	files map[string]LoadedFile
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]LoadedFile)}
}

// Set stores content under path. Re-setting an existing path replaces its
// content but keeps its original position.
func (s *FileSet) Set(path string, file LoadedFile) {
	if s.files == nil {
		s.files = make(map[string]LoadedFile)
	}
	if _, ok := s.files[path]; !ok {
		s.order = append(s.order, path)
	}
	s.files[path] = file
}

// Get returns the file stored under path.
func (s *FileSet) Get(path string) (LoadedFile, bool) {
	if s == nil {
		return LoadedFile{}, false
	}
	f, ok := s.files[path]
	return f, ok
}

// Has reports whether path is present.
func (s *FileSet) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Paths returns the stored paths in insertion order.
func (s *FileSet) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of stored files.
func (s *FileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// MarshalJSON renders the set as a JSON object whose keys follow insertion order.
func (s *FileSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, path := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(path)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.files[path])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of path -> {content}, keeping document order.
func (s *FileSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("file set must be a JSON object")
	}

	*s = FileSet{files: make(map[string]LoadedFile)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected file set key %v", tok)
		}
		var file LoadedFile
		if err := dec.Decode(&file); err != nil {
			return fmt.Errorf("file %q: %w", path, err)
		}
		s.Set(path, file)
	}
	_, err = dec.Token()
	return err
}

// LoadFailure records why a single path was omitted from a load result.
type LoadFailure struct {
	Path       string `json:"path"`
	URL        string `json:"url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason"`
}

// LoadResult is the outcome of a batch load: the files that were retrieved
// and a record for every path that was not.
type LoadResult struct {
	Files    *FileSet      `json:"files"`
	Failures []LoadFailure `json:"failures,omitempty"`
}
