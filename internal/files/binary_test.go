package files

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBinaryBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"leading NUL", []byte{0x00, 'a', 'b'}, true},
		{"printable ascii with newlines", []byte("hello\nworld\r\n\tindent\n"), false},
		{"bell character", []byte("ding\x07"), true},
		{"escape character", []byte("\x1b[31mred"), true},
		{"utf-8 multibyte", []byte("héllo wörld"), false},
		{"DEL is not a control byte below space", []byte("a\x7fb"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBinaryBytes(tt.data))
		})
	}
}

func TestIsBinaryBytes_OnlyFirstKilobyte(t *testing.T) {
	data := append(bytes.Repeat([]byte("a"), 1024), 0x00)
	assert.False(t, IsBinaryBytes(data))

	data = append(bytes.Repeat([]byte("a"), 1023), 0x00)
	assert.True(t, IsBinaryBytes(data))
}

func TestIsBinary_File(t *testing.T) {
	bin, err := IsBinary(MemFile{Name: "img.png", Content: "\x89PNG\r\n\x1a\n\x00"})
	require.NoError(t, err)
	assert.True(t, bin)

	bin, err = IsBinary(MemFile{Name: "a.txt", Content: "plain text\n"})
	require.NoError(t, err)
	assert.False(t, bin)
}

type failingFile struct{}

func (failingFile) Path() string                 { return "broken" }
func (failingFile) Open() (io.ReadCloser, error) { return nil, errors.New("permission denied") }

func TestIsBinary_OpenError(t *testing.T) {
	_, err := IsBinary(failingFile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

type namedFailingFile struct{ name string }

func (f namedFailingFile) Path() string                 { return f.name }
func (namedFailingFile) Open() (io.ReadCloser, error) { return nil, errors.New("read failed") }
