package files

import (
	"fmt"
	"io"
)

// binarySniffLen is how many leading bytes are inspected by IsBinary.
const binarySniffLen = 1024

// IsBinaryBytes reports whether data looks binary: it holds a NUL byte or a
// control character other than tab, line feed or carriage return.
// Only the first 1024 bytes are inspected. This is a heuristic; a binary file
// whose first kilobyte looks like text is reported as text.
func IsBinaryBytes(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	for _, b := range data {
		if b == 0 || (b < 0x20 && b != '\t' && b != '\n' && b != '\r') {
			return true
		}
	}
	return false
}

// IsBinary applies IsBinaryBytes to the first 1024 bytes of f.
func IsBinary(f File) (bool, error) {
	rc, err := f.Open()
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", f.Path(), err)
	}
	defer func() { _ = rc.Close() }()

	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("failed to read %s: %w", f.Path(), err)
	}
	return IsBinaryBytes(buf[:n]), nil
}
