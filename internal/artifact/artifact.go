// Package artifact renders file sets into the assistant's artifact markup.
package artifact

import (
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/filebridge/internal/types"
)

// Title is the static title of every file artifact.
const Title = "User Updated Files"

// idLength is the number of base36 characters in a generated artifact id.
const idLength = 13

// Serialize wraps each file of files in a file action tagged with its path, inside
// an artifact tagged with id. Files appear in insertion order. Content is written
// verbatim; callers must make sure it does not close the markup early.
func Serialize(files *types.FileSet, id string) string {
	paths := files.Paths()
	actions := make([]string, 0, len(paths))
	for _, p := range paths {
		f, _ := files.Get(p)
		actions = append(actions, fileAction(p, f.Content))
	}

	var sb strings.Builder
	sb.WriteString("\n<boltArtifact id=\"")
	sb.WriteString(id)
	sb.WriteString("\" title=\"")
	sb.WriteString(Title)
	sb.WriteString("\">\n")
	sb.WriteString(strings.Join(actions, "\n"))
	sb.WriteString("\n</boltArtifact>\n  ")
	return sb.String()
}

func fileAction(path, content string) string {
	return "\n<boltAction type=\"file\" filePath=\"" + path + "\">\n" + content + "\n</boltAction>\n"
}

// NewID returns a short random artifact id of lowercase base36 characters.
func NewID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	if len(s) < idLength {
		s = strings.Repeat("0", idLength-len(s)) + s
	}
	return s[:idLength]
}
