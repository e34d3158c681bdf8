package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/filebridge/internal/types"
)

// apiMarker is the substring that classifies a resolved URL as an authenticated API call.
const apiMarker = "api/"

// Header names attached to API requests.
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRole          = "role"
	HeaderDatabase      = "database"
)

// ResolveURL resolves path against root using standard base+relative URL semantics.
// Relative paths resolve under the root; absolute URLs replace it entirely.
func ResolveURL(root, path string) (string, error) {
	base, err := url.Parse(root)
	if err != nil {
		return "", fmt.Errorf("invalid root URL %q: %w", root, err)
	}
	if !base.IsAbs() {
		return "", fmt.Errorf("invalid root URL %q: not absolute", root)
	}

	ref, err := url.Parse(escapeStrayPercents(path))
	if err != nil {
		return "", fmt.Errorf("invalid file path %q: %w", path, err)
	}

	return base.ResolveReference(ref).String(), nil
}

// escapeStrayPercents rewrites each '%' not starting a valid escape as "%25",
// so a literal percent in a file name survives parsing.
func escapeStrayPercents(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// IsAPIURL reports whether a resolved URL should be treated as an authenticated API call.
func IsAPIURL(resolved string) bool {
	return strings.Contains(resolved, apiMarker)
}

// AuthHeaders builds the headers for an API request. Content-Type is always set;
// each credential header is attached only when its field is present.
func AuthHeaders(creds *types.Credentials) map[string]string {
	headers := map[string]string{
		HeaderContentType: "application/json",
	}
	if creds == nil {
		return headers
	}

	if creds.Token != "" {
		headers[HeaderAuthorization] = "Bearer " + creds.Token
	}
	if creds.Role != "" {
		headers[HeaderRole] = creds.Role
	}
	if creds.Database != "" {
		headers[HeaderDatabase] = creds.Database
	}

	return headers
}
