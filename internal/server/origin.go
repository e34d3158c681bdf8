package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// validateRoot checks that a configured root is a parseable URL or path.
func validateRoot(root string) error {
	if root == "" {
		return nil
	}
	if _, err := url.Parse(root); err != nil {
		return &ErrRootURL{Root: root, Cause: err}
	}
	return nil
}

// requestOrigin returns "proto://host/" for r, honoring forwarding headers set by a proxy.
func requestOrigin(r *http.Request) string {
	proto := firstHeaderValue(r, "X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}

	host := firstHeaderValue(r, "X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	return fmt.Sprintf("%s://%s/", strings.ToLower(proto), host)
}

// firstHeaderValue returns the first comma-separated entry of a header.
func firstHeaderValue(r *http.Request, name string) string {
	v := r.Header.Get(name)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

// resolveRoot returns the absolute root URL for a request. An absolute configured
// root is used as is; an empty or relative one is resolved against the request origin.
func resolveRoot(configured string, r *http.Request) (string, error) {
	ref, err := url.Parse(configured)
	if err != nil {
		return "", &ErrRootURL{Root: configured, Cause: err}
	}
	if ref.IsAbs() {
		return configured, nil
	}

	origin, err := url.Parse(requestOrigin(r))
	if err != nil || origin.Host == "" {
		if err == nil {
			err = fmt.Errorf("request has no host")
		}
		return "", &ErrRootURL{Root: configured, Cause: err}
	}
	return origin.ResolveReference(ref).String(), nil
}
