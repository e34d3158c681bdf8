// Package middleware provides HTTP middleware for the loader endpoints.
package middleware

import (
	"context"
	"net/http"

	"github.com/jonathan/filebridge/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// credentialsKey is the context key for the credentials parsed from cookies.
const credentialsKey ContextKey = "credentials"

// Cookie names mirrored from browser storage by the client.
const (
	TokenCookie    = "yardi_token"
	RoleCookie     = "yardi_role"
	DatabaseCookie = "yardi_database"
)

// CredentialsFromCookies reads the credential triple from the request's cookies.
// Missing or empty cookies leave the matching field absent; nil is returned when none are set.
func CredentialsFromCookies(r *http.Request) *types.Credentials {
	creds := &types.Credentials{
		Token:    cookieValue(r, TokenCookie),
		Role:     cookieValue(r, RoleCookie),
		Database: cookieValue(r, DatabaseCookie),
	}
	if creds.IsZero() {
		return nil
	}
	return creds
}

// cookieValue returns the raw value of the named cookie, or "" if absent.
// The client writes values without encoding, so none is undone here.
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// CredentialsMiddleware parses credential cookies and stores them in the request context.
// Requests without credentials pass through unchanged; nothing is rejected here.
func CredentialsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds := CredentialsFromCookies(r)
		if creds == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), credentialsKey, creds)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCredentials returns the credentials stored by CredentialsMiddleware, or nil.
func GetCredentials(r *http.Request) *types.Credentials {
	creds, _ := r.Context().Value(credentialsKey).(*types.Credentials)
	return creds
}

// CredentialsKey returns the context key for credentials (for testing purposes).
func CredentialsKey() ContextKey {
	return credentialsKey
}
