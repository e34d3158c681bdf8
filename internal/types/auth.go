// Package types provides type definitions for structured data used throughout the filebridge system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Credentials is the optional (token, role, database) triple forwarded to API endpoints.
// Each field is independently optional; an empty string means the field is absent.
type Credentials struct {
	Token    string `json:"token,omitempty"`
	Role     string `json:"role,omitempty"`
	Database string `json:"database,omitempty"`
}

// IsZero reports whether none of the credential fields are present.
func (c *Credentials) IsZero() bool {
	return c == nil || (c.Token == "" && c.Role == "" && c.Database == "")
}

// FileLoadRequest describes a batch of relative paths to fetch from a root URL.
// Paths are expected to be de-duplicated by the caller; a later duplicate
// overwrites an earlier one in the result.
type FileLoadRequest struct {
	RootURL     string       `json:"root_url" validate:"required"`
	Paths       []string     `json:"paths" validate:"required,min=1,dive,required"`
	Credentials *Credentials `json:"credentials,omitempty"`
}

// Validate validates the FileLoadRequest using the validator.
func (r *FileLoadRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
