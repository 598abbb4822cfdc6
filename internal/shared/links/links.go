// Package links renders absolute URLs for the user resources from known route templates.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultPrefix is the route prefix used when none is configured.
const DefaultPrefix = "/api/v1"

const (
	userPathTemplate   = "/users/%d"
	activationTemplate = "/users/not-active/%d"
)

// Builder formats resource URLs under a public base URL and API prefix.
type Builder struct {
	baseURL string
	prefix  string
}

// NewBuilder validates the base URL and normalises the prefix.
func NewBuilder(baseURL, prefix string) (*Builder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid public base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.New("public base URL must be absolute")
	}
	return &Builder{baseURL: baseURL, prefix: NormalizePrefix(prefix)}, nil
}

// NormalizePrefix returns "" or a prefix with a single leading slash and no trailing slash.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// Prefix is the normalised route prefix.
func (b *Builder) Prefix() string { return b.prefix }

// User is the canonical URL of a single user.
func (b *Builder) User(id int64) string {
	return b.baseURL + b.prefix + fmt.Sprintf(userPathTemplate, id)
}

// Activation is the link mailed to a pending user.
func (b *Builder) Activation(id int64, token string) string {
	query := url.Values{"token": []string{token}}
	return b.baseURL + b.prefix + fmt.Sprintf(activationTemplate, id) + "?" + query.Encode()
}
