// Package auth resolves the current owner identity for a request. The
// ledger itself never trusts a client-supplied owner field; everything is
// derived from the presented credential.
package auth

import (
	"fmt"
	"strings"
)

// Provider maps a bearer token to an owner identity.
type Provider interface {
	// OwnerForToken returns the owner the token belongs to, or false when
	// the token is unknown.
	OwnerForToken(token string) (string, bool)
}

// StaticProvider authenticates against a fixed token->owner map loaded
// from configuration. It stands in for the hosted identity service in
// local and single-tenant deployments.
type StaticProvider struct {
	tokens map[string]string
}

func NewStaticProvider(tokens map[string]string) *StaticProvider {
	copied := make(map[string]string, len(tokens))
	for token, owner := range tokens {
		copied[token] = owner
	}
	return &StaticProvider{tokens: copied}
}

func (p *StaticProvider) OwnerForToken(token string) (string, bool) {
	owner, ok := p.tokens[token]
	return owner, ok
}

// ParseTokenPairs parses the AUTH_TOKENS format: comma-separated
// token:owner pairs, e.g. "s3cret:alice,t0ken:bob".
func ParseTokenPairs(s string) (map[string]string, error) {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, owner, found := strings.Cut(pair, ":")
		token = strings.TrimSpace(token)
		owner = strings.TrimSpace(owner)
		if !found || token == "" || owner == "" {
			return nil, fmt.Errorf("malformed token pair %q: want token:owner", pair)
		}
		if _, dup := tokens[token]; dup {
			return nil, fmt.Errorf("duplicate token in auth configuration")
		}
		tokens[token] = owner
	}
	return tokens, nil
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
