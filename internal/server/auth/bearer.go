// Package auth verifies RS256 bearer tokens presented in the Authorization
// header. Signing keys come from a KeyResolver: either the embedded trusted
// certificate or a JWKS endpoint.
package auth

import (
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", common.ErrMissingHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", common.ErrInvalidHeaderFormat
	}

	return parts[1], nil
}
