package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the decoded token claims. Subject identifies the user.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier checks RS256 signatures with keys obtained from a KeyResolver.
type Verifier struct {
	resolver KeyResolver
	parser   *jwt.Parser
}

func NewVerifier(r KeyResolver) *Verifier {
	return &Verifier{
		resolver: r,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})),
	}
}

// Verify parses the Authorization header value and verifies its token.
func (v *Verifier) Verify(ctx context.Context, header string) (*Claims, error) {
	token, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}
	return v.VerifyToken(ctx, token)
}

// VerifyToken checks the signature and the registered time claims of a raw
// token. All failures match common.ErrInvalidToken.
func (v *Verifier) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.resolver.Resolve(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", common.ErrInvalidToken)
	}

	return claims, nil
}
