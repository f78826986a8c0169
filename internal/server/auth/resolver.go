package auth

import (
	"context"
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// KeyResolver returns the public key that signed a token with the given kid.
type KeyResolver interface {
	Resolve(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// TrustedCertificate is the certificate of the Auth0 tenant issuing tokens
// for the todo application.
const TrustedCertificate = `-----BEGIN CERTIFICATE-----
MIIDCzCCAfOgAwIBAgIJUftSC1hDAN0VMA0GCSqGSIb3DQEBCwUAMCMxITAfBgNV
BAMTGHVkYWNpdHkyMDIxLmV1LmF1dGgwLmNvbTAeFw0yMTA4MjcxMTU4MjVaFw0z
NTA1MDYxMTU4MjVaMCMxITAfBgNVBAMTGHVkYWNpdHkyMDIxLmV1LmF1dGgwLmNv
bTCCASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEBANfA1DpowpNIUtNRqfc+
6hZIzkMUgGdS96CzT9ivz/KlbxvQXW2ELYrcMcXGsug6MLpN7ET0X1qT64QKsxkq
kCpnXvGIX9Gb1b9YpHFatdU2o6s67dPWS51/1chkuIPtIxlczViA5HWBxgKaZ+gf
LQZW5w5hABgsF+thVFgeVThiUiKabD+iNxmkTp3nJgFTWjJBhPnlv47hsXtbEtBY
/XRAjr22/TEgWnTPYJgqEWoTJdi8+No8rQdENMtHKj9leH/zDz6TPJ7mnZtZ/5Cx
YM7p0JLZHUHtcTXhdWEyLvEjtyUl/S/s9f+3sBv836gL90MzcbBJQGr1FvCE9bQg
bOkCAwEAAaNCMEAwDwYDVR0TAQH/BAUwAwEB/zAdBgNVHQ4EFgQUG9b561w06WTC
UBS0znI6l/WQbYgwDgYDVR0PAQH/BAQDAgKEMA0GCSqGSIb3DQEBCwUAA4IBAQDA
9AUvH0M3dw/v/pLq6nfTqfqyMN/laUnxisgL7jXb3uZx9f/pKrlOpgqSl+1JXxNy
+aNACEBxxPniU1Z+BLnFeFYIqbbZnmgyKHWzMIL6FlguJ9QVLAEkPSqyMQxMP72w
BTi5kqswFnQ5QUlRfLB8Rluf+NJ7T7sPkcT7nSusGd4ZKyGT2nHM5RYqPuE89kSu
XwNcJbFd+jn0LrjCJew9JG8iIujWWEn91tChNH4XO3C5PmRn5wamKT4Zl9hfBVeH
gnPMjlAbi8jpyEkzaABn/irpbaqL/LMK/rcPfwKb8O0E+yoEpTVGt5fyuGaYOpKa
BPkJNlR8R3GdFNroiUEp
-----END CERTIFICATE-----`

// StaticResolver always returns one fixed key, whatever the kid.
type StaticResolver struct {
	key *rsa.PublicKey
}

// NewStaticResolver parses a PEM encoded certificate or PKIX public key.
func NewStaticResolver(pemData string) (*StaticResolver, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("parse trusted key: %w", err)
	}
	return &StaticResolver{key: key}, nil
}

func (r *StaticResolver) Resolve(_ context.Context, _ string) (*rsa.PublicKey, error) {
	return r.key, nil
}
