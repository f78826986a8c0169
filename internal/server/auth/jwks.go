package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var errUnknownKID = errors.New("no signing key for kid")

const (
	// minRefreshInterval bounds how often unknown kids may trigger a refetch.
	minRefreshInterval = time.Minute
	maxJWKSBytes       = 1 << 20
)

type jwk struct {
	Kid string   `json:"kid"`
	Kty string   `json:"kty"`
	Use string   `json:"use"`
	X5c []string `json:"x5c"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// JWKSResolver fetches RSA signing keys from a JSON Web Key Set endpoint and
// caches them by kid. An unknown kid triggers a single refetch, at most once
// per minRefreshInterval.
type JWKSResolver struct {
	url    string
	client *http.Client
	now    func() time.Time

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	lastFetch time.Time
}

// NewJWKSResolver creates a resolver for url. A nil client means http.DefaultClient.
func NewJWKSResolver(url string, client *http.Client) *JWKSResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &JWKSResolver{url: url, client: client, now: time.Now, keys: map[string]*rsa.PublicKey{}}
}

func (r *JWKSResolver) Resolve(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := r.cached(kid); ok {
		return key, nil
	}

	if !r.claimRefresh() {
		return nil, fmt.Errorf("%w %q", errUnknownKID, kid)
	}

	if err := r.refresh(ctx); err != nil {
		return nil, err
	}

	if key, ok := r.cached(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownKID, kid)
}

func (r *JWKSResolver) cached(kid string) (*rsa.PublicKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.keys[kid]
	return key, ok
}

// claimRefresh reserves the next fetch slot. It fails while the previous
// fetch is younger than minRefreshInterval.
func (r *JWKSResolver) claimRefresh() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if !r.lastFetch.IsZero() && now.Sub(r.lastFetch) < minRefreshInterval {
		return false
	}
	r.lastFetch = now
	return true
}

func (r *JWKSResolver) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %s", resp.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJWKSBytes)).Decode(&set); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Use != "sig" || k.Kty != "RSA" || k.Kid == "" || len(k.X5c) == 0 {
			continue
		}
		key, err := publicKeyFromX5c(k.X5c[0])
		if err != nil {
			return fmt.Errorf("key %q: %w", k.Kid, err)
		}
		keys[k.Kid] = key
	}

	r.mu.Lock()
	r.keys = keys
	r.mu.Unlock()

	return nil
}

// publicKeyFromX5c decodes a base64 (standard, not URL) DER certificate.
func publicKeyFromX5c(encoded string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate does not hold an RSA key")
	}
	return key, nil
}
