package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (jwt.MapClaims, error)
}

// JWKSVerifier verifies RS256 tokens against the tenant's published JWKS,
// checking audience and issuer. Keys are cached and refetched when an
// unknown kid shows up.
type JWKSVerifier struct {
	Domain   string
	Audience string

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time

	httpClient *http.Client
}

func NewJWKSVerifier(domain, audience string) *JWKSVerifier {
	return &JWKSVerifier{
		Domain:     domain,
		Audience:   audience,
		keys:       map[string]*rsa.PublicKey{},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *JWKSVerifier) Verify(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, v.keyFunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.Audience),
		jwt.WithIssuer(fmt.Sprintf("https://%s/", v.Domain)),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

func (v *JWKSVerifier) keyFunc(t *jwt.Token) (any, error) {
	kid, ok := t.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("token header missing kid")
	}

	key, err := v.lookupKey(kid)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (v *JWKSVerifier) lookupKey(kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok {
		return key, nil
	}

	// Unknown kid: refetch the key set, but not more than once a minute.
	if time.Since(v.fetchedAt) > time.Minute {
		if err := v.refreshLocked(); err != nil {
			return nil, err
		}
	}

	if key, ok := v.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("unable to find appropriate key")
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *JWKSVerifier) refreshLocked() error {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", v.Domain)
	resp, err := v.httpClient.Get(jwksURL)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch JWKS: status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := map[string]*rsa.PublicKey{}
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	v.keys = keys
	v.fetchedAt = time.Now()
	return nil
}

func rsaKeyFromJWK(nStr, eStr string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nStr)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eStr)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
