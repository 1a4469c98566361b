/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package auth classifies and validates inbound bearer credentials before any
// protected logic runs. Structured (JWS) tokens are verified offline against
// the authorization server's JWK set; opaque tokens are passed through for
// the caller's own introspection logic.
package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

var logger = log.New("auth")

const (
	parsedTokenContextKey = "parsedAccessToken"
	bearerPrefix          = "Bearer "
	jwtPartsCount         = 3
)

// ParsedAccessToken is the request-scoped result of bearer classification.
// Claims are only populated for verified structured tokens.
type ParsedAccessToken struct {
	Claims          map[string]interface{}
	Active          bool
	AccessTokenHash string
}

// HTTPClient fetches the remote JWK set.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds token ingestor options.
type Config struct {
	IssuerURI        string
	JWKSetURI        string
	AllowedAudiences []string
	HTTPClient       HTTPClient
	KeySetCacheTTL   time.Duration
}

// TokenIngestor validates bearer tokens on protected routes.
type TokenIngestor struct {
	issuerURI        string
	jwkSetURI        string
	allowedAudiences []string
	httpClient       HTTPClient

	mu             sync.RWMutex
	keySet         *gojose.JSONWebKeySet
	keySetExpireAt time.Time
	keySetTTL      time.Duration
}

// NewTokenIngestor creates a TokenIngestor.
func NewTokenIngestor(config *Config) *TokenIngestor {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	ttl := config.KeySetCacheTTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}

	return &TokenIngestor{
		issuerURI:        config.IssuerURI,
		jwkSetURI:        config.JWKSetURI,
		allowedAudiences: config.AllowedAudiences,
		httpClient:       httpClient,
		keySetTTL:        ttl,
	}
}

// Middleware populates the request-scoped ParsedAccessToken. An absent
// bearer leaves the token inactive and lets downstream logic decide whether
// anonymous access is permitted; a structurally valid but unverifiable token
// is a hard 401 so that "no token" and "bad token" stay distinguishable.
func (i *TokenIngestor) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(e echo.Context) error {
			authorization := e.Request().Header.Get(echo.HeaderAuthorization)

			if !strings.HasPrefix(authorization, bearerPrefix) {
				setParsedToken(e, &ParsedAccessToken{Active: false})

				return next(e)
			}

			token := strings.TrimPrefix(authorization, bearerPrefix)

			if len(strings.Split(token, ".")) != jwtPartsCount {
				// Opaque token: resolution is deferred to the caller's own
				// authentication logic.
				setParsedToken(e, &ParsedAccessToken{Active: false, AccessTokenHash: TokenHash(token)})

				return next(e)
			}

			claims, err := i.verify(e, token)
			if err != nil {
				logger.Errorc(e.Request().Context(), "access token validation failed", log.WithError(err))

				return resterr.NewNotAuthenticatedError(err)
			}

			setParsedToken(e, &ParsedAccessToken{
				Claims:          claims,
				Active:          true,
				AccessTokenHash: TokenHash(token),
			})

			return next(e)
		}
	}
}

func (i *TokenIngestor) verify(e echo.Context, token string) (map[string]interface{}, error) {
	jws, err := gojose.ParseSigned(token)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	if len(jws.Signatures) != 1 {
		return nil, errors.New("access token must have exactly one signature")
	}

	keySet, err := i.resolveKeySet(e)
	if err != nil {
		return nil, fmt.Errorf("resolve key set: %w", err)
	}

	payload, err := verifyWithKeySet(jws, keySet)
	if err != nil {
		return nil, err
	}

	var claims map[string]interface{}

	if err = json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("decode access token claims: %w", err)
	}

	if err = i.verifyClaims(claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func verifyWithKeySet(jws *gojose.JSONWebSignature, keySet *gojose.JSONWebKeySet) ([]byte, error) {
	kid := jws.Signatures[0].Header.KeyID

	candidates := keySet.Keys
	if kid != "" {
		candidates = keySet.Key(kid)
	}

	for _, key := range candidates {
		if payload, err := jws.Verify(key.Key); err == nil {
			return payload, nil
		}
	}

	return nil, errors.New("access token signature verification failed")
}

//nolint:gocognit
func (i *TokenIngestor) verifyClaims(claims map[string]interface{}) error {
	if iss, _ := claims["iss"].(string); iss != i.issuerURI {
		return fmt.Errorf("unexpected issuer %q", iss)
	}

	auds := audiences(claims["aud"])
	if len(auds) == 0 {
		return errors.New("missing aud claim")
	}

	for _, aud := range auds {
		if !contains(i.allowedAudiences, aud) {
			return fmt.Errorf("audience %q is not allowed", aud)
		}
	}

	if sub, _ := claims["sub"].(string); sub == "" {
		return errors.New("missing sub claim")
	}

	now := time.Now().Unix()

	iat, ok := numericClaim(claims["iat"])
	if !ok {
		return errors.New("missing iat claim")
	}

	if iat > now {
		return errors.New("token issued in the future")
	}

	exp, ok := numericClaim(claims["exp"])
	if !ok {
		return errors.New("missing exp claim")
	}

	if exp < now {
		return errors.New("token expired")
	}

	return nil
}

func (i *TokenIngestor) resolveKeySet(e echo.Context) (*gojose.JSONWebKeySet, error) {
	i.mu.RLock()
	keySet, expireAt := i.keySet, i.keySetExpireAt
	i.mu.RUnlock()

	if keySet != nil && time.Now().Before(expireAt) {
		return keySet, nil
	}

	req, err := http.NewRequestWithContext(e.Request().Context(), http.MethodGet, i.jwkSetURI, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwk set endpoint returned status %d", resp.StatusCode)
	}

	var fetched gojose.JSONWebKeySet

	if err = json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, fmt.Errorf("decode jwk set: %w", err)
	}

	i.mu.Lock()
	i.keySet = &fetched
	i.keySetExpireAt = time.Now().Add(i.keySetTTL)
	i.mu.Unlock()

	return &fetched, nil
}

// TokenHash fingerprints a bearer token the OIDC at_hash way: SHA-256, left
// half, base64url. The fingerprint keys the nonce transaction cache.
func TokenHash(token string) string {
	hash := sha256.Sum256([]byte(token))

	return base64.RawURLEncoding.EncodeToString(hash[:len(hash)/2])
}

// FromContext returns the request-scoped ParsedAccessToken. Routes outside
// the ingestor middleware see an inactive token.
func FromContext(e echo.Context) *ParsedAccessToken {
	if token, ok := e.Get(parsedTokenContextKey).(*ParsedAccessToken); ok {
		return token
	}

	return &ParsedAccessToken{Active: false}
}

func setParsedToken(e echo.Context, token *ParsedAccessToken) {
	e.Set(parsedTokenContextKey, token)
}

func audiences(claim interface{}) []string {
	switch v := claim.(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))

		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return nil
}

func numericClaim(claim interface{}) (int64, bool) {
	switch v := claim.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()

		return n, err == nil
	}

	return 0, false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}

	return false
}
