/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package pop

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

var logger = log.New("pop")

const (
	proofTypeJWT = "jwt"

	// jwtProofTypHeader is the fixed typ tag of an issuance proof JWT.
	jwtProofTypHeader = "openid4vci-proof+jwt"

	// didJWKPrefix is the only key identifier scheme accepted in proof
	// headers. The method-specific suffix is a base64url encoded JWK.
	didJWKPrefix = "did:jwk:"
)

// JWTProofValidator validates signed-token (jwt) proofs of possession.
type JWTProofValidator struct {
	supportedAlgorithms  []string
	credentialIdentifier string
}

// NewJWTProofValidator creates a JWTProofValidator. supportedAlgorithms is
// the signature algorithm allow-list; credentialIdentifier is the audience
// value proofs must be addressed to.
func NewJWTProofValidator(supportedAlgorithms []string, credentialIdentifier string) *JWTProofValidator {
	return &JWTProofValidator{
		supportedAlgorithms:  supportedAlgorithms,
		credentialIdentifier: credentialIdentifier,
	}
}

func (v *JWTProofValidator) ProofType() string {
	return proofTypeJWT
}

// Validate checks the proof JWT end to end: structure, header claims, key
// resolution, payload claims and signature. Any failure rejects the proof.
func (v *JWTProofValidator) Validate(clientID, cNonce string, proof *CredentialProof) bool {
	if proof == nil || strings.TrimSpace(proof.JWT) == "" {
		logger.Error("empty jwt in the credential proof")

		return false
	}

	jws, err := gojose.ParseSigned(proof.JWT)
	if err != nil {
		logger.Error("failed to parse jwt in the credential proof", log.WithError(err))

		return false
	}

	header := jws.Signatures[0].Header

	jwk, err := v.keyFromHeader(header)
	if err != nil {
		logger.Error("invalid proof header", log.WithError(err))

		return false
	}

	payload, err := jws.Verify(jwk.Key)
	if err != nil {
		logger.Error("proof signature verification failed", log.WithError(err))

		return false
	}

	if err = v.verifyClaims(clientID, cNonce, payload); err != nil {
		logger.Error("invalid proof claims", log.WithError(err))

		return false
	}

	return true
}

// KeyMaterial returns the holder key as a did:jwk string derived from the
// proof header, usable as the subject-binding key downstream.
func (v *JWTProofValidator) KeyMaterial(proof *CredentialProof) (string, error) {
	jws, err := gojose.ParseSigned(proof.JWT)
	if err != nil {
		return "", resterr.New(resterr.CodeProofHeaderInvalidKey, err).
			WithErrorPrefix("parse proof jwt")
	}

	jwk, err := v.keyFromHeader(jws.Signatures[0].Header)
	if err != nil {
		return "", err
	}

	b, err := jwk.MarshalJSON()
	if err != nil {
		return "", resterr.New(resterr.CodeProofHeaderInvalidKey, err).
			WithErrorPrefix("serialize holder jwk")
	}

	return didJWKPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// keyFromHeader enforces the header rules and resolves the holder key:
// typ must be the issuance proof tag, alg must be allow-listed, exactly one
// of {embedded jwk, kid} must be present, and the key must not be private.
func (v *JWTProofValidator) keyFromHeader(header gojose.Header) (*gojose.JSONWebKey, error) {
	typ, _ := header.ExtraHeaders[gojose.HeaderType].(string)
	if typ != jwtProofTypHeader {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidTyp, nil).WithIncorrectValue(typ)
	}

	if !containsString(v.supportedAlgorithms, header.Algorithm) {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidAlg, nil).WithIncorrectValue(header.Algorithm)
	}

	embedded, kid := header.JSONWebKey, header.KeyID

	if embedded == nil && kid == "" {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidKey,
			errors.New("neither jwk nor kid present in the proof header"))
	}

	// Both cannot be present, either one of them is only allowed.
	if embedded != nil && kid != "" {
		return nil, resterr.New(resterr.CodeProofHeaderAmbiguousKey,
			errors.New("both jwk and kid present in the proof header"))
	}

	jwk := embedded
	if jwk == nil {
		resolved, err := resolveDIDJWK(kid)
		if err != nil {
			return nil, err
		}

		jwk = resolved
	}

	if !jwk.IsPublic() {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidKey,
			errors.New("proof key material contains a private key"))
	}

	return jwk, nil
}

type proofClaims struct {
	Issuer   string      `json:"iss"`
	Audience interface{} `json:"aud"`
	IssuedAt *int64      `json:"iat"`
	Expiry   *int64      `json:"exp"`
	Nonce    *string     `json:"nonce"`
}

func (v *JWTProofValidator) verifyClaims(clientID, cNonce string, payload []byte) error {
	var claims proofClaims

	if err := json.Unmarshal(payload, &claims); err != nil {
		return fmt.Errorf("decode proof claims: %w", err)
	}

	if claims.Issuer != clientID {
		return errors.New("proof iss does not match the client_id")
	}

	if !audienceContains(claims.Audience, v.credentialIdentifier) {
		return errors.New("proof aud does not contain the credential issuer identifier")
	}

	if claims.IssuedAt == nil {
		return errors.New("proof iat is missing")
	}

	if claims.Expiry == nil {
		return errors.New("proof exp is missing")
	}

	if *claims.Expiry < time.Now().Unix() {
		return errors.New("proof expired")
	}

	if claims.Nonce == nil || *claims.Nonce != cNonce {
		return errors.New("proof nonce does not match the issued c_nonce")
	}

	return nil
}

// resolveDIDJWK decodes a did:jwk key identifier into key material. The DID
// URL fragment is ignored: did:jwk documents hold a single key and #0 is the
// only valid reference.
func resolveDIDJWK(did string) (*gojose.JSONWebKey, error) {
	if !strings.HasPrefix(did, didJWKPrefix) {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidKey,
			errors.New("unsupported key identifier scheme")).WithIncorrectValue(did)
	}

	suffix := strings.SplitN(strings.TrimPrefix(did, didJWKPrefix), "#", 2)[0] //nolint:gomnd

	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(suffix, "="))
	if err != nil {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidKey, err).
			WithErrorPrefix("decode did:jwk suffix")
	}

	var jwk gojose.JSONWebKey

	if err = jwk.UnmarshalJSON(b); err != nil {
		return nil, resterr.New(resterr.CodeProofHeaderInvalidKey, err).
			WithErrorPrefix("parse did:jwk key")
	}

	jwk.KeyID = did

	return &jwk, nil
}

func audienceContains(claim interface{}, expected string) bool {
	switch v := claim.(type) {
	case string:
		return v == expected
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == expected {
				return true
			}
		}
	}

	return false
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}

	return false
}
