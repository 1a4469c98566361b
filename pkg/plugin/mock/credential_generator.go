/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package mock

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"

	"github.com/mosip/esignet-go/pkg/service/vcissuance"
)

const (
	defaultCredentialValidity = 365 * 24 * time.Hour

	credentialsContextV1 = "https://www.w3.org/2018/credentials/v1"
)

// subjectClaims are the access token claims copied into the credential
// subject when present.
var subjectClaims = []string{"name", "email", "phone_number", "birthdate", "address", "picture"}

// CredentialGeneratorConfig holds the mock generator settings.
type CredentialGeneratorConfig struct {
	IssuerURI          string
	CredentialValidity time.Duration
}

// CredentialGenerator mints credentials signed by an in-process ES256 key.
type CredentialGenerator struct {
	issuerURI          string
	credentialValidity time.Duration

	signingKey *ecdsa.PrivateKey
	signer     gojose.Signer
	keyID      string
}

// NewCredentialGenerator creates the generator with a fresh signing key.
func NewCredentialGenerator(config *CredentialGeneratorConfig) (*CredentialGenerator, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	keyID := uuid.NewString()

	signer, err := gojose.NewSigner(gojose.SigningKey{
		Algorithm: gojose.ES256,
		Key:       key,
	}, (&gojose.SignerOptions{}).WithType("JWT").WithHeader(gojose.HeaderKey("kid"), keyID))
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	credentialValidity := config.CredentialValidity
	if credentialValidity <= 0 {
		credentialValidity = defaultCredentialValidity
	}

	return &CredentialGenerator{
		issuerURI:          config.IssuerURI,
		credentialValidity: credentialValidity,
		signingKey:         key,
		signer:             signer,
		keyID:              keyID,
	}, nil
}

// PublicJWKS exposes the signing key for verifiers.
func (g *CredentialGenerator) PublicJWKS() *gojose.JSONWebKeySet {
	return &gojose.JSONWebKeySet{
		Keys: []gojose.JSONWebKey{
			{
				Key:       &g.signingKey.PublicKey,
				KeyID:     g.keyID,
				Algorithm: string(gojose.ES256),
				Use:       "sig",
			},
		},
	}
}

// GenerateLinkedDataCredential returns the credential as a JSON-LD document
// with an embedded JWS proof over the document bytes.
func (g *CredentialGenerator) GenerateLinkedDataCredential(_ context.Context,
	req *vcissuance.VCRequest) (map[string]interface{}, error) {
	now := time.Now().UTC()

	doc := map[string]interface{}{
		"@context":          ldContext(req),
		"type":              credentialTypes(req),
		"id":                "urn:uuid:" + uuid.NewString(),
		"issuer":            g.issuerURI,
		"issuanceDate":      now.Format(time.RFC3339),
		"expirationDate":    now.Add(g.credentialValidity).Format(time.RFC3339),
		"credentialSubject": g.credentialSubject(req),
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal credential: %w", err)
	}

	jws, err := g.sign(payload)
	if err != nil {
		return nil, err
	}

	doc["proof"] = map[string]interface{}{
		"type":               "JsonWebSignature2020",
		"created":            now.Format(time.RFC3339),
		"proofPurpose":       "assertionMethod",
		"verificationMethod": g.issuerURI + "#" + g.keyID,
		"jws":                jws,
	}

	return doc, nil
}

// GenerateSignedCredential returns the credential as a JWT with an embedded
// vc claim.
func (g *CredentialGenerator) GenerateSignedCredential(_ context.Context,
	req *vcissuance.VCRequest) (string, error) {
	now := time.Now().UTC()

	claims := map[string]interface{}{
		"iss": g.issuerURI,
		"sub": req.HolderID,
		"jti": "urn:uuid:" + uuid.NewString(),
		"nbf": now.Unix(),
		"exp": now.Add(g.credentialValidity).Unix(),
		"vc": map[string]interface{}{
			"@context":          ldContext(req),
			"type":              credentialTypes(req),
			"issuer":            g.issuerURI,
			"credentialSubject": g.credentialSubject(req),
		},
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	return g.sign(payload)
}

func (g *CredentialGenerator) sign(payload []byte) (string, error) {
	jws, err := g.signer.Sign(payload)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}

	serialized, err := jws.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("serialize credential: %w", err)
	}

	return serialized, nil
}

// credentialSubject carries the holder binding plus whitelisted token claims.
func (g *CredentialGenerator) credentialSubject(req *vcissuance.VCRequest) map[string]interface{} {
	subject := map[string]interface{}{
		"id": req.HolderID,
	}

	for _, name := range subjectClaims {
		if v, ok := req.TokenClaims[name]; ok {
			subject[name] = v
		}
	}

	return subject
}

func ldContext(req *vcissuance.VCRequest) []string {
	if req.Definition != nil && len(req.Definition.Context) > 0 {
		return req.Definition.Context
	}

	return []string{credentialsContextV1}
}

func credentialTypes(req *vcissuance.VCRequest) []string {
	if req.Definition != nil && len(req.Definition.Type) > 0 {
		return req.Definition.Type
	}

	types := []string{"VerifiableCredential"}

	if req.Metadata != nil {
		for _, t := range req.Metadata.Types {
			if t != "VerifiableCredential" {
				types = append(types, t)
			}
		}
	}

	return types
}
