/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package keybinding

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

const (
	authFactorWLA = "WLA"
	wlaFormatJWT  = "jwt"

	thumbprintHeader = "x5t#S256"
)

// ValidateBinding confirms a previously bound key's challenge on behalf of a
// downstream authentication flow. Every submitted challenge must verify
// against a live registry entry for its auth factor.
func (s *Service) ValidateBinding(ctx context.Context, req *ValidateBindingRequest) (*BindingAuthResult, error) {
	idHash := s.IndividualIDHash(req.IndividualID)

	factors := make([]string, 0, len(req.ChallengeList))
	for _, challenge := range req.ChallengeList {
		factors = append(factors, challenge.AuthFactorType)
	}

	entries, err := s.registryStore.FindLiveByIDHashAndAuthFactors(ctx, idHash, factors, time.Now().UTC())
	if err != nil && !errors.Is(err, ErrDataNotFound) {
		return nil, resterr.New(resterr.CodeKeyBindingNotFound, err).WithErrorPrefix("registry lookup")
	}

	if len(entries) == 0 {
		return nil, resterr.New(resterr.CodeKeyBindingNotFound, errors.New("no live binding for the individual"))
	}

	// A challenge for an auth factor the individual never bound is rejected
	// before any cryptographic work.
	if len(entries) < len(factors) {
		return nil, resterr.New(resterr.CodeUnboundAuthFactor,
			errors.New("challenge list contains unbound auth factors"))
	}

	byFactor := make(map[string]*PublicKeyRegistry, len(entries))
	for _, entry := range entries {
		if _, ok := byFactor[entry.AuthFactor]; !ok {
			byFactor[entry.AuthFactor] = entry
		}
	}

	for _, challenge := range req.ChallengeList {
		if err = s.validateChallenge(req.IndividualID, &challenge, byFactor[challenge.AuthFactorType]); err != nil {
			logger.Errorc(ctx, "binding challenge verification failed",
				log.WithError(err))

			return nil, resterr.FromError(err, resterr.CodeInvalidChallenge)
		}
	}

	return &BindingAuthResult{
		TransactionID: req.TransactionID,
		IndividualID:  req.IndividualID,
	}, nil
}

func (s *Service) validateChallenge(individualID string, challenge *AuthChallenge,
	entry *PublicKeyRegistry) error {
	if entry == nil {
		return resterr.New(resterr.CodeInvalidChallenge,
			fmt.Errorf("no binding for auth factor %s", challenge.AuthFactorType))
	}

	switch challenge.AuthFactorType {
	case authFactorWLA:
		return s.validateWLAToken(individualID, challenge.Challenge, challenge.Format, entry)
	default:
		return resterr.New(resterr.CodeInvalidChallenge,
			fmt.Errorf("auth factor %s is not verifiable here", challenge.AuthFactorType))
	}
}

// validateWLAToken verifies a wallet local authentication token against the
// public key of the bound certificate.
func (s *Service) validateWLAToken(individualID, wlaToken, format string, entry *PublicKeyRegistry) error {
	if format != wlaFormatJWT {
		return resterr.New(resterr.CodeInvalidChallenge,
			fmt.Errorf("unknown wla challenge format %s", format))
	}

	publicKey, err := certificatePublicKey(entry.Certificate)
	if err != nil {
		return resterr.New(resterr.CodeInvalidCertificate, err)
	}

	jws, err := gojose.ParseSigned(wlaToken)
	if err != nil {
		return resterr.New(resterr.CodeInvalidWLAToken, err).WithErrorPrefix("parse wla token")
	}

	if _, ok := jws.Signatures[0].Header.ExtraHeaders[gojose.HeaderKey(thumbprintHeader)]; !ok {
		return resterr.New(resterr.CodeInvalidWLAToken,
			errors.New("sha256 thumbprint header missing"))
	}

	payload, err := jws.Verify(publicKey)
	if err != nil {
		return resterr.New(resterr.CodeInvalidWLAToken, err).WithErrorPrefix("verify wla token")
	}

	return verifyWLAClaims(payload, individualID, s.bindingAudienceID)
}

type wlaClaims struct {
	Issuer   string      `json:"iss"`
	Subject  string      `json:"sub"`
	Audience interface{} `json:"aud"`
	IssuedAt *int64      `json:"iat"`
	Expiry   *int64      `json:"exp"`
}

func verifyWLAClaims(payload []byte, individualID, audienceID string) error {
	var claims wlaClaims

	if err := json.Unmarshal(payload, &claims); err != nil {
		return resterr.New(resterr.CodeInvalidWLAToken, err).WithErrorPrefix("decode wla claims")
	}

	now := time.Now().Unix()

	switch {
	case claims.Issuer == "":
		return resterr.New(resterr.CodeInvalidWLAToken, errors.New("missing iss claim"))
	case claims.Subject != individualID:
		return resterr.New(resterr.CodeInvalidWLAToken, errors.New("sub does not match the individual"))
	case !claimAudienceContains(claims.Audience, audienceID):
		return resterr.New(resterr.CodeInvalidWLAToken, errors.New("aud does not contain the binding audience"))
	case claims.IssuedAt == nil || *claims.IssuedAt > now:
		return resterr.New(resterr.CodeInvalidWLAToken, errors.New("invalid iat claim"))
	case claims.Expiry == nil || *claims.Expiry < now:
		return resterr.New(resterr.CodeInvalidWLAToken, errors.New("token expired"))
	}

	return nil
}

func certificatePublicKey(certificate string) (interface{}, error) {
	block, _ := pem.Decode([]byte(certificate))
	if block == nil {
		return nil, errors.New("certificate is not pem encoded")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}

	return cert.PublicKey, nil
}

func claimAudienceContains(claim interface{}, expected string) bool {
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
