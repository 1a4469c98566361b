/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package keybinding

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
	"golang.org/x/crypto/sha3"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

var logger = log.New("keybinding")

const (
	utcDateTimeFormat = "2006-01-02T15:04:05.000Z"
	defaultSaltLength = 16
)

// Config holds Service dependencies.
type Config struct {
	KeyBinder     KeyBinder
	RegistryStore RegistryStore

	// BindingIDEncrypter, when set, encrypts wallet binding identifiers to
	// the holder key before returning them to the client.
	BindingIDEncrypter BindingIDEncrypter

	// BindingAudienceID is the audience bound challenges must be addressed to.
	BindingAudienceID string

	SaltLength int
}

// Service orchestrates the key binding workflow.
type Service struct {
	keyBinder          KeyBinder
	registryStore      RegistryStore
	bindingIDEncrypter BindingIDEncrypter
	bindingAudienceID  string
	saltLength         int
}

// New creates a key binding Service.
func New(config *Config) *Service {
	saltLength := config.SaltLength
	if saltLength == 0 {
		saltLength = defaultSaltLength
	}

	return &Service{
		keyBinder:          config.KeyBinder,
		registryStore:      config.RegistryStore,
		bindingIDEncrypter: config.BindingIDEncrypter,
		bindingAudienceID:  config.BindingAudienceID,
		saltLength:         saltLength,
	}
}

// SendBindingOTP dispatches a binding OTP through the external KeyBinder.
func (s *Service) SendBindingOTP(ctx context.Context, req *BindingOTPRequest,
	headers map[string]string) (*BindingOTPResult, error) {
	result, err := s.keyBinder.SendBindingOTP(ctx, req.IndividualID, req.OTPChannels, headers)
	if err != nil {
		logger.Errorc(ctx, "failed to send binding otp", log.WithError(err))

		return nil, resterr.FromError(err, resterr.CodeSendOTPFailed)
	}

	if result == nil {
		return nil, resterr.New(resterr.CodeSendOTPFailed, errors.New("key binder returned no otp result"))
	}

	return &BindingOTPResult{
		MaskedMobile: result.MaskedMobile,
		MaskedEmail:  result.MaskedEmail,
	}, nil
}

// BindWallet validates the challenge set against the external KeyBinder's
// supported formats, delegates the binding and persists the resulting
// certificate and pseudonymous user token. Re-binding an identity/auth-factor
// pair with the same key is idempotent; binding a key already owned by a
// different identity is rejected.
func (s *Service) BindWallet(ctx context.Context, req *WalletBindingRequest,
	headers map[string]string) (*WalletBindingResult, error) {
	if err := s.validateChallengeFormats(req); err != nil {
		return nil, err
	}

	publicKey, err := canonicalJWK(req.PublicKey)
	if err != nil {
		return nil, resterr.New(resterr.CodeInvalidPublicKey, err)
	}

	result, err := s.keyBinder.DoKeyBinding(ctx, req.IndividualID, req.ChallengeList, req.PublicKey,
		req.AuthFactorType, headers)
	if err != nil {
		logger.Errorc(ctx, "failed to bind the key", log.WithError(err))

		return nil, resterr.FromError(err, resterr.CodeKeyBindingFailed)
	}

	if result == nil || result.Certificate == "" || result.PartnerSpecificUserToken == "" {
		logger.Errorc(ctx, "key binder returned an incomplete binding result")

		return nil, resterr.New(resterr.CodeKeyBindingFailed, errors.New("incomplete key binding result"))
	}

	entry, err := s.storeKeyBindingDetails(ctx, req.IndividualID, result.PartnerSpecificUserToken,
		publicKey, result.Certificate, req.AuthFactorType)
	if err != nil {
		return nil, err
	}

	walletBindingID := entry.WalletBindingID

	if s.bindingIDEncrypter != nil {
		if walletBindingID, err = s.bindingIDEncrypter.Encrypt(entry.WalletBindingID, req.PublicKey); err != nil {
			return nil, resterr.FromError(err, resterr.CodeFailedToCreateJWE)
		}
	}

	response := &WalletBindingResult{
		WalletBindingID:          walletBindingID,
		Certificate:              entry.Certificate,
		PartnerSpecificUserToken: entry.PSUToken,
	}

	if entry.ExpiresAt != nil {
		response.ExpireDateTime = entry.ExpiresAt.UTC().Format(utcDateTimeFormat)
	}

	return response, nil
}

func (s *Service) validateChallengeFormats(req *WalletBindingRequest) error {
	for _, challenge := range req.ChallengeList {
		if !containsString(s.keyBinder.SupportedChallengeFormats(challenge.AuthFactorType), challenge.Format) {
			return resterr.New(resterr.CodeInvalidChallengeFormat,
				errors.New("unsupported challenge format")).WithIncorrectValue(challenge.Format)
		}
	}

	// The top-level format is not stored, only checked against the wrapper.
	if !containsString(s.keyBinder.SupportedChallengeFormats(req.AuthFactorType), req.Format) {
		return resterr.New(resterr.CodeInvalidChallengeFormat,
			errors.New("unsupported binding format")).WithIncorrectValue(req.Format)
	}

	return nil
}

// storeKeyBindingDetails persists one immutable registry row per binding.
// The wallet binding identifier of the latest live row for the same
// (psuToken, authFactor) pair is reused so rotation keeps the identifier
// stable; an exact same-key repeat returns that row untouched.
//
//nolint:gocognit
func (s *Service) storeKeyBindingDetails(ctx context.Context, individualID, psuToken, publicKey,
	certificate, authFactor string) (*PublicKeyRegistry, error) {
	publicKeyHash := hashB64(publicKey)
	now := time.Now().UTC()

	existing, err := s.registryStore.FindLatestByPSUTokenAndAuthFactor(ctx, psuToken, authFactor)
	if err != nil && !errors.Is(err, ErrDataNotFound) {
		return nil, resterr.New(resterr.CodeKeyBindingFailed, err).WithErrorPrefix("registry lookup")
	}

	walletBindingID := ""

	if existing != nil && existing.Live(now) {
		if existing.PublicKeyHash == publicKeyHash {
			return existing, nil
		}

		walletBindingID = existing.WalletBindingID
	}

	if walletBindingID == "" {
		if walletBindingID, err = s.generateWalletBindingID(psuToken); err != nil {
			return nil, resterr.New(resterr.CodeKeyBindingFailed, err)
		}
	}

	expiresAt, err := certificateExpiry(certificate)
	if err != nil {
		return nil, resterr.New(resterr.CodeInvalidCertificate, err)
	}

	entry := &PublicKeyRegistry{
		IDHash:          s.IndividualIDHash(individualID),
		AuthFactor:      authFactor,
		PSUToken:        psuToken,
		PublicKey:       publicKey,
		PublicKeyHash:   publicKeyHash,
		Thumbprint:      thumbprint(publicKey),
		Certificate:     certificate,
		WalletBindingID: walletBindingID,
		CreatedAt:       now,
		ExpiresAt:       expiresAt,
	}

	if err = s.registryStore.Insert(ctx, entry); err != nil {
		if !errors.Is(err, ErrDuplicateKey) {
			return nil, resterr.New(resterr.CodeKeyBindingFailed, err).WithErrorPrefix("registry insert")
		}

		// The storage layer holds the truth under concurrency: load the
		// owning row and decide between idempotent reuse and rejection.
		owner, findErr := s.registryStore.FindByPublicKeyHash(ctx, publicKeyHash)
		if findErr != nil {
			return nil, resterr.New(resterr.CodeKeyBindingFailed, findErr).WithErrorPrefix("resolve key owner")
		}

		if owner.PSUToken == psuToken && owner.AuthFactor == authFactor {
			return owner, nil
		}

		logger.Errorc(ctx, "public key already registered to a different identity")

		return nil, resterr.New(resterr.CodeDuplicatePublicKey,
			errors.New("public key already registered"))
	}

	return entry, nil
}

// IndividualIDHash hashes the raw identifier; the raw value never reaches
// the registry.
func (s *Service) IndividualIDHash(individualID string) string {
	return hashB64(individualID)
}

func (s *Service) generateWalletBindingID(psuToken string) (string, error) {
	salt := make([]byte, s.saltLength)

	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := sha3.New256()
	digest.Write([]byte(psuToken))
	digest.Write(salt)

	return base64.RawURLEncoding.EncodeToString(digest.Sum(nil)), nil
}

func certificateExpiry(certificate string) (*time.Time, error) {
	block, _ := pem.Decode([]byte(certificate))
	if block == nil {
		return nil, errors.New("certificate is not pem encoded")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}

	notAfter := cert.NotAfter.UTC()

	return &notAfter, nil
}

// canonicalJWK serializes the caller-supplied JWK map deterministically so
// the same key always hashes to the same value.
func canonicalJWK(publicKey map[string]interface{}) (string, error) {
	if len(publicKey) == 0 {
		return "", errors.New("missing public key")
	}

	b, err := json.Marshal(publicKey)
	if err != nil {
		return "", fmt.Errorf("serialize public key: %w", err)
	}

	return string(b), nil
}

func hashB64(value string) string {
	digest := sha3.Sum256([]byte(value))

	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// thumbprint is the SHA-256 fingerprint of the serialized key, kept separate
// from the SHA3-based registry hash for compatibility with verifiers that
// look bindings up by JWS thumbprint headers.
func thumbprint(publicKey string) string {
	digest := sha256.Sum256([]byte(publicKey))

	return base64.StdEncoding.EncodeToString(digest[:])
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}

	return false
}
