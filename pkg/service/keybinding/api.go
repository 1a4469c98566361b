/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package keybinding binds a holder-controlled public key to a verified
// individual identity. Challenge verification is delegated to a pluggable
// external KeyBinder; the resulting certificate and pseudonymous user token
// are persisted in the public key registry.
package keybinding

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks_test.go -self_package mocks -package keybinding_test -source=api.go

// AuthChallenge is one piece of authentication evidence submitted by the
// client, e.g. an OTP value or a signed wallet token.
type AuthChallenge struct {
	AuthFactorType string `json:"authFactorType"`
	Challenge      string `json:"challenge"`
	Format         string `json:"format"`
}

// OTPResult is the external KeyBinder's answer to an OTP dispatch.
type OTPResult struct {
	MaskedMobile string
	MaskedEmail  string
}

// KeyBindingResult is the external KeyBinder's answer to a binding attempt.
type KeyBindingResult struct {
	Certificate              string
	PartnerSpecificUserToken string
}

// KeyBinder is the external authenticator performing challenge verification
// and certificate issuance. Concrete implementations are selected by explicit
// configuration at process start.
type KeyBinder interface {
	SendBindingOTP(ctx context.Context, individualID string, otpChannels []string,
		headers map[string]string) (*OTPResult, error)

	SupportedChallengeFormats(authFactorType string) []string

	DoKeyBinding(ctx context.Context, individualID string, challenges []AuthChallenge,
		publicKey map[string]interface{}, authFactorType string, headers map[string]string) (*KeyBindingResult, error)
}

// PublicKeyRegistry is one durable, immutable binding record. New bindings
// are new rows; rotation retains the old row.
type PublicKeyRegistry struct {
	IDHash          string
	AuthFactor      string
	PSUToken        string
	PublicKey       string
	PublicKeyHash   string
	Thumbprint      string
	Certificate     string
	WalletBindingID string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
}

// Live reports whether the registry entry has not expired at the given time.
// A nil ExpiresAt means a non-expiring binding.
func (r *PublicKeyRegistry) Live(now time.Time) bool {
	return r.ExpiresAt == nil || r.ExpiresAt.After(now)
}

// RegistryStore persists binding records. Insert must enforce public key
// hash uniqueness at the storage layer and report violations as
// ErrDuplicateKey so that concurrent bindings of the same key race safely.
type RegistryStore interface {
	Insert(ctx context.Context, entry *PublicKeyRegistry) error

	FindByPublicKeyHash(ctx context.Context, publicKeyHash string) (*PublicKeyRegistry, error)

	FindLatestByPSUTokenAndAuthFactor(ctx context.Context, psuToken, authFactor string) (*PublicKeyRegistry, error)

	FindLiveByIDHashAndAuthFactors(ctx context.Context, idHash string, authFactors []string,
		now time.Time) ([]*PublicKeyRegistry, error)
}

// BindingIDEncrypter encrypts a wallet binding identifier to the holder key
// before it is returned to the client.
type BindingIDEncrypter interface {
	Encrypt(walletBindingID string, holderKey map[string]interface{}) (string, error)
}

// BindingOTPRequest starts an OTP-based binding flow.
type BindingOTPRequest struct {
	IndividualID string   `json:"individualId"`
	OTPChannels  []string `json:"otpChannels"`
}

// BindingOTPResult echoes the channel masks of the dispatched OTP.
type BindingOTPResult struct {
	MaskedMobile string `json:"maskedMobile,omitempty"`
	MaskedEmail  string `json:"maskedEmail,omitempty"`
}

// WalletBindingRequest binds the supplied public key to the individual after
// the challenge list verifies.
type WalletBindingRequest struct {
	IndividualID   string                 `json:"individualId"`
	AuthFactorType string                 `json:"authFactorType"`
	Format         string                 `json:"format"`
	ChallengeList  []AuthChallenge        `json:"challengeList"`
	PublicKey      map[string]interface{} `json:"publicKey"`
}

// WalletBindingResult is returned to the client on a successful binding.
type WalletBindingResult struct {
	WalletBindingID          string `json:"walletBindingId"`
	Certificate              string `json:"certificate"`
	ExpireDateTime           string `json:"expireDateTime,omitempty"`
	PartnerSpecificUserToken string `json:"-"`
}

// ValidateBindingRequest confirms a previously bound key's challenge on
// behalf of a downstream authentication flow.
type ValidateBindingRequest struct {
	TransactionID string          `json:"transactionId"`
	IndividualID  string          `json:"individualId"`
	ChallengeList []AuthChallenge `json:"challengeList"`
}

// BindingAuthResult confirms a successful binding validation.
type BindingAuthResult struct {
	TransactionID string `json:"transactionId"`
	IndividualID  string `json:"-"`
}
