/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package vcissuance issues verifiable credentials over the OpenID4VCI
// credential endpoint. The service orchestrates access token checks, scope
// resolution, proof-of-possession validation and nonce lifecycle, then hands
// the actual signing to a pluggable generator.
package vcissuance

//go:generate mockgen -destination mocks_test.go -self_package mocks -package vcissuance_test -source=api.go

import (
	"context"
	"fmt"
	"time"

	"github.com/mosip/esignet-go/pkg/pop"
	"github.com/mosip/esignet-go/pkg/profile"
)

// CredentialDefinition narrows the requested credential within a format.
type CredentialDefinition struct {
	Context           []string               `json:"@context,omitempty"`
	Type              []string               `json:"type,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject,omitempty"`
}

// CredentialRequest is the body of the credential endpoint.
type CredentialRequest struct {
	Format               profile.Format        `json:"format"`
	Proof                *pop.CredentialProof  `json:"proof"`
	CredentialDefinition *CredentialDefinition `json:"credential_definition,omitempty"`
}

// CredentialResponse carries the issued credential back to the wallet.
type CredentialResponse struct {
	Format     profile.Format `json:"format"`
	Credential interface{}    `json:"credential"`
}

// VCRequest is the generator-facing view of one issuance: the resolved
// credential metadata plus everything needed to mint the credential.
type VCRequest struct {
	Metadata *profile.CredentialMetadata
	// HolderID is the key reference extracted from the validated proof,
	// bound into the credential as its subject identifier.
	HolderID string
	// TokenClaims are the verified access token claims. Subject data for the
	// credential is sourced from here.
	TokenClaims map[string]interface{}
	// Definition is the wallet-requested credential definition, nil for
	// formats that do not carry one.
	Definition *CredentialDefinition
}

// CredentialGenerator mints credentials in a concrete format. Implementations
// own key material and signing.
type CredentialGenerator interface {
	// GenerateLinkedDataCredential returns the credential as a JSON-LD
	// document.
	GenerateLinkedDataCredential(ctx context.Context, req *VCRequest) (map[string]interface{}, error)

	// GenerateSignedCredential returns the credential as a compact JWS.
	GenerateSignedCredential(ctx context.Context, req *VCRequest) (string, error)
}

// Transaction is the per-access-token issuance state. It only exists between
// the first credential request and the successful consumption of its nonce.
type Transaction struct {
	CNonce         string    `json:"c_nonce"`
	CNonceIssuedAt time.Time `json:"c_nonce_issued_at"`
	// CNonceExpiresIn is the nonce lifetime in seconds from CNonceIssuedAt.
	CNonceExpiresIn int `json:"c_nonce_expires_in"`
}

// Expired reports whether the transaction's nonce is past its lifetime.
func (t *Transaction) Expired(now time.Time) bool {
	return now.After(t.CNonceIssuedAt.Add(time.Duration(t.CNonceExpiresIn) * time.Second))
}

// TransactionStore persists issuance transactions keyed by the access token
// hash.
type TransactionStore interface {
	// Get returns the transaction for the key, or nil when absent.
	Get(ctx context.Context, key string) (*Transaction, error)

	// SetIfNotExist stores tx under key unless a transaction is already
	// present. It reports whether this call won the write.
	SetIfNotExist(ctx context.Context, key string, tx *Transaction, ttl time.Duration) (bool, error)

	// GetAndDelete atomically removes and returns the transaction. At most
	// one concurrent caller observes a non-nil result.
	GetAndDelete(ctx context.Context, key string) (*Transaction, error)
}

// InvalidNonceError rejects a credential request while handing the wallet a
// fresh nonce to retry with.
type InvalidNonceError struct {
	CNonce          string
	CNonceExpiresIn int
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid or expired c_nonce, fresh nonce expires in %ds", e.CNonceExpiresIn)
}
