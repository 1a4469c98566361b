/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package pop validates proof-of-possession artifacts submitted with
// credential requests. One validator strategy is registered per proof type;
// unknown types are a hard failure.
package pop

import (
	"errors"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

// CredentialProof is the proof object of a credential request.
type CredentialProof struct {
	ProofType string `json:"proof_type"`
	JWT       string `json:"jwt,omitempty"`
}

// ProofValidator checks one kind of proof artifact against the caller's
// client ID and the server-issued nonce, and extracts the holder key.
type ProofValidator interface {
	// ProofType returns the proof type tag this strategy handles.
	ProofType() string

	// Validate reports whether the proof is structurally, temporally and
	// cryptographically bound to clientID and cNonce.
	Validate(clientID, cNonce string, proof *CredentialProof) bool

	// KeyMaterial returns a stable, serializable reference to the holder's
	// key, derivable from an already validated proof.
	KeyMaterial(proof *CredentialProof) (string, error)
}

// Registry dispatches to the validator registered for a declared proof type.
type Registry struct {
	validators []ProofValidator
}

// NewRegistry creates a Registry over the given strategies. First match by
// proof type wins.
func NewRegistry(validators ...ProofValidator) *Registry {
	return &Registry{validators: validators}
}

// Get returns the validator for proofType.
func (r *Registry) Get(proofType string) (ProofValidator, error) {
	for _, v := range r.validators {
		if v.ProofType() == proofType {
			return v, nil
		}
	}

	return nil, resterr.New(resterr.CodeUnsupportedProofType,
		errors.New("no proof validator registered for type "+proofType))
}
