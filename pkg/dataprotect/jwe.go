/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package dataprotect encrypts binding identifiers before they are returned
// to clients. Encryption is keyed by the holder's own public key so only the
// wallet that submitted the binding request can recover the identifier.
package dataprotect

import (
	"encoding/json"
	"fmt"

	gojose "github.com/go-jose/go-jose/v3"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

// BindingIDEncrypter produces a compact JWE of a wallet binding identifier
// addressed to the holder key.
type BindingIDEncrypter struct {
	keyAlgorithm      gojose.KeyAlgorithm
	contentEncryption gojose.ContentEncryption
}

// NewBindingIDEncrypter creates a BindingIDEncrypter with the deployment's
// key management and content encryption algorithms.
func NewBindingIDEncrypter() *BindingIDEncrypter {
	return &BindingIDEncrypter{
		keyAlgorithm:      gojose.RSA_OAEP_256,
		contentEncryption: gojose.A256GCM,
	}
}

// Encrypt serializes the holder JWK map, builds a JWE encrypter for it and
// returns the compact serialization of the encrypted binding identifier.
func (e *BindingIDEncrypter) Encrypt(walletBindingID string, holderKey map[string]interface{}) (string, error) {
	raw, err := json.Marshal(holderKey)
	if err != nil {
		return "", resterr.New(resterr.CodeFailedToCreateJWE, err).WithErrorPrefix("serialize holder key")
	}

	var jwk gojose.JSONWebKey

	if err = jwk.UnmarshalJSON(raw); err != nil {
		return "", resterr.New(resterr.CodeFailedToCreateJWE, err).WithErrorPrefix("parse holder key")
	}

	encrypter, err := gojose.NewEncrypter(
		e.contentEncryption,
		gojose.Recipient{Algorithm: e.keyAlgorithm, Key: jwk.Key, KeyID: jwk.KeyID},
		(&gojose.EncrypterOptions{}).WithContentType("JWT"),
	)
	if err != nil {
		return "", resterr.New(resterr.CodeFailedToCreateJWE, err).WithErrorPrefix("create encrypter")
	}

	encrypted, err := encrypter.Encrypt([]byte(walletBindingID))
	if err != nil {
		return "", resterr.New(resterr.CodeFailedToCreateJWE, err).WithErrorPrefix("encrypt binding id")
	}

	compact, err := encrypted.CompactSerialize()
	if err != nil {
		return "", resterr.New(resterr.CodeFailedToCreateJWE, fmt.Errorf("serialize jwe: %w", err))
	}

	return compact, nil
}
