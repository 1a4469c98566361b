/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package dataprotect_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"testing"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosip/esignet-go/pkg/dataprotect"
)

func TestEncrypt(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	holderKey := jwkMap(t, &gojose.JSONWebKey{Key: &key.PublicKey, KeyID: "holder-key-1", Use: "enc"})

	encrypter := dataprotect.NewBindingIDEncrypter()

	t.Run("holder can decrypt the binding id", func(t *testing.T) {
		compact, err := encrypter.Encrypt("wallet-binding-id-1", holderKey)
		require.NoError(t, err)

		jwe, err := gojose.ParseEncrypted(compact)
		require.NoError(t, err)

		decrypted, err := jwe.Decrypt(key)
		require.NoError(t, err)
		assert.Equal(t, "wallet-binding-id-1", string(decrypted))
	})

	t.Run("unparsable holder key", func(t *testing.T) {
		_, err := encrypter.Encrypt("wallet-binding-id-1", map[string]interface{}{"kty": "garbage"})
		require.Error(t, err)
	})

	t.Run("symmetric holder key is rejected", func(t *testing.T) {
		_, err := encrypter.Encrypt("wallet-binding-id-1", map[string]interface{}{
			"kty": "oct",
			"k":   "c2VjcmV0LXNlY3JldC1zZWNyZXQ",
		})
		require.Error(t, err)
	})
}

func jwkMap(t *testing.T, jwk *gojose.JSONWebKey) map[string]interface{} {
	t.Helper()

	raw, err := jwk.MarshalJSON()
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	return m
}
