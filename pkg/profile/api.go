/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package profile holds the operator-configured credential issuer metadata.
// The catalog is loaded once at startup and is read-only afterwards.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Format of an issued verifiable credential.
type Format = string

const (
	FormatLdpVC     Format = "ldp_vc"
	FormatJwtVCJSON Format = "jwt_vc_json"
	FormatJwtVCLD   Format = "jwt_vc_json-ld"
)

// CredentialMetadata describes one issuable credential. An authorization
// scope resolves to exactly one CredentialMetadata.
type CredentialMetadata struct {
	ID                  string
	Format              Format
	Scope               string
	Types               []string
	ProofTypesSupported []string
}

// issuerDocument mirrors the OpenID4VCI issuer metadata wire document.
type issuerDocument struct {
	CredentialIssuer     string                          `json:"credential_issuer"`
	CredentialEndpoint   string                          `json:"credential_endpoint"`
	CredentialsSupported map[string]*credentialSupported `json:"credentials_supported"`
}

type credentialSupported struct {
	Format               Format                `json:"format"`
	Scope                string                `json:"scope"`
	ProofTypesSupported  []string              `json:"proof_types_supported,omitempty"`
	CredentialDefinition *credentialDefinition `json:"credential_definition,omitempty"`
}

type credentialDefinition struct {
	Context           []string               `json:"@context,omitempty"`
	Type              []string               `json:"type,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject,omitempty"`
}

// Catalog is the versioned credential issuer metadata store.
type Catalog struct {
	versions map[string]json.RawMessage
	latest   *issuerDocument
}

const latestVersion = "latest"

// Load reads the catalog from a JSON file keyed by metadata version. A
// "latest" entry is required.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read issuer metadata: %w", err)
	}

	return Parse(b)
}

// Parse builds a Catalog from the raw versioned metadata document.
func Parse(b []byte) (*Catalog, error) {
	var versions map[string]json.RawMessage

	if err := json.Unmarshal(b, &versions); err != nil {
		return nil, fmt.Errorf("decode issuer metadata: %w", err)
	}

	raw, ok := versions[latestVersion]
	if !ok {
		return nil, fmt.Errorf("issuer metadata has no %q entry", latestVersion)
	}

	var latest issuerDocument

	if err := json.Unmarshal(raw, &latest); err != nil {
		return nil, fmt.Errorf("decode latest issuer metadata: %w", err)
	}

	return &Catalog{
		versions: versions,
		latest:   &latest,
	}, nil
}

// Document returns the raw metadata document for the given version, falling
// back to the latest one for unknown versions.
func (c *Catalog) Document(version string) json.RawMessage {
	if raw, ok := c.versions[version]; ok {
		return raw
	}

	return c.versions[latestVersion]
}

// FindByScope resolves the credential metadata mapped to an authorization
// scope. Resolution always happens against the latest metadata.
func (c *Catalog) FindByScope(scope string) (*CredentialMetadata, bool) {
	for id, supported := range c.latest.CredentialsSupported {
		if supported.Scope != scope {
			continue
		}

		meta := &CredentialMetadata{
			ID:                  id,
			Format:              supported.Format,
			Scope:               supported.Scope,
			ProofTypesSupported: supported.ProofTypesSupported,
		}

		if supported.CredentialDefinition != nil {
			meta.Types = supported.CredentialDefinition.Type
		}

		return meta, true
	}

	return nil, false
}
