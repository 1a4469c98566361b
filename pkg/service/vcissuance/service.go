/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package vcissuance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/pkg/auth"
	"github.com/mosip/esignet-go/pkg/pop"
	"github.com/mosip/esignet-go/pkg/profile"
	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

var logger = log.New("vcissuance")

const (
	defaultCNonceExpiresIn = 40 * time.Second
	nonceMintAttempts      = 3

	scopeClaim    = "scope"
	clientIDClaim = "client_id"
	cNonceClaim   = "c_nonce"
	issuedAtClaim = "iat"

	baseCredentialType = "VerifiableCredential"
)

// Config holds the issuance service dependencies.
type Config struct {
	Catalog          *profile.Catalog
	ProofRegistry    *pop.Registry
	TransactionStore TransactionStore
	Generator        CredentialGenerator
	CNonceExpiresIn  time.Duration
}

// Service implements the credential endpoint semantics.
type Service struct {
	catalog          *profile.Catalog
	proofRegistry    *pop.Registry
	transactionStore TransactionStore
	generator        CredentialGenerator
	cNonceExpiresIn  time.Duration
}

// New creates the issuance Service.
func New(config *Config) *Service {
	cNonceExpiresIn := config.CNonceExpiresIn
	if cNonceExpiresIn <= 0 {
		cNonceExpiresIn = defaultCNonceExpiresIn
	}

	return &Service{
		catalog:          config.Catalog,
		proofRegistry:    config.ProofRegistry,
		transactionStore: config.TransactionStore,
		generator:        config.Generator,
		cNonceExpiresIn:  cNonceExpiresIn,
	}
}

// GetCredential processes one credential request against the bearer's access
// token. The request must carry a proof bound to the current server nonce;
// a stale or missing nonce fails the request with a fresh nonce attached.
func (s *Service) GetCredential(ctx context.Context, token *auth.ParsedAccessToken,
	req *CredentialRequest) (*CredentialResponse, error) {
	if token == nil || !token.Active {
		return nil, resterr.NewNotAuthenticatedError(errors.New("access token is not active"))
	}

	meta, err := s.resolveScope(token)
	if err != nil {
		return nil, err
	}

	if req.Proof == nil {
		return nil, resterr.New(resterr.CodeInvalidProof, errors.New("credential request carries no proof"))
	}

	validator, err := s.proofRegistry.Get(req.Proof.ProofType)
	if err != nil {
		return nil, err
	}

	if len(meta.ProofTypesSupported) > 0 && !lo.Contains(meta.ProofTypesSupported, req.Proof.ProofType) {
		return nil, resterr.New(resterr.CodeUnsupportedProofType,
			fmt.Errorf("proof type %s is not accepted for scope %s", req.Proof.ProofType, meta.Scope))
	}

	cNonce, fromStore, err := s.currentNonce(ctx, token)
	if err != nil {
		return nil, err
	}

	if !validator.Validate(stringClaim(token.Claims, clientIDClaim), cNonce, req.Proof) {
		return nil, resterr.New(resterr.CodeInvalidProof, errors.New("proof validation failed"))
	}

	if fromStore {
		if err = s.consumeNonce(ctx, token, cNonce); err != nil {
			return nil, err
		}
	}

	holderID, err := validator.KeyMaterial(req.Proof)
	if err != nil {
		return nil, resterr.FromError(err, resterr.CodeInvalidProof)
	}

	if err = s.validateRequestedCredential(meta, req); err != nil {
		return nil, err
	}

	credential, err := s.generate(ctx, &VCRequest{
		Metadata:    meta,
		HolderID:    holderID,
		TokenClaims: token.Claims,
		Definition:  req.CredentialDefinition,
	})
	if err != nil {
		logger.Errorc(ctx, "credential generation failed", log.WithError(err))

		return nil, resterr.FromError(err, resterr.CodeVCIssuanceFailed)
	}

	return &CredentialResponse{
		Format:     meta.Format,
		Credential: credential,
	}, nil
}

// IssuerMetadata returns the raw issuer metadata document for the requested
// version.
func (s *Service) IssuerMetadata(version string) []byte {
	return s.catalog.Document(version)
}

// resolveScope maps the first resolvable authorized scope to its credential
// metadata.
func (s *Service) resolveScope(token *auth.ParsedAccessToken) (*profile.CredentialMetadata, error) {
	scopes := strings.Fields(stringClaim(token.Claims, scopeClaim))

	for _, scope := range scopes {
		if meta, ok := s.catalog.FindByScope(scope); ok {
			return meta, nil
		}
	}

	return nil, resterr.New(resterr.CodeInvalidScope,
		errors.New("no issuable credential for the authorized scopes"))
}

// currentNonce returns the nonce the submitted proof must be bound to. The
// stored transaction wins; an access token minted with its own c_nonce claim
// covers deployments where the authorization server seeds the nonce. When
// neither yields a live nonce a fresh one is stored and returned to the
// wallet as an error.
func (s *Service) currentNonce(ctx context.Context, token *auth.ParsedAccessToken) (string, bool, error) {
	tx, err := s.transactionStore.Get(ctx, token.AccessTokenHash)
	if err != nil {
		return "", false, resterr.New(resterr.CodeVCIssuanceFailed, err).WithErrorPrefix("load transaction")
	}

	now := time.Now().UTC()

	if tx != nil && !tx.Expired(now) {
		return tx.CNonce, true, nil
	}

	if tx == nil {
		if claimed := s.nonceFromTokenClaims(token, now); claimed != "" {
			return claimed, false, nil
		}
	}

	return "", false, s.issueFreshNonce(ctx, token)
}

// nonceFromTokenClaims extracts a c_nonce embedded in the access token. Its
// validity window starts at the token's iat.
func (s *Service) nonceFromTokenClaims(token *auth.ParsedAccessToken, now time.Time) string {
	cNonce := stringClaim(token.Claims, cNonceClaim)
	if cNonce == "" {
		return ""
	}

	iat, ok := token.Claims[issuedAtClaim].(float64)
	if !ok {
		return ""
	}

	if now.After(time.Unix(int64(iat), 0).Add(s.cNonceExpiresIn)) {
		return ""
	}

	return cNonce
}

// issueFreshNonce mints a new nonce for the access token and reports it as
// an InvalidNonceError. Under concurrent requests the first writer's nonce
// is handed to every caller.
func (s *Service) issueFreshNonce(ctx context.Context, token *auth.ParsedAccessToken) error {
	for attempt := 0; attempt < nonceMintAttempts; attempt++ {
		tx := &Transaction{
			CNonce:          uuid.NewString(),
			CNonceIssuedAt:  time.Now().UTC(),
			CNonceExpiresIn: int(s.cNonceExpiresIn.Seconds()),
		}

		won, err := s.transactionStore.SetIfNotExist(ctx, token.AccessTokenHash, tx, s.cNonceExpiresIn)
		if err != nil {
			return resterr.New(resterr.CodeVCIssuanceFailed, err).WithErrorPrefix("store transaction")
		}

		if !won {
			stored, getErr := s.transactionStore.Get(ctx, token.AccessTokenHash)
			if getErr != nil {
				return resterr.New(resterr.CodeVCIssuanceFailed, getErr).WithErrorPrefix("load transaction")
			}

			if stored == nil {
				// Lost to a row that expired before it became visible. Mint
				// again, never hand out a nonce that was not stored.
				continue
			}

			tx = stored
		}

		return &InvalidNonceError{
			CNonce:          tx.CNonce,
			CNonceExpiresIn: tx.CNonceExpiresIn,
		}
	}

	return resterr.New(resterr.CodeVCIssuanceFailed,
		errors.New("could not mint a credential nonce"))
}

// consumeNonce retires a store-issued nonce after successful proof
// validation. A concurrent consumer winning the delete invalidates this
// request.
func (s *Service) consumeNonce(ctx context.Context, token *auth.ParsedAccessToken, cNonce string) error {
	tx, err := s.transactionStore.GetAndDelete(ctx, token.AccessTokenHash)
	if err != nil {
		return resterr.New(resterr.CodeVCIssuanceFailed, err).WithErrorPrefix("consume transaction")
	}

	if tx == nil || tx.CNonce != cNonce {
		return s.issueFreshNonce(ctx, token)
	}

	return nil
}

// validateRequestedCredential checks the wallet's requested format and types
// against the scope-resolved metadata.
func (s *Service) validateRequestedCredential(meta *profile.CredentialMetadata, req *CredentialRequest) error {
	if req.Format != meta.Format {
		return resterr.New(resterr.CodeUnsupportedVCFormat,
			fmt.Errorf("format %s is not issuable for scope %s", req.Format, meta.Scope))
	}

	if req.Format == profile.FormatLdpVC {
		if req.CredentialDefinition == nil {
			return resterr.New(resterr.CodeUnsupportedVCType,
				errors.New("ldp_vc request carries no credential_definition"))
		}

		// The request must name every configured type, the base type
		// included. Extra requested types are tolerated.
		if !lo.Contains(req.CredentialDefinition.Type, baseCredentialType) {
			return resterr.New(resterr.CodeUnsupportedVCType,
				fmt.Errorf("requested types do not include %s", baseCredentialType))
		}

		for _, required := range meta.Types {
			if !lo.Contains(req.CredentialDefinition.Type, required) {
				return resterr.New(resterr.CodeUnsupportedVCType,
					fmt.Errorf("requested types do not include %s", required))
			}
		}
	}

	return nil
}

func (s *Service) generate(ctx context.Context, req *VCRequest) (interface{}, error) {
	if s.generator == nil {
		return nil, resterr.New(resterr.CodeVCIssuanceFailed,
			errors.New("no credential generator configured"))
	}

	switch req.Metadata.Format {
	case profile.FormatLdpVC:
		doc, err := s.generator.GenerateLinkedDataCredential(ctx, req)
		if err != nil {
			return nil, err
		}

		if len(doc) == 0 {
			return nil, resterr.New(resterr.CodeVCIssuanceFailed,
				errors.New("generator returned no credential"))
		}

		return doc, nil
	case profile.FormatJwtVCJSON, profile.FormatJwtVCLD:
		token, err := s.generator.GenerateSignedCredential(ctx, req)
		if err != nil {
			return nil, err
		}

		if token == "" {
			return nil, resterr.New(resterr.CodeVCIssuanceFailed,
				errors.New("generator returned no credential"))
		}

		return token, nil
	default:
		return nil, resterr.New(resterr.CodeUnsupportedVCFormat,
			fmt.Errorf("unsupported credential format %s", req.Metadata.Format))
	}
}

func stringClaim(claims map[string]interface{}, name string) string {
	if v, ok := claims[name].(string); ok {
		return v
	}

	return ""
}
