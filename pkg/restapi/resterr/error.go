/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package resterr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a stable, machine-readable error code surfaced to API clients.
type Code string

const (
	CodeInvalidRequest       Code = "invalid_request"
	CodeInvalidAuthToken     Code = "invalid_token"
	CodeInvalidIdentifier    Code = "invalid_identifier"
	CodeInvalidOTPChannel    Code = "invalid_otp_channel"
	CodeInvalidChallenge     Code = "invalid_challenge"
	CodeInvalidTransactionID Code = "invalid_transaction_id"
	CodeSendOTPFailed        Code = "send_otp_failed"

	CodeInvalidChallengeFormat Code = "invalid_auth_factor_type_or_challenge_format"
	CodeKeyBindingFailed       Code = "key_binding_failed"
	CodeDuplicatePublicKey     Code = "duplicate_public_key"
	CodeKeyBindingNotFound     Code = "binding_not_found"
	CodeUnboundAuthFactor      Code = "unbound_auth_factor"
	CodeInvalidWLAToken        Code = "invalid_wla_token"
	CodeInvalidCertificate     Code = "invalid_certificate"
	CodeInvalidPublicKey       Code = "invalid_public_key"
	CodeFailedToCreateJWE      Code = "failed_to_create_jwe"

	CodeInvalidScope           Code = "invalid_scope"
	CodeInvalidProof           Code = "invalid_proof"
	CodeUnsupportedProofType   Code = "unsupported_proof_type"
	CodeUnsupportedVCFormat    Code = "unsupported_credential_format"
	CodeUnsupportedVCType      Code = "unsupported_credential_type"
	CodeVCIssuanceFailed       Code = "vc_issuance_failed"
	CodeProofHeaderInvalidTyp  Code = "proof_header_invalid_typ"
	CodeProofHeaderInvalidAlg  Code = "proof_header_invalid_alg"
	CodeProofHeaderInvalidKey  Code = "proof_header_invalid_key"
	CodeProofHeaderAmbiguousKey Code = "proof_header_ambiguous_key"
)

// Error is the single domain error type crossing component boundaries.
// Infrastructure failures are wrapped into the nearest domain code before
// they reach a client; the underlying error is kept for server-side logs only.
type Error struct {
	ErrorCode      Code
	HTTPStatus     int
	IncorrectValue string
	Err            error
}

// New creates an Error with the given code. The wrapped err stays server-side.
func New(code Code, err error) *Error {
	if err == nil {
		err = errors.New(string(code))
	}

	return &Error{
		ErrorCode:  code,
		HTTPStatus: http.StatusOK,
		Err:        err,
	}
}

func NewInvalidRequestError(err error) *Error {
	return New(CodeInvalidRequest, err)
}

func NewNotAuthenticatedError(err error) *Error {
	return New(CodeInvalidAuthToken, err).WithHTTPStatus(http.StatusUnauthorized)
}

func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status

	return e
}

func (e *Error) WithIncorrectValue(value string) *Error {
	e.IncorrectValue = value

	return e
}

func (e *Error) WithErrorPrefix(prefix string) *Error {
	e.Err = fmt.Errorf("%s: %w", prefix, e.Err)

	return e
}

func (e *Error) Error() string {
	var details []string

	if e.IncorrectValue != "" {
		details = append(details, fmt.Sprintf("incorrect value: %s", e.IncorrectValue))
	}

	if e.HTTPStatus != 0 && e.HTTPStatus != http.StatusOK {
		details = append(details, fmt.Sprintf("http status: %d", e.HTTPStatus))
	}

	return fmt.Sprintf("%s[%s]: %v", e.ErrorCode, strings.Join(details, "; "), e.Err)
}

func (e *Error) Code() string {
	return string(e.ErrorCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromError returns err as *Error, wrapping it under fallback when it carries
// no domain code yet.
func FromError(err error, fallback Code) *Error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	return New(fallback, err)
}
