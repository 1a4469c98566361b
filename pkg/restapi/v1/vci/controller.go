/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package vci exposes the OpenID4VCI credential endpoint and the issuer
// metadata well-known document. Unlike the binding envelope endpoints, this
// surface speaks plain OAuth2-style JSON errors.
package vci

//go:generate mockgen -destination controller_mocks_test.go -self_package mocks -package vci_test -source=controller.go

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/mosip/esignet-go/pkg/auth"
	"github.com/mosip/esignet-go/pkg/restapi/resterr"
	"github.com/mosip/esignet-go/pkg/service/vcissuance"
)

// IssuanceService is the credential issuance business layer consumed by the
// controller.
type IssuanceService interface {
	GetCredential(ctx context.Context, token *auth.ParsedAccessToken,
		req *vcissuance.CredentialRequest) (*vcissuance.CredentialResponse, error)

	IssuerMetadata(version string) []byte
}

// Config holds the vci controller dependencies.
type Config struct {
	IssuanceService IssuanceService
	Tracer          trace.Tracer
}

// Controller for the credential issuance endpoints.
type Controller struct {
	service IssuanceService
	tracer  trace.Tracer
}

// NewController creates the vci Controller.
func NewController(config *Config) *Controller {
	return &Controller{
		service: config.IssuanceService,
		tracer:  config.Tracer,
	}
}

// RegisterRoutes attaches the issuance endpoints to the router group.
func (c *Controller) RegisterRoutes(g *echo.Group) {
	g.POST("/credential", c.GetCredential)
	g.GET("/.well-known/openid-credential-issuer", c.IssuerMetadata)
}

// errorResponse is the OAuth2-style error body of the credential endpoint.
// A nonce rejection additionally carries the fresh nonce to retry with.
type errorResponse struct {
	Error           string `json:"error"`
	CNonce          string `json:"c_nonce,omitempty"`
	CNonceExpiresIn int    `json:"c_nonce_expires_in,omitempty"`
}

// GetCredential handles POST /credential.
func (c *Controller) GetCredential(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "GetCredential")
	defer span.End()

	var body vcissuance.CredentialRequest

	if err := e.Bind(&body); err != nil {
		return e.JSON(http.StatusBadRequest, &errorResponse{
			Error: string(resterr.CodeInvalidRequest),
		})
	}

	response, err := c.service.GetCredential(ctx, auth.FromContext(e), &body)
	if err != nil {
		return writeIssuanceError(e, err)
	}

	return e.JSON(http.StatusOK, response)
}

// IssuerMetadata handles GET /.well-known/openid-credential-issuer. An
// optional version query pins an older metadata document.
func (c *Controller) IssuerMetadata(e echo.Context) error {
	_, span := c.tracer.Start(e.Request().Context(), "IssuerMetadata")
	defer span.End()

	return e.JSONBlob(http.StatusOK, c.service.IssuerMetadata(e.QueryParam("version")))
}

func writeIssuanceError(e echo.Context, err error) error {
	var nonceErr *vcissuance.InvalidNonceError

	if errors.As(err, &nonceErr) {
		return e.JSON(http.StatusBadRequest, &errorResponse{
			Error:           string(resterr.CodeInvalidProof),
			CNonce:          nonceErr.CNonce,
			CNonceExpiresIn: nonceErr.CNonceExpiresIn,
		})
	}

	restErr := resterr.FromError(err, resterr.CodeVCIssuanceFailed)

	status := http.StatusBadRequest
	if restErr.HTTPStatus == http.StatusUnauthorized {
		status = http.StatusUnauthorized
	}

	return e.JSON(status, &errorResponse{
		Error: restErr.Code(),
	})
}
