/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package binding exposes the wallet key binding endpoints.
package binding

//go:generate mockgen -destination controller_mocks_test.go -self_package mocks -package binding_test -source=controller.go

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
	"github.com/mosip/esignet-go/pkg/restapi/v1/common"
	"github.com/mosip/esignet-go/pkg/service/keybinding"
)

const (
	responseID      = "mosip.esignet.binding"
	responseVersion = "1.0"
)

// KeyBindingService is the binding business layer consumed by the controller.
type KeyBindingService interface {
	SendBindingOTP(ctx context.Context, req *keybinding.BindingOTPRequest,
		headers map[string]string) (*keybinding.BindingOTPResult, error)

	BindWallet(ctx context.Context, req *keybinding.WalletBindingRequest,
		headers map[string]string) (*keybinding.WalletBindingResult, error)

	ValidateBinding(ctx context.Context, req *keybinding.ValidateBindingRequest) (*keybinding.BindingAuthResult, error)
}

// Config holds the binding controller dependencies.
type Config struct {
	KeyBindingService KeyBindingService
	Tracer            trace.Tracer
}

// Controller for the binding endpoints.
type Controller struct {
	service KeyBindingService
	tracer  trace.Tracer
}

// NewController creates the binding Controller.
func NewController(config *Config) *Controller {
	return &Controller{
		service: config.KeyBindingService,
		tracer:  config.Tracer,
	}
}

// RegisterRoutes attaches the binding endpoints to the router group.
func (c *Controller) RegisterRoutes(g *echo.Group) {
	g.POST("/binding-otp", c.SendBindingOTP)
	g.POST("/wallet-binding", c.BindWallet)
	g.POST("/validate-binding", c.ValidateBinding)
}

// SendBindingOTP handles POST /binding-otp.
func (c *Controller) SendBindingOTP(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "SendBindingOTP")
	defer span.End()

	var body common.RequestWrapper[keybinding.BindingOTPRequest]

	if err := e.Bind(&body); err != nil {
		return writeError(e, resterr.NewInvalidRequestError(err))
	}

	if body.Request.IndividualID == "" {
		return writeError(e, resterr.New(resterr.CodeInvalidIdentifier,
			errors.New("individualId is required")))
	}

	if len(body.Request.OTPChannels) == 0 {
		return writeError(e, resterr.New(resterr.CodeInvalidOTPChannel,
			errors.New("otpChannels is required")))
	}

	result, err := c.service.SendBindingOTP(ctx, &body.Request, forwardedHeaders(e))
	if err != nil {
		return writeError(e, resterr.FromError(err, resterr.CodeSendOTPFailed))
	}

	return common.WriteResponse(e, responseID, responseVersion, result)
}

// BindWallet handles POST /wallet-binding.
func (c *Controller) BindWallet(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "BindWallet")
	defer span.End()

	var body common.RequestWrapper[keybinding.WalletBindingRequest]

	if err := e.Bind(&body); err != nil {
		return writeError(e, resterr.NewInvalidRequestError(err))
	}

	if err := validateWalletBindingRequest(&body.Request); err != nil {
		return writeError(e, err)
	}

	result, err := c.service.BindWallet(ctx, &body.Request, forwardedHeaders(e))
	if err != nil {
		return writeError(e, resterr.FromError(err, resterr.CodeKeyBindingFailed))
	}

	return common.WriteResponse(e, responseID, responseVersion, result)
}

// ValidateBinding handles POST /validate-binding.
func (c *Controller) ValidateBinding(e echo.Context) error {
	ctx, span := c.tracer.Start(e.Request().Context(), "ValidateBinding")
	defer span.End()

	var body common.RequestWrapper[keybinding.ValidateBindingRequest]

	if err := e.Bind(&body); err != nil {
		return writeError(e, resterr.NewInvalidRequestError(err))
	}

	if body.Request.TransactionID == "" {
		return writeError(e, resterr.New(resterr.CodeInvalidTransactionID,
			errors.New("transactionId is required")))
	}

	if body.Request.IndividualID == "" {
		return writeError(e, resterr.New(resterr.CodeInvalidIdentifier,
			errors.New("individualId is required")))
	}

	if len(body.Request.ChallengeList) == 0 {
		return writeError(e, resterr.New(resterr.CodeInvalidChallenge,
			errors.New("challengeList is required")))
	}

	result, err := c.service.ValidateBinding(ctx, &body.Request)
	if err != nil {
		return writeError(e, resterr.FromError(err, resterr.CodeInvalidChallenge))
	}

	return common.WriteResponse(e, responseID, responseVersion, result)
}

func validateWalletBindingRequest(req *keybinding.WalletBindingRequest) *resterr.Error {
	switch {
	case req.IndividualID == "":
		return resterr.New(resterr.CodeInvalidIdentifier, errors.New("individualId is required"))
	case req.AuthFactorType == "":
		return resterr.New(resterr.CodeInvalidChallengeFormat, errors.New("authFactorType is required"))
	case len(req.ChallengeList) == 0:
		return resterr.New(resterr.CodeInvalidChallenge, errors.New("challengeList is required"))
	case len(req.PublicKey) == 0:
		return resterr.New(resterr.CodeInvalidPublicKey, errors.New("publicKey is required"))
	}

	return nil
}

// forwardedHeaders snapshots the inbound request headers for the external
// key binder.
func forwardedHeaders(e echo.Context) map[string]string {
	headers := make(map[string]string)

	for name, values := range e.Request().Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return headers
}

func writeError(e echo.Context, err *resterr.Error) error {
	return common.WriteError(e, responseID, responseVersion, err)
}
