/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package common holds the request/response envelope shared by all binding
// endpoints. Domain errors ride inside the envelope with HTTP 200; transport
// level authentication failures are the only 4xx responses.
package common

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mosip/esignet-go/pkg/restapi/resterr"
)

const utcTimeFormat = "2006-01-02T15:04:05.000Z"

// RequestWrapper is the generic envelope of inbound binding requests.
type RequestWrapper[T any] struct {
	RequestTime string `json:"requestTime,omitempty"`
	Request     T      `json:"request"`
}

// ResponseWrapper is the generic envelope of outbound binding responses.
type ResponseWrapper[T any] struct {
	ID           string  `json:"id,omitempty"`
	Version      string  `json:"version,omitempty"`
	ResponseTime string  `json:"responsetime"`
	Response     T       `json:"response,omitempty"`
	Errors       []Error `json:"errors,omitempty"`
}

// Error is the wire form of a domain error inside the envelope.
type Error struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// WriteResponse writes a success envelope.
func WriteResponse[T any](e echo.Context, id, version string, response T) error {
	return e.JSON(http.StatusOK, &ResponseWrapper[T]{
		ID:           id,
		Version:      version,
		ResponseTime: time.Now().UTC().Format(utcTimeFormat),
		Response:     response,
	})
}

// WriteError writes a domain error envelope. The embedded error list carries
// only the stable code and a generic message, never the wrapped cause.
func WriteError(e echo.Context, id, version string, err *resterr.Error) error {
	return e.JSON(err.HTTPStatus, &ResponseWrapper[any]{
		ID:           id,
		Version:      version,
		ResponseTime: time.Now().UTC().Format(utcTimeFormat),
		Errors: []Error{
			{
				ErrorCode:    err.Code(),
				ErrorMessage: messageForCode(err.ErrorCode),
			},
		},
	})
}

var errorMessages = map[resterr.Code]string{
	resterr.CodeInvalidRequest:         "Invalid request",
	resterr.CodeInvalidIdentifier:      "Invalid individual identifier",
	resterr.CodeInvalidOTPChannel:      "Invalid OTP channel",
	resterr.CodeSendOTPFailed:          "Failed to send OTP",
	resterr.CodeInvalidChallengeFormat: "Invalid auth factor type or challenge format",
	resterr.CodeKeyBindingFailed:       "Key binding failed",
	resterr.CodeDuplicatePublicKey:     "Public key already registered to another identity",
	resterr.CodeKeyBindingNotFound:     "No key binding found",
	resterr.CodeUnboundAuthFactor:      "Auth factor is not bound",
	resterr.CodeInvalidChallenge:       "Challenge verification failed",
	resterr.CodeInvalidWLAToken:        "Invalid wallet local authentication token",
}

func messageForCode(code resterr.Code) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
