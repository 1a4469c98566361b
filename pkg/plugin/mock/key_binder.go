/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package mock is a self-contained integration plugin for development and
// test deployments. It verifies a fixed OTP and issues certificates from an
// in-process CA instead of calling out to an identity system.
package mock

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	gojose "github.com/go-jose/go-jose/v3"

	"github.com/mosip/esignet-go/pkg/service/keybinding"
)

const (
	defaultOTPValue     = "111111"
	defaultCertValidity = 365 * 24 * time.Hour

	authFactorOTP = "OTP"
	authFactorWLA = "WLA"
)

// KeyBinderConfig holds the mock binder settings.
type KeyBinderConfig struct {
	OTPValue     string
	CertValidity time.Duration
	CAName       string
}

// KeyBinder is the mock external authenticator.
type KeyBinder struct {
	otpValue     string
	certValidity time.Duration

	caCert *x509.Certificate
	caKey  *ecdsa.PrivateKey
}

// NewKeyBinder creates the mock binder with a freshly generated signing CA.
func NewKeyBinder(config *KeyBinderConfig) (*KeyBinder, error) {
	otpValue := config.OTPValue
	if otpValue == "" {
		otpValue = defaultOTPValue
	}

	certValidity := config.CertValidity
	if certValidity <= 0 {
		certValidity = defaultCertValidity
	}

	caName := config.CAName
	if caName == "" {
		caName = "esignet-mock-binding-ca"
	}

	caCert, caKey, err := newSigningCA(caName, certValidity)
	if err != nil {
		return nil, fmt.Errorf("create signing ca: %w", err)
	}

	return &KeyBinder{
		otpValue:     otpValue,
		certValidity: certValidity,
		caCert:       caCert,
		caKey:        caKey,
	}, nil
}

// SendBindingOTP pretends to dispatch an OTP and echoes masked channels.
func (b *KeyBinder) SendBindingOTP(_ context.Context, individualID string, otpChannels []string,
	_ map[string]string) (*keybinding.OTPResult, error) {
	if individualID == "" {
		return nil, errors.New("individual id is required")
	}

	result := &keybinding.OTPResult{}

	for _, channel := range otpChannels {
		switch strings.ToLower(channel) {
		case "mobile":
			result.MaskedMobile = "XXXXXX" + suffix(individualID, 4)
		case "email":
			result.MaskedEmail = "XXXX@XXXX"
		default:
			return nil, fmt.Errorf("unsupported otp channel %s", channel)
		}
	}

	return result, nil
}

// SupportedChallengeFormats lists the challenge formats accepted per auth
// factor.
func (b *KeyBinder) SupportedChallengeFormats(authFactorType string) []string {
	switch authFactorType {
	case authFactorOTP:
		return []string{"alpha-numeric"}
	case authFactorWLA:
		return []string{"jwt"}
	default:
		return nil
	}
}

// DoKeyBinding verifies the OTP challenge and certifies the holder key.
func (b *KeyBinder) DoKeyBinding(_ context.Context, individualID string, challenges []keybinding.AuthChallenge,
	publicKey map[string]interface{}, _ string, _ map[string]string) (*keybinding.KeyBindingResult, error) {
	if err := b.verifyChallenges(challenges); err != nil {
		return nil, err
	}

	psuToken := partnerToken(individualID)

	certificate, err := b.certifyKey(psuToken, publicKey)
	if err != nil {
		return nil, err
	}

	return &keybinding.KeyBindingResult{
		Certificate:              certificate,
		PartnerSpecificUserToken: psuToken,
	}, nil
}

func (b *KeyBinder) verifyChallenges(challenges []keybinding.AuthChallenge) error {
	for _, challenge := range challenges {
		if challenge.AuthFactorType != authFactorOTP {
			return fmt.Errorf("auth factor %s is not verifiable by the mock binder", challenge.AuthFactorType)
		}

		if challenge.Challenge != b.otpValue {
			return errors.New("otp verification failed")
		}
	}

	return nil
}

// certifyKey issues a CA-signed certificate over the holder's public key.
func (b *KeyBinder) certifyKey(psuToken string, publicKey map[string]interface{}) (string, error) {
	raw, err := json.Marshal(publicKey)
	if err != nil {
		return "", fmt.Errorf("marshal holder key: %w", err)
	}

	var jwk gojose.JSONWebKey

	if err = jwk.UnmarshalJSON(raw); err != nil {
		return "", fmt.Errorf("parse holder key: %w", err)
	}

	if !jwk.IsPublic() {
		return "", errors.New("holder key must be public")
	}

	serial, err := rand.Int(rand.Reader, big.NewInt(0).Lsh(big.NewInt(1), 128))
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: psuToken,
		},
		NotBefore:   now,
		NotAfter:    now.Add(b.certValidity),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, b.caCert, jwk.Key, b.caKey)
	if err != nil {
		return "", fmt.Errorf("create certificate: %w", err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})), nil
}

func newSigningCA(name string, validity time.Duration) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: name,
		},
		NotBefore:             now,
		NotAfter:              now.Add(validity + 24*time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, nil, err
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, err
	}

	return cert, key, nil
}

// partnerToken derives a stable pseudonymous token for the individual.
func partnerToken(individualID string) string {
	sum := sha256.Sum256([]byte("mock-partner:" + individualID))

	return base64.RawURLEncoding.EncodeToString(sum[:16])
}

func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[len(s)-n:]
}
