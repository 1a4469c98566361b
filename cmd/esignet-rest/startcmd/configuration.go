/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package startcmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mosip/esignet-go/pkg/auth"
	"github.com/mosip/esignet-go/pkg/dataprotect"
	"github.com/mosip/esignet-go/pkg/plugin/mock"
	"github.com/mosip/esignet-go/pkg/pop"
	"github.com/mosip/esignet-go/pkg/profile"
	"github.com/mosip/esignet-go/pkg/service/keybinding"
	"github.com/mosip/esignet-go/pkg/service/vcissuance"
	"github.com/mosip/esignet-go/pkg/storage/mongodb"
	"github.com/mosip/esignet-go/pkg/storage/mongodb/publickeystore"
	mongovcinoncestore "github.com/mosip/esignet-go/pkg/storage/mongodb/vcinoncestore"
	redisclient "github.com/mosip/esignet-go/pkg/storage/redis"
	redisvcinoncestore "github.com/mosip/esignet-go/pkg/storage/redis/vcinoncestore"
)

var supportedProofAlgorithms = []string{"RS256", "PS256", "ES256", "ES256K", "EdDSA"}

// Configuration is the assembled runtime of the esignet-rest API server.
type Configuration struct {
	MongoClient       *mongodb.Client
	RedisClient       *redisclient.Client
	Catalog           *profile.Catalog
	TokenIngestor     *auth.TokenIngestor
	KeyBindingService *keybinding.Service
	IssuanceService   *vcissuance.Service
	Tracer            trace.Tracer
	StartupParameters *startupParameters
}

//nolint:funlen
func prepareConfiguration(ctx context.Context, parameters *startupParameters) (*Configuration, error) {
	tracer := otel.GetTracerProvider().Tracer("esignet-rest")

	mongoClient, err := mongodb.New(parameters.mongoDBURL, parameters.mongoDBDatabase,
		mongodb.WithTraceProvider(otel.GetTracerProvider()))
	if err != nil {
		return nil, err
	}

	registryStore, err := publickeystore.New(ctx, mongoClient)
	if err != nil {
		return nil, fmt.Errorf("create public key store: %w", err)
	}

	var (
		redisClient      *redisclient.Client
		transactionStore vcissuance.TransactionStore
	)

	switch parameters.transactionStoreType {
	case transactionStoreTypeRedis:
		redisClient, err = redisclient.New(parameters.redisAddrs,
			redisclient.WithMasterName(parameters.redisMasterName),
			redisclient.WithPassword(parameters.redisPassword),
			redisclient.WithTraceProvider(otel.GetTracerProvider()))
		if err != nil {
			return nil, err
		}

		transactionStore = redisvcinoncestore.New(redisClient)
	default:
		transactionStore, err = mongovcinoncestore.New(ctx, mongoClient)
		if err != nil {
			return nil, fmt.Errorf("create transaction store: %w", err)
		}
	}

	catalog, err := profile.Load(parameters.issuerMetadataFile)
	if err != nil {
		return nil, err
	}

	keyBinder, err := mock.NewKeyBinder(&mock.KeyBinderConfig{})
	if err != nil {
		return nil, err
	}

	var bindingIDEncrypter keybinding.BindingIDEncrypter
	if parameters.encryptBindingID {
		bindingIDEncrypter = dataprotect.NewBindingIDEncrypter()
	}

	keyBindingService := keybinding.New(&keybinding.Config{
		KeyBinder:          keyBinder,
		RegistryStore:      registryStore,
		BindingIDEncrypter: bindingIDEncrypter,
		BindingAudienceID:  parameters.bindingAudienceID,
	})

	generator, err := mock.NewCredentialGenerator(&mock.CredentialGeneratorConfig{
		IssuerURI: parameters.credentialIssuerURI,
	})
	if err != nil {
		return nil, err
	}

	issuanceService := vcissuance.New(&vcissuance.Config{
		Catalog: catalog,
		ProofRegistry: pop.NewRegistry(
			pop.NewJWTProofValidator(supportedProofAlgorithms, parameters.credentialIssuerURI),
		),
		TransactionStore: transactionStore,
		Generator:        generator,
		CNonceExpiresIn:  time.Duration(parameters.cNonceExpireSeconds) * time.Second,
	})

	tokenIngestor := auth.NewTokenIngestor(&auth.Config{
		IssuerURI:        parameters.oauthIssuerURL,
		JWKSetURI:        parameters.oauthJWKSURL,
		AllowedAudiences: parameters.allowedAudiences,
		HTTPClient:       http.DefaultClient,
	})

	return &Configuration{
		MongoClient:       mongoClient,
		RedisClient:       redisClient,
		Catalog:           catalog,
		TokenIngestor:     tokenIngestor,
		KeyBindingService: keyBindingService,
		IssuanceService:   issuanceService,
		Tracer:            tracer,
		StartupParameters: parameters,
	}, nil
}
