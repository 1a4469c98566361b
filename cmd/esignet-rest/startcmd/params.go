/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package startcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "Host:Port to run the esignet-rest instance on."
	hostURLEnvKey        = "ESIGNET_REST_HOST_URL"

	mongoDBURLFlagName  = "mongodb-url"
	mongoDBURLEnvKey    = "ESIGNET_REST_MONGODB_URL"
	mongoDBURLFlagUsage = "MongoDB connection string, e.g. mongodb://mongodb.example.com:27017. " +
		commonEnvVarUsageText + mongoDBURLEnvKey

	mongoDBDatabaseFlagName  = "mongodb-database"
	mongoDBDatabaseEnvKey    = "ESIGNET_REST_MONGODB_DATABASE"
	mongoDBDatabaseFlagUsage = "MongoDB database name (default esignet). " +
		commonEnvVarUsageText + mongoDBDatabaseEnvKey

	transactionStoreTypeFlagName  = "transaction-store-type"
	transactionStoreTypeEnvKey    = "ESIGNET_REST_TRANSACTION_STORE_TYPE"
	transactionStoreTypeFlagUsage = "Backend for issuance transactions. Supported options: mongodb, redis " +
		"(default mongodb). " + commonEnvVarUsageText + transactionStoreTypeEnvKey

	redisURLFlagName  = "redis-url"
	redisURLEnvKey    = "ESIGNET_REST_REDIS_URL"
	redisURLFlagUsage = "Comma-separated list of redis addresses. Required when transaction-store-type is " +
		"redis. " + commonEnvVarUsageText + redisURLEnvKey

	redisMasterNameFlagName  = "redis-master-name"
	redisMasterNameEnvKey    = "ESIGNET_REST_REDIS_MASTER_NAME"
	redisMasterNameFlagUsage = "Redis sentinel master name. " + commonEnvVarUsageText + redisMasterNameEnvKey

	redisPasswordFlagName  = "redis-password"
	redisPasswordEnvKey    = "ESIGNET_REST_REDIS_PASSWORD" //nolint: gosec
	redisPasswordFlagUsage = "Redis password. " + commonEnvVarUsageText + redisPasswordEnvKey

	oauthIssuerURLFlagName  = "oauth-issuer-url"
	oauthIssuerURLEnvKey    = "ESIGNET_REST_OAUTH_ISSUER_URL"
	oauthIssuerURLFlagUsage = "Issuer URI expected in access token iss claims. " +
		commonEnvVarUsageText + oauthIssuerURLEnvKey

	oauthJWKSURLFlagName  = "oauth-jwk-set-url"
	oauthJWKSURLEnvKey    = "ESIGNET_REST_OAUTH_JWK_SET_URL"
	oauthJWKSURLFlagUsage = "JWK set URL used to verify access token signatures. " +
		commonEnvVarUsageText + oauthJWKSURLEnvKey

	allowedAudiencesFlagName  = "oauth-allowed-audiences"
	allowedAudiencesEnvKey    = "ESIGNET_REST_OAUTH_ALLOWED_AUDIENCES"
	allowedAudiencesFlagUsage = "Comma-separated list of audiences accepted in access tokens. " +
		commonEnvVarUsageText + allowedAudiencesEnvKey

	bindingAudienceFlagName  = "binding-audience-id"
	bindingAudienceEnvKey    = "ESIGNET_REST_BINDING_AUDIENCE_ID"
	bindingAudienceFlagUsage = "Audience expected in wallet local authentication tokens. " +
		commonEnvVarUsageText + bindingAudienceEnvKey

	issuerMetadataFileFlagName  = "issuer-metadata-file"
	issuerMetadataFileEnvKey    = "ESIGNET_REST_ISSUER_METADATA_FILE"
	issuerMetadataFileFlagUsage = "Path to the versioned credential issuer metadata JSON file. " +
		commonEnvVarUsageText + issuerMetadataFileEnvKey

	credentialIssuerURIFlagName  = "credential-issuer-uri"
	credentialIssuerURIEnvKey    = "ESIGNET_REST_CREDENTIAL_ISSUER_URI"
	credentialIssuerURIFlagUsage = "Identifier of this credential issuer, used as the aud of key proofs. " +
		commonEnvVarUsageText + credentialIssuerURIEnvKey

	encryptBindingIDFlagName  = "encrypt-binding-id"
	encryptBindingIDEnvKey    = "ESIGNET_REST_ENCRYPT_BINDING_ID"
	encryptBindingIDFlagUsage = "Encrypt the binding id in key binding responses as a JWE addressed to the " +
		"wallet key (default false). " + commonEnvVarUsageText + encryptBindingIDEnvKey

	cNonceExpireSecondsFlagName  = "cnonce-expire-seconds"
	cNonceExpireSecondsEnvKey    = "ESIGNET_REST_CNONCE_EXPIRE_SECONDS"
	cNonceExpireSecondsFlagUsage = "Lifetime of issued c_nonce values in seconds (default 40). " +
		commonEnvVarUsageText + cNonceExpireSecondsEnvKey

	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "ESIGNET_REST_LOG_LEVEL"
	logLevelFlagUsage = "Logging level. Supported options: panic, fatal, error, warn, info, debug. " +
		commonEnvVarUsageText + logLevelEnvKey
)

const (
	transactionStoreTypeMongo = "mongodb"
	transactionStoreTypeRedis = "redis"

	defaultMongoDBDatabase     = "esignet"
	defaultCNonceExpireSeconds = 40
)

type startupParameters struct {
	hostURL              string
	mongoDBURL           string
	mongoDBDatabase      string
	transactionStoreType string
	redisAddrs           []string
	redisMasterName      string
	redisPassword        string
	oauthIssuerURL       string
	oauthJWKSURL         string
	allowedAudiences     []string
	bindingAudienceID    string
	issuerMetadataFile   string
	credentialIssuerURI  string
	encryptBindingID     bool
	cNonceExpireSeconds  int
	logLevel             string
}

//nolint:funlen
func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	mongoDBURL, err := cmdutils.GetUserSetVarFromString(cmd, mongoDBURLFlagName, mongoDBURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	mongoDBDatabase := cmdutils.GetUserSetOptionalVarFromString(cmd, mongoDBDatabaseFlagName, mongoDBDatabaseEnvKey)
	if mongoDBDatabase == "" {
		mongoDBDatabase = defaultMongoDBDatabase
	}

	transactionStoreType := cmdutils.GetUserSetOptionalVarFromString(cmd, transactionStoreTypeFlagName,
		transactionStoreTypeEnvKey)
	if transactionStoreType == "" {
		transactionStoreType = transactionStoreTypeMongo
	}

	if transactionStoreType != transactionStoreTypeMongo && transactionStoreType != transactionStoreTypeRedis {
		return nil, fmt.Errorf("unsupported transaction store type %s", transactionStoreType)
	}

	redisURL := cmdutils.GetUserSetOptionalVarFromString(cmd, redisURLFlagName, redisURLEnvKey)

	var redisAddrs []string
	if redisURL != "" {
		redisAddrs = strings.Split(redisURL, ",")
	}

	if transactionStoreType == transactionStoreTypeRedis && len(redisAddrs) == 0 {
		return nil, fmt.Errorf("%s is required when %s is redis", redisURLFlagName, transactionStoreTypeFlagName)
	}

	redisMasterName := cmdutils.GetUserSetOptionalVarFromString(cmd, redisMasterNameFlagName, redisMasterNameEnvKey)
	redisPassword := cmdutils.GetUserSetOptionalVarFromString(cmd, redisPasswordFlagName, redisPasswordEnvKey)

	oauthIssuerURL, err := cmdutils.GetUserSetVarFromString(cmd, oauthIssuerURLFlagName, oauthIssuerURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	oauthJWKSURL, err := cmdutils.GetUserSetVarFromString(cmd, oauthJWKSURLFlagName, oauthJWKSURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	allowedAudiences, err := cmdutils.GetUserSetVarFromArrayString(cmd, allowedAudiencesFlagName,
		allowedAudiencesEnvKey, false)
	if err != nil {
		return nil, err
	}

	bindingAudienceID, err := cmdutils.GetUserSetVarFromString(cmd, bindingAudienceFlagName,
		bindingAudienceEnvKey, false)
	if err != nil {
		return nil, err
	}

	issuerMetadataFile, err := cmdutils.GetUserSetVarFromString(cmd, issuerMetadataFileFlagName,
		issuerMetadataFileEnvKey, false)
	if err != nil {
		return nil, err
	}

	credentialIssuerURI, err := cmdutils.GetUserSetVarFromString(cmd, credentialIssuerURIFlagName,
		credentialIssuerURIEnvKey, false)
	if err != nil {
		return nil, err
	}

	encryptBindingID := false

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, encryptBindingIDFlagName,
		encryptBindingIDEnvKey); v != "" {
		encryptBindingID, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", encryptBindingIDFlagName, err)
		}
	}

	cNonceExpireSeconds := defaultCNonceExpireSeconds

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, cNonceExpireSecondsFlagName,
		cNonceExpireSecondsEnvKey); v != "" {
		cNonceExpireSeconds, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", cNonceExpireSecondsFlagName, err)
		}
	}

	logLevel := cmdutils.GetUserSetOptionalVarFromString(cmd, logLevelFlagName, logLevelEnvKey)

	return &startupParameters{
		hostURL:              hostURL,
		mongoDBURL:           mongoDBURL,
		mongoDBDatabase:      mongoDBDatabase,
		transactionStoreType: transactionStoreType,
		redisAddrs:           redisAddrs,
		redisMasterName:      redisMasterName,
		redisPassword:        redisPassword,
		oauthIssuerURL:       oauthIssuerURL,
		oauthJWKSURL:         oauthJWKSURL,
		allowedAudiences:     allowedAudiences,
		bindingAudienceID:    bindingAudienceID,
		issuerMetadataFile:   issuerMetadataFile,
		credentialIssuerURI:  credentialIssuerURI,
		encryptBindingID:     encryptBindingID,
		cNonceExpireSeconds:  cNonceExpireSeconds,
		logLevel:             logLevel,
	}, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().String(mongoDBURLFlagName, "", mongoDBURLFlagUsage)
	startCmd.Flags().String(mongoDBDatabaseFlagName, "", mongoDBDatabaseFlagUsage)
	startCmd.Flags().String(transactionStoreTypeFlagName, "", transactionStoreTypeFlagUsage)
	startCmd.Flags().String(redisURLFlagName, "", redisURLFlagUsage)
	startCmd.Flags().String(redisMasterNameFlagName, "", redisMasterNameFlagUsage)
	startCmd.Flags().String(redisPasswordFlagName, "", redisPasswordFlagUsage)
	startCmd.Flags().String(oauthIssuerURLFlagName, "", oauthIssuerURLFlagUsage)
	startCmd.Flags().String(oauthJWKSURLFlagName, "", oauthJWKSURLFlagUsage)
	startCmd.Flags().StringArray(allowedAudiencesFlagName, nil, allowedAudiencesFlagUsage)
	startCmd.Flags().String(bindingAudienceFlagName, "", bindingAudienceFlagUsage)
	startCmd.Flags().String(issuerMetadataFileFlagName, "", issuerMetadataFileFlagUsage)
	startCmd.Flags().String(credentialIssuerURIFlagName, "", credentialIssuerURIFlagUsage)
	startCmd.Flags().String(encryptBindingIDFlagName, "", encryptBindingIDFlagUsage)
	startCmd.Flags().String(cNonceExpireSecondsFlagName, "", cNonceExpireSecondsFlagUsage)
	startCmd.Flags().String(logLevelFlagName, "", logLevelFlagUsage)
}
