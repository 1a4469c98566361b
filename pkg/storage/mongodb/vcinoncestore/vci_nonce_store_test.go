/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package vcinoncestore

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	dctest "github.com/ory/dockertest/v3"
	dc "github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mosip/esignet-go/pkg/service/vcissuance"
	"github.com/mosip/esignet-go/pkg/storage/mongodb"
)

const (
	mongoDBConnString  = "mongodb://localhost:27026"
	dockerMongoDBImage = "mongo"
	dockerMongoDBTag   = "4.0.0"

	defaultTTL = 40 * time.Second
)

func TestStore(t *testing.T) {
	pool, mongoDBResource := startMongoDBContainer(t)
	defer func() {
		require.NoError(t, pool.Purge(mongoDBResource), "failed to purge MongoDB resource")
	}()

	client, err := mongodb.New(mongoDBConnString, "testdb", mongodb.WithTimeout(time.Second*10))
	require.NoError(t, err)

	store, err := New(context.Background(), client)
	assert.NoError(t, err)
	assert.NotNil(t, store)

	t.Run("get missing key", func(t *testing.T) {
		tx, err := store.Get(context.Background(), uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("set once then get", func(t *testing.T) {
		key := uuid.NewString()
		tx := testTransaction()

		won, err := store.SetIfNotExist(context.Background(), key, tx, defaultTTL)
		require.NoError(t, err)
		assert.True(t, won)

		stored, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, tx.CNonce, stored.CNonce)
	})

	t.Run("second writer loses", func(t *testing.T) {
		key := uuid.NewString()

		won, err := store.SetIfNotExist(context.Background(), key, testTransaction(), defaultTTL)
		require.NoError(t, err)
		assert.True(t, won)

		won, err = store.SetIfNotExist(context.Background(), key, testTransaction(), defaultTTL)
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("get and delete is single use", func(t *testing.T) {
		key := uuid.NewString()
		tx := testTransaction()

		won, err := store.SetIfNotExist(context.Background(), key, tx, defaultTTL)
		require.NoError(t, err)
		assert.True(t, won)

		consumed, err := store.GetAndDelete(context.Background(), key)
		require.NoError(t, err)
		require.NotNil(t, consumed)
		assert.Equal(t, tx.CNonce, consumed.CNonce)

		again, err := store.GetAndDelete(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("expired document is treated as absent", func(t *testing.T) {
		key := uuid.NewString()

		won, err := store.SetIfNotExist(context.Background(), key, testTransaction(), -time.Second)
		require.NoError(t, err)
		assert.True(t, won)

		tx, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("writer replaces a lingering expired document", func(t *testing.T) {
		key := uuid.NewString()

		won, err := store.SetIfNotExist(context.Background(), key, testTransaction(), -time.Second)
		require.NoError(t, err)
		assert.True(t, won)

		// the ttl monitor has not swept the expired row yet
		fresh := testTransaction()

		won, err = store.SetIfNotExist(context.Background(), key, fresh, defaultTTL)
		require.NoError(t, err)
		assert.True(t, won)

		stored, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, fresh.CNonce, stored.CNonce)
	})
}

func testTransaction() *vcissuance.Transaction {
	return &vcissuance.Transaction{
		CNonce:          uuid.NewString(),
		CNonceIssuedAt:  time.Now().UTC(),
		CNonceExpiresIn: 40,
	}
}

func startMongoDBContainer(t *testing.T) (*dctest.Pool, *dctest.Resource) {
	t.Helper()

	pool, err := dctest.NewPool("")
	require.NoError(t, err)

	mongoDBResource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: dockerMongoDBImage,
		Tag:        dockerMongoDBTag,
		PortBindings: map[dc.Port][]dc.PortBinding{
			"27017/tcp": {{HostIP: "", HostPort: "27026"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, waitForMongoDBToBeUp())

	return pool, mongoDBResource
}

func waitForMongoDBToBeUp() error {
	return backoff.Retry(pingMongoDB, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 30))
}

func pingMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoDBConnString))
	if err != nil {
		return err
	}

	return mongoClient.Database("testdb").Client().Ping(ctx, nil)
}
