/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package vcinoncestore persists credential issuance transactions in redis,
// keyed by the access token hash. Expiry is delegated to redis key ttl.
package vcinoncestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mosip/esignet-go/pkg/service/vcissuance"
	redisclient "github.com/mosip/esignet-go/pkg/storage/redis"
)

const keyPrefix = "vci_nonce_tx"

// Store stores issuance transactions in redis.
type Store struct {
	redisClient *redisclient.Client
}

// New creates the transaction store.
func New(redisClient *redisclient.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func (s *Store) Get(ctx context.Context, key string) (*vcissuance.Transaction, error) {
	b, err := s.redisClient.API().Get(ctx, resolveRedisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("redis get: %w", err)
	}

	return decode(b)
}

// SetIfNotExist is a single SETNX with ttl, exactly one concurrent writer
// wins.
func (s *Store) SetIfNotExist(ctx context.Context, key string, tx *vcissuance.Transaction,
	ttl time.Duration) (bool, error) {
	b, err := json.Marshal(tx)
	if err != nil {
		return false, fmt.Errorf("marshal transaction: %w", err)
	}

	won, err := s.redisClient.API().SetNX(ctx, resolveRedisKey(key), b, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}

	return won, nil
}

// GetAndDelete is a single GETDEL, at most one concurrent caller observes
// the stored value.
func (s *Store) GetAndDelete(ctx context.Context, key string) (*vcissuance.Transaction, error) {
	b, err := s.redisClient.API().GetDel(ctx, resolveRedisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("redis getdel: %w", err)
	}

	return decode(b)
}

func decode(b []byte) (*vcissuance.Transaction, error) {
	var tx vcissuance.Transaction

	if err := json.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("unmarshal transaction: %w", err)
	}

	return &tx, nil
}

func resolveRedisKey(key string) string {
	return fmt.Sprintf("%s-%s", keyPrefix, key)
}
