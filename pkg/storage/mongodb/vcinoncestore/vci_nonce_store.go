/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package vcinoncestore persists credential issuance transactions in mongo,
// keyed by the access token hash.
package vcinoncestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mosip/esignet-go/pkg/service/vcissuance"
	"github.com/mosip/esignet-go/pkg/storage/mongodb"
)

const collectionName = "vcinoncestore"

type mongoDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Key      string             `bson:"key"`
	ExpireAt time.Time          `bson:"expireAt"`

	CNonce          string    `bson:"cNonce"`
	CNonceIssuedAt  time.Time `bson:"cNonceIssuedAt"`
	CNonceExpiresIn int       `bson:"cNonceExpiresIn"`
}

// Store stores issuance transactions in mongo.
type Store struct {
	mongoClient *mongodb.Client
}

// New creates the transaction store and ensures its indexes.
func New(ctx context.Context, mongoClient *mongodb.Client) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
	}

	if err := s.migrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.mongoClient.Database().Collection(collectionName).Indexes().
		CreateMany(ctx, []mongo.IndexModel{
			{
				Keys: map[string]interface{}{
					"key": -1,
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: map[string]interface{}{
					"expireAt": 1,
				},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		})

	return err
}

func (s *Store) Get(ctx context.Context, key string) (*vcissuance.Transaction, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	var doc mongoDocument

	err := collection.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	// The ttl monitor deletes lazily, expired documents can linger.
	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, nil
	}

	return fromDocument(&doc), nil
}

// SetIfNotExist relies on the unique key index. Exactly one concurrent
// writer wins, the rest observe a duplicate key error. An expired document
// still holding the index before the ttl monitor sweeps does not count as
// existing: the writer takes its place.
func (s *Store) SetIfNotExist(ctx context.Context, key string, tx *vcissuance.Transaction,
	ttl time.Duration) (bool, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	now := time.Now().UTC()

	doc := &mongoDocument{
		Key:             key,
		ExpireAt:        now.Add(ttl),
		CNonce:          tx.CNonce,
		CNonceIssuedAt:  tx.CNonceIssuedAt,
		CNonceExpiresIn: tx.CNonceExpiresIn,
	}

	_, err := collection.InsertOne(ctx, doc)
	if err == nil {
		return true, nil
	}

	if !mongo.IsDuplicateKeyError(err) {
		return false, err
	}

	result, err := collection.ReplaceOne(ctx,
		bson.M{"key": key, "expireAt": bson.M{"$lte": now}}, doc)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

func (s *Store) GetAndDelete(ctx context.Context, key string) (*vcissuance.Transaction, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	var doc mongoDocument

	err := collection.FindOneAndDelete(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, nil
	}

	return fromDocument(&doc), nil
}

func fromDocument(doc *mongoDocument) *vcissuance.Transaction {
	return &vcissuance.Transaction{
		CNonce:          doc.CNonce,
		CNonceIssuedAt:  doc.CNonceIssuedAt,
		CNonceExpiresIn: doc.CNonceExpiresIn,
	}
}
