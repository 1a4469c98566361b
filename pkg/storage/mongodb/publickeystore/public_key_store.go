/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package publickeystore persists wallet key binding records in mongo.
package publickeystore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mosip/esignet-go/pkg/service/keybinding"
	"github.com/mosip/esignet-go/pkg/storage/mongodb"
)

const collectionName = "publickeyregistry"

type mongoDocument struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	IDHash          string     `bson:"idHash"`
	AuthFactor      string     `bson:"authFactor"`
	PSUToken        string     `bson:"psuToken"`
	PublicKey       string     `bson:"publicKey"`
	PublicKeyHash   string     `bson:"publicKeyHash"`
	Thumbprint      string     `bson:"thumbprint"`
	Certificate     string     `bson:"certificate"`
	WalletBindingID string     `bson:"walletBindingId"`
	CreatedAt       time.Time  `bson:"createdAt"`
	ExpiresAt       *time.Time `bson:"expireDTimes,omitempty"`
}

// Store is the mongo-backed public key registry.
type Store struct {
	mongoClient *mongodb.Client
}

// New creates the registry store and ensures its indexes.
func New(ctx context.Context, mongoClient *mongodb.Client) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
	}

	if err := s.migrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// migrate creates the uniqueness and lookup indexes. The publicKeyHash
// unique index is what turns concurrent inserts of the same key into the
// duplicate key error the service disambiguates on. (idHash, authFactor) is
// deliberately not unique: rotation keeps superseded rows.
func (s *Store) migrate(ctx context.Context) error {
	_, err := s.mongoClient.Database().Collection(collectionName).Indexes().
		CreateMany(ctx, []mongo.IndexModel{
			{
				Keys: map[string]interface{}{
					"publicKeyHash": -1,
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "psuToken", Value: 1},
					{Key: "authFactor", Value: 1},
					{Key: "createdAt", Value: -1},
				},
			},
			{
				Keys: bson.D{
					{Key: "idHash", Value: 1},
					{Key: "authFactor", Value: 1},
					{Key: "createdAt", Value: -1},
				},
			},
		})

	return err
}

func (s *Store) Insert(ctx context.Context, entry *keybinding.PublicKeyRegistry) error {
	collection := s.mongoClient.Database().Collection(collectionName)

	_, err := collection.InsertOne(ctx, toDocument(entry))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return keybinding.ErrDuplicateKey
		}

		return err
	}

	return nil
}

func (s *Store) FindByPublicKeyHash(ctx context.Context,
	publicKeyHash string) (*keybinding.PublicKeyRegistry, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	var doc mongoDocument

	err := collection.FindOne(ctx, bson.M{"publicKeyHash": publicKeyHash}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, keybinding.ErrDataNotFound
	}

	if err != nil {
		return nil, err
	}

	return fromDocument(&doc), nil
}

func (s *Store) FindLatestByPSUTokenAndAuthFactor(ctx context.Context,
	psuToken, authFactor string) (*keybinding.PublicKeyRegistry, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc mongoDocument

	err := collection.FindOne(ctx, bson.M{
		"psuToken":   psuToken,
		"authFactor": authFactor,
	}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, keybinding.ErrDataNotFound
	}

	if err != nil {
		return nil, err
	}

	return fromDocument(&doc), nil
}

// FindLiveByIDHashAndAuthFactors returns the newest unexpired entry per auth
// factor for the individual, newest first.
func (s *Store) FindLiveByIDHashAndAuthFactors(ctx context.Context, idHash string,
	authFactors []string, now time.Time) ([]*keybinding.PublicKeyRegistry, error) {
	collection := s.mongoClient.Database().Collection(collectionName)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{
		"idHash":     idHash,
		"authFactor": bson.M{"$in": authFactors},
		"$or": bson.A{
			bson.M{"expireDTimes": bson.M{"$exists": false}},
			bson.M{"expireDTimes": nil},
			bson.M{"expireDTimes": bson.M{"$gt": now}},
		},
	}, opts)
	if err != nil {
		return nil, err
	}

	defer cursor.Close(ctx) //nolint:errcheck

	seen := make(map[string]struct{})

	var entries []*keybinding.PublicKeyRegistry

	for cursor.Next(ctx) {
		var doc mongoDocument

		if err = cursor.Decode(&doc); err != nil {
			return nil, err
		}

		if _, ok := seen[doc.AuthFactor]; ok {
			continue
		}

		seen[doc.AuthFactor] = struct{}{}

		entries = append(entries, fromDocument(&doc))
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, keybinding.ErrDataNotFound
	}

	return entries, nil
}

func toDocument(entry *keybinding.PublicKeyRegistry) *mongoDocument {
	return &mongoDocument{
		IDHash:          entry.IDHash,
		AuthFactor:      entry.AuthFactor,
		PSUToken:        entry.PSUToken,
		PublicKey:       entry.PublicKey,
		PublicKeyHash:   entry.PublicKeyHash,
		Thumbprint:      entry.Thumbprint,
		Certificate:     entry.Certificate,
		WalletBindingID: entry.WalletBindingID,
		CreatedAt:       entry.CreatedAt,
		ExpiresAt:       entry.ExpiresAt,
	}
}

func fromDocument(doc *mongoDocument) *keybinding.PublicKeyRegistry {
	return &keybinding.PublicKeyRegistry{
		IDHash:          doc.IDHash,
		AuthFactor:      doc.AuthFactor,
		PSUToken:        doc.PSUToken,
		PublicKey:       doc.PublicKey,
		PublicKeyHash:   doc.PublicKeyHash,
		Thumbprint:      doc.Thumbprint,
		Certificate:     doc.Certificate,
		WalletBindingID: doc.WalletBindingID,
		CreatedAt:       doc.CreatedAt,
		ExpiresAt:       doc.ExpiresAt,
	}
}
