package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCredentialRepository implements CredentialRepository
type MongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new credential repository
func NewMongoCredentialRepository(db *mongo.Database) repository.CredentialRepository {
	collection := db.Collection("credentials")

	// Create unique index on email
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoCredentialRepository{
		collection: collection,
	}
}

// FindByEmail finds a credential by its normalised email
func (r *MongoCredentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var credential entity.Credential
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&credential)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	return &credential, nil
}

// Save creates or updates a credential keyed by email
func (r *MongoCredentialRepository) Save(ctx context.Context, credential *entity.Credential) error {
	credential.UpdatedAt = time.Now()

	// For new records
	if credential.ID == "" {
		credential.ID = primitive.NewObjectID().Hex()
		credential.CreatedAt = time.Now()
	}

	update := bson.M{
		"$set": bson.M{
			"email":        credential.Email,
			"passwordHash": credential.PasswordHash,
			"resetToken":   credential.ResetToken,
			"resetExpiry":  credential.ResetExpiry,
			"updatedAt":    credential.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       credential.ID,
			"createdAt": credential.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": credential.Email}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}
