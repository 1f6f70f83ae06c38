package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	TokenVersion int64              `bson:"token_version"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// toDomain converts the stored document. A role string that does not parse
// marks a corrupt record and is rejected, never coerced to a valid role.
func (mu mongoUser) toDomain() (*domain.User, error) {
	role, ok := domain.ParseRole(mu.Role)
	if !ok {
		return nil, fmt.Errorf("user %s: role %q: %w", mu.ID.Hex(), mu.Role, domain.ErrInvalidRole)
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Role:         role,
		TokenVersion: mu.TokenVersion,
		CreatedAt:    mu.CreatedAt,
	}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		TokenVersion: user.TokenVersion,
		CreatedAt:    user.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain()
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

func (r *UserRepository) TokenVersion(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id, domain.ErrUserNotFound)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	opts := options.FindOne().SetProjection(bson.M{"token_version": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("token version: %w", err)
	}
	return mu.TokenVersion, nil
}

// BumpTokenVersion increments atomically and returns the post-increment
// value, so a token issued with the result is valid immediately.
func (r *UserRepository) BumpTokenVersion(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id, domain.ErrUserNotFound)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"token_version": 1}},
		opts,
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("bump token version: %w", err)
	}
	return mu.TokenVersion, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	oid, err := parseID(id, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": string(role)}},
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index backing ErrUserExists.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
