package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dkarpov/taskman-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// userDocument is the persisted shape of a user.
type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		collection: db.Database().Collection("users"),
	}
}

// EnsureIndexes creates the unique email index. The index enforces email
// uniqueness at write time, closing the check-then-insert race in the service.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return userFromDocument(doc)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return userFromDocument(doc)
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	_, err := r.collection.InsertOne(ctx, userToDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func userToDocument(user model.User) userDocument {
	return userDocument{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userFromDocument(doc userDocument) (model.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse user id %q: %w", doc.ID, err)
	}

	return model.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
