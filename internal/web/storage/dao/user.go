package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
	"github.com/Sooraj-Rao/storage-cdn-s3/library/log"
)

// passwordCost bcrypt cost factor for account passwords.
const passwordCost = 12

// HashPassword derive the stored hash from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}

	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// CreateUser insert a new user. A duplicate email surfaces as ErrConflict.
func (d *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if _, err := d.GetUsersCol().InsertOne(ctx, user); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrapf(model.ErrConflict, "user %q", user.Email)
		}

		return errors.Wrapf(err, "insert user %q", user.Email)
	}

	log.Logger.Info("insert new user", zap.String("email", user.Email))
	return nil
}

// GetUserByID load one user by id.
func (d *Storage) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(user); err != nil {
		if errors.Is(err, mongoLib.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "user %q", id.Hex())
		}

		return nil, errors.Wrapf(err, "find user %q", id.Hex())
	}

	return user, nil
}

// GetUserByEmail load one user by email.
func (d *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.M{"email": email}).
		Decode(user); err != nil {
		if errors.Is(err, mongoLib.ErrNoDocuments) {
			return nil, errors.Wrapf(model.ErrNotFound, "user %q", email)
		}

		return nil, errors.Wrapf(err, "find user %q", email)
	}

	return user, nil
}

// ValidateLogin validate user login
func (d *Storage) ValidateLogin(ctx context.Context, email, rawPassword string) (*model.User, error) {
	user, err := d.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errors.WithStack(model.ErrInvalidCredentials)
		}

		return nil, errors.WithStack(err)
	}

	if !VerifyPassword(rawPassword, user.PasswordHash) {
		return nil, errors.Wrapf(model.ErrInvalidCredentials, "verify password for %q", email)
	}

	return user, nil
}
