package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/dao"
	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

const minPasswordLen = 6

// UserRegister create a new account and return it.
func (s *Type) UserRegister(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, model.NewValidationError("email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, model.NewValidationError("password must be at least 6 characters")
	}

	hash, err := dao.HashPassword(password)
	if err != nil {
		return nil, errors.Wrapf(err, "hash password for %q", email)
	}

	user := model.NewUser()
	user.Email = email
	user.PasswordHash = hash

	// the unique index on email rejects duplicates
	if err = s.dao.CreateUser(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// ValidateLogin validate user login
func (s *Type) ValidateLogin(ctx context.Context, email, password string) (*model.User, error) {
	return s.dao.ValidateLogin(ctx, strings.ToLower(strings.TrimSpace(email)), password)
}

// LoadUserByID load one user by id.
func (s *Type) LoadUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.dao.GetUserByID(ctx, id)
}

// Profile returns the user together with his files, newest upload first.
func (s *Type) Profile(ctx context.Context, userID primitive.ObjectID) (*model.User, []*model.FileRecord, error) {
	user, err := s.dao.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	files, err := s.dao.GetFilesByOwner(ctx, userID)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return user, files, nil
}

// ValidateAdminLogin check the supplied credentials against the configured
// admin account. Admins are configuration, not database records.
func (s *Type) ValidateAdminLogin(email, password string) error {
	wantEmail := gconfig.Shared.GetString("settings.admin.email")
	wantPwd := gconfig.Shared.GetString("settings.admin.password")
	if wantEmail == "" || wantPwd == "" {
		return errors.WithStack(model.ErrInvalidCredentials)
	}

	if !strings.EqualFold(strings.TrimSpace(email), wantEmail) || password != wantPwd {
		return errors.WithStack(model.ErrInvalidCredentials)
	}

	return nil
}
