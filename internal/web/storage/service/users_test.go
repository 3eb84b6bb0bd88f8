package service

import (
	"context"
	"testing"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/stretchr/testify/require"

	"github.com/Sooraj-Rao/storage-cdn-s3/internal/web/storage/model"
)

func TestUserRegisterRejections(t *testing.T) {
	ctx := context.Background()
	s := new(Type)

	_, err := s.UserRegister(ctx, "", "password1")
	require.True(t, model.IsValidation(err))

	_, err = s.UserRegister(ctx, "a@b.c", "")
	require.True(t, model.IsValidation(err))

	// below the minimum length
	_, err = s.UserRegister(ctx, "a@b.c", "12345")
	require.True(t, model.IsValidation(err))
}

func TestValidateAdminLogin(t *testing.T) {
	gconfig.Shared.Set("settings.admin.email", "admin@example.com")
	gconfig.Shared.Set("settings.admin.password", "hunter2hunter2")
	t.Cleanup(func() {
		gconfig.Shared.Set("settings.admin.email", "")
		gconfig.Shared.Set("settings.admin.password", "")
	})

	s := new(Type)
	require.NoError(t, s.ValidateAdminLogin("admin@example.com", "hunter2hunter2"))
	// email match is case-insensitive, password is not
	require.NoError(t, s.ValidateAdminLogin("Admin@Example.COM", "hunter2hunter2"))
	require.ErrorIs(t, s.ValidateAdminLogin("admin@example.com", "wrong"), model.ErrInvalidCredentials)
	require.ErrorIs(t, s.ValidateAdminLogin("other@example.com", "hunter2hunter2"), model.ErrInvalidCredentials)
}

// unset admin credentials must never authenticate anyone
func TestValidateAdminLoginUnconfigured(t *testing.T) {
	gconfig.Shared.Set("settings.admin.email", "")
	gconfig.Shared.Set("settings.admin.password", "")

	s := new(Type)
	require.ErrorIs(t, s.ValidateAdminLogin("", ""), model.ErrInvalidCredentials)
}
