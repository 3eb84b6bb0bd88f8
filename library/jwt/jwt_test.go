package jwt

import (
	"strings"
	"testing"
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	return &JWT{
		userSecret:  []byte("user-secret"),
		adminSecret: []byte("admin-secret"),
	}
}

func TestInitialize(t *testing.T) {
	require.Error(t, Initialize(nil, []byte("x")))
	require.Error(t, Initialize([]byte("x"), nil))
	require.NoError(t, Initialize([]byte("u"), []byte("a")))
	require.NotNil(t, Instance)
}

func TestUserTokenRoundtrip(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.SignUserToken("653f1c6e8f0a1b2c3d4e5f60", "alice@example.com")
	require.NoError(t, err)

	uc, err := j.VerifyUserToken(token)
	require.NoError(t, err)
	require.Equal(t, "653f1c6e8f0a1b2c3d4e5f60", uc.Subject)
	require.Equal(t, "alice@example.com", uc.Email)
}

func TestAdminTokenRoundtrip(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.SignAdminToken()
	require.NoError(t, err)

	ac, err := j.VerifyAdminToken(token)
	require.NoError(t, err)
	require.True(t, ac.Admin)
}

// each context rejects the other's tokens even though both are HS256
func TestCrossContextRejection(t *testing.T) {
	j := newTestJWT(t)

	userToken, err := j.SignUserToken("id", "a@b.c")
	require.NoError(t, err)
	adminToken, err := j.SignAdminToken()
	require.NoError(t, err)

	_, err = j.VerifyAdminToken(userToken)
	require.Error(t, err)
	_, err = j.VerifyUserToken(adminToken)
	require.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.SignUserToken("id", "a@b.c")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = j.VerifyUserToken(tampered)
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	j := newTestJWT(t)

	past := gutils.Clock.GetUTCNow().Add(-time.Hour)
	uc := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   "id",
			IssuedAt:  jwtLib.NewNumericDate(past.Add(-UserTokenTTL)),
			ExpiresAt: jwtLib.NewNumericDate(past),
		},
		Email: "a@b.c",
	}
	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, uc).
		SignedString([]byte("user-secret"))
	require.NoError(t, err)

	_, err = j.VerifyUserToken(token)
	require.Error(t, err)
}

// a well-signed token without an expiry claim is refused
func TestTokenWithoutExpiryRejected(t *testing.T) {
	j := newTestJWT(t)

	uc := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{Subject: "id"},
		Email:            "a@b.c",
	}
	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, uc).
		SignedString([]byte("user-secret"))
	require.NoError(t, err)

	_, err = j.VerifyUserToken(token)
	require.Error(t, err)
}

func TestUserTokenWithoutSubjectRejected(t *testing.T) {
	j := newTestJWT(t)

	now := gutils.Clock.GetUTCNow()
	uc := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, uc).
		SignedString([]byte("user-secret"))
	require.NoError(t, err)

	_, err = j.VerifyUserToken(token)
	require.Error(t, err)
}
