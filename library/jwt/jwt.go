// Package jwt issues and verifies the session tokens for the two
// cookie-based principals. User and admin tokens are signed with
// distinct secrets, so one can never be accepted in the other context.
package jwt

import (
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

const (
	// UserTokenTTL lifetime of an end-user session
	UserTokenTTL = 7 * 24 * time.Hour
	// AdminTokenTTL lifetime of an admin session
	AdminTokenTTL = 24 * time.Hour
)

// JWT signs and verifies session tokens.
type JWT struct {
	userSecret  []byte
	adminSecret []byte
}

var Instance *JWT

// Initialize setup the process-wide signer.
func Initialize(userSecret, adminSecret []byte) error {
	if len(userSecret) == 0 || len(adminSecret) == 0 {
		return errors.New("empty jwt secret")
	}

	Instance = &JWT{
		userSecret:  userSecret,
		adminSecret: adminSecret,
	}
	return nil
}

// SignUserToken issue a token for the given user id.
func (j *JWT) SignUserToken(userID, email string) (string, error) {
	now := gutils.Clock.GetUTCNow()
	uc := &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(UserTokenTTL)),
		},
		Email: email,
	}

	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, uc).
		SignedString(j.userSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign user token")
	}

	return token, nil
}

// VerifyUserToken verify signature and expiry, returns the claims.
// Any tampering, expiry or admin-context token yields an error, never a panic.
func (j *JWT) VerifyUserToken(token string) (*UserClaims, error) {
	uc := new(UserClaims)
	if _, err := jwtLib.ParseWithClaims(token, uc,
		func(t *jwtLib.Token) (any, error) {
			if _, ok := t.Method.(*jwtLib.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return j.userSecret, nil
		},
		jwtLib.WithExpirationRequired(),
	); err != nil {
		return nil, errors.Wrap(err, "parse user token")
	}

	if uc.Subject == "" {
		return nil, errors.New("user token without subject")
	}

	return uc, nil
}

// SignAdminToken issue an admin session token.
func (j *JWT) SignAdminToken() (string, error) {
	now := gutils.Clock.GetUTCNow()
	ac := &AdminClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(AdminTokenTTL)),
		},
		Admin: true,
	}

	token, err := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, ac).
		SignedString(j.adminSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign admin token")
	}

	return token, nil
}

// VerifyAdminToken verify an admin session token.
func (j *JWT) VerifyAdminToken(token string) (*AdminClaims, error) {
	ac := new(AdminClaims)
	if _, err := jwtLib.ParseWithClaims(token, ac,
		func(t *jwtLib.Token) (any, error) {
			if _, ok := t.Method.(*jwtLib.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return j.adminSecret, nil
		},
		jwtLib.WithExpirationRequired(),
	); err != nil {
		return nil, errors.Wrap(err, "parse admin token")
	}

	if !ac.Admin {
		return nil, errors.New("token without admin claim")
	}

	return ac, nil
}
