package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")

	access, exp, err := issuer.GenerateJWT("ramesh", "Ramesh", "Admin", "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), exp, 5*time.Second)

	claims, err := issuer.ValidateJWT(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ramesh", claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)

	_, err = issuer.ValidateJWT(access, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestValidateJWTRejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("one").GenerateRefreshToken("ramesh", "sess-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two").ValidateJWT(token, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := issuer.GenerateJWT("ramesh", "Ramesh", "User", "s")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret").ValidateJWT(token, TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = 14 })

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(hash))
	assert.True(t, ValidatePassword(hash, "s3cret"))
	assert.False(t, ValidatePassword(hash, "wrong"))

	assert.True(t, ValidatePassword("plain", "plain"))
	assert.False(t, ValidatePassword("plain", "Plain"))
	assert.False(t, ValidatePassword("", ""))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc "))
	assert.Equal(t, "abc", BearerToken("abc"))
}

func TestNormaliseDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	cases := map[string]string{
		"2025-02-01T10:30":     "01/02/2025 10:30:00",
		"2025-02-01 10:30:05":  "01/02/2025 10:30:05",
		"2025-02-01T05:00:00Z": "01/02/2025 10:30:00",
		"01/02/2025 10:30:00":  "01/02/2025 10:30:00",
		"next tuesday":         "next tuesday",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormaliseDate(in, loc), in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	ts := time.Date(2025, 3, 9, 18, 45, 7, 0, time.UTC)
	assert.Equal(t, "10/03/2025 00:15:07", FormatTimestamp(ts, loc))
}

func TestSheetTimeoutsWidenRequestContexts(t *testing.T) {
	t.Cleanup(func() { SetSheetTimeouts(0, 0) })

	SetSheetTimeouts(60*time.Second, 2)
	assert.Equal(t, 180*time.Second, RequestTimeout())

	ctx, cancel := GetDefaultRequestContext(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(180*time.Second), deadline, 5*time.Second)

	uctx, ucancel := GetUploadContext(context.Background())
	defer ucancel()
	deadline, ok = uctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(UploadTimeout), deadline, 5*time.Second)

	SetSheetTimeouts(120*time.Second, 0)
	uctx2, ucancel2 := GetUploadContext(context.Background())
	defer ucancel2()
	deadline, _ = uctx2.Deadline()
	assert.WithinDuration(t, time.Now().Add(120*time.Second), deadline, 5*time.Second)
}

func TestSheetTimeoutsKeepDefaultsAsFloor(t *testing.T) {
	t.Cleanup(func() { SetSheetTimeouts(0, 0) })

	SetSheetTimeouts(5*time.Second, 1)
	assert.Equal(t, DefaultRequestTimeout, RequestTimeout())

	SetSheetTimeouts(0, 0)
	assert.Equal(t, DefaultRequestTimeout, RequestTimeout())
}
