package utils

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 15 * 24 * time.Hour

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// PasswordCost is the bcrypt cost used for new hashes.
var PasswordCost = 14

// Claims are carried by both access and refresh tokens.
type Claims struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 tokens with one secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// GenerateJWT creates a short-lived access token bound to a session.
func (t *TokenIssuer) GenerateJWT(userID, userName, role, sessionID string) (string, time.Time, error) {
	return t.sign(Claims{UserID: userID, UserName: userName, Role: role, SessionID: sessionID, Type: TokenTypeAccess}, AccessTokenTTL)
}

// GenerateRefreshToken creates a long-lived token tied to a single session/device.
func (t *TokenIssuer) GenerateRefreshToken(userID, sessionID string) (string, time.Time, error) {
	return t.sign(Claims{UserID: userID, SessionID: sessionID, Type: TokenTypeRefresh}, RefreshTokenTTL)
}

func (t *TokenIssuer) sign(claims Claims, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(expires)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ValidateJWT parses a token and checks its signature, expiry and type.
func (t *TokenIssuer) ValidateJWT(tokenStr, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if tokenType != "" && claims.Type != tokenType {
		return nil, fmt.Errorf("expected %s token, got %q", tokenType, claims.Type)
	}
	return claims, nil
}

// BearerToken strips the "Bearer " prefix from an Authorization header.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// IsPasswordHash reports whether a stored password is a bcrypt hash.
func IsPasswordHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// ValidatePassword checks a login attempt. Cells written before hashing was
// introduced still hold plaintext and are compared in constant time.
func ValidatePassword(stored, plain string) bool {
	if stored == "" {
		return false
	}
	if IsPasswordHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}
