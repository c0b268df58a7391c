package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Access and refresh lifetimes are a fixed part of the token contract,
// not tunable per deployment.
const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	// ErrExpired marks a well-formed token past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers everything else: bad signature, wrong algorithm,
	// malformed token, missing subject claim.
	ErrInvalid = errors.New("invalid token")
)

// Issuer mints and verifies the two token kinds. Access tokens are signed
// with the access secret, refresh tokens with a distinct refresh secret,
// so neither can stand in for the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTTL,
		refreshTTL:    RefreshTTL,
	}
}

func (i *Issuer) IssueAccess(userID string) (string, error) {
	return sign(userID, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(userID string) (string, error) {
	return sign(userID, i.refreshSecret, i.refreshTTL)
}

// VerifyAccess returns the subject user id of a valid access token.
func (i *Issuer) VerifyAccess(tokenStr string) (string, error) {
	return verify(tokenStr, i.accessSecret)
}

// VerifyRefresh returns the subject user id of a valid refresh token.
func (i *Issuer) VerifyRefresh(tokenStr string) (string, error) {
	return verify(tokenStr, i.refreshSecret)
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	// jti makes every issued token unique even when two are minted for
	// the same user within the same second.
	claims := jwt.MapClaims{
		"id":  userID,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenStr string, secret []byte) (string, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalid
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalid
	}
	return userID, nil
}
