package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	access, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh("user-42")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	userID, err := issuer.VerifyAccess(access)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)

	userID, err = issuer.VerifyRefresh(refresh)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	first, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)
	second, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	refresh, err := issuer.IssueRefresh("user-42")
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(refresh)
	require.ErrorIs(t, err, ErrInvalid)

	access, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(access)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestExpiredToken(t *testing.T) {
	issuer := &Issuer{
		accessSecret:  []byte("access-secret"),
		refreshSecret: []byte("refresh-secret"),
		accessTTL:     -time.Minute,
		refreshTTL:    -time.Minute,
	}

	access, err := issuer.IssueAccess("user-42")
	require.NoError(t, err)
	_, err = issuer.VerifyAccess(access)
	require.ErrorIs(t, err, ErrExpired)

	refresh, err := issuer.IssueRefresh("user-42")
	require.NoError(t, err)
	_, err = issuer.VerifyRefresh(refresh)
	require.ErrorIs(t, err, ErrExpired)
}

func TestMalformedToken(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.VerifyAccess(tok)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestUnsignedTokenRejected(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	claims := jwt.MapClaims{"id": "user-42", "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(unsigned)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestMissingSubjectClaim(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(tok)
	require.ErrorIs(t, err, ErrInvalid)
}
