package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewSignerHS256_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256([]byte("too-short"))
	require.Error(t, err)

	_, err = NewSignerHS256(nil)
	require.Error(t, err)
}

func TestHS256_SignAndVerify(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier := NewVerifierHS256(testSecret, "filedrop")

	claims := NewAccessClaims("john_doe", "filedrop", 30*time.Minute, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "john_doe", got.Subject)
	require.Equal(t, "filedrop", got.Issuer)
}

func TestHS256_VerifyFailures(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier := NewVerifierHS256(testSecret, "filedrop")

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSignerHS256([]byte("ffffffffffffffffffffffffffffffff"))
		require.NoError(t, err)

		token, err := other.Sign(NewAccessClaims("john_doe", "filedrop", time.Minute, time.Now()))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		token, err := signer.Sign(NewAccessClaims("john_doe", "filedrop", time.Minute, past))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		token, err := signer.Sign(NewAccessClaims("john_doe", "someone-else", time.Minute, time.Now()))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, NewAccessClaims("john_doe", "filedrop", time.Minute, time.Now()))
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.Error(t, err)
	})
}

func TestClaims_ValidateExpiry(t *testing.T) {
	t.Parallel()

	t.Run("valid before expiry", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Hour, time.Now())
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("rejected after expiry", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Minute, time.Now().Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("rejected before nbf", func(t *testing.T) {
		c := NewAccessClaims("u", "iss", time.Hour, time.Now().Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})
}

func TestNewJTI_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for range 64 {
		jti := NewJTI()
		require.NotEmpty(t, jti)
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}
