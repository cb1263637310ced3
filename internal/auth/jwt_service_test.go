package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTServiceGenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "dealdock"})
	require.NoError(t, err)

	token, err := svc.GenerateSessionToken(SessionTokenInput{
		UserID:    "auth0|abc123",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Adams",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "auth0|abc123", claims.UserID())
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "Alice", claims.FirstName)
	require.Equal(t, "dealdock", claims.Issuer)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	issuer, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		SessionTTL: time.Hour,
		Clock:      func() time.Time { return issuedAt },
	})
	require.NoError(t, err)

	token, err := issuer.GenerateSessionToken(SessionTokenInput{UserID: "user-1"})
	require.NoError(t, err)

	validator, err := NewJWTService(JWTConfig{
		Secret: "test-secret",
		Clock:  func() time.Time { return issuedAt.Add(2 * time.Hour) },
	})
	require.NoError(t, err)

	_, err = validator.ValidateSessionToken(token)
	require.Error(t, err)
}

func TestJWTServiceRejectsWrongSecretAndIssuer(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "right-secret", Issuer: "dealdock"})
	require.NoError(t, err)

	token, err := svc.GenerateSessionToken(SessionTokenInput{UserID: "user-1"})
	require.NoError(t, err)

	wrongSecret, err := NewJWTService(JWTConfig{Secret: "wrong-secret", Issuer: "dealdock"})
	require.NoError(t, err)
	_, err = wrongSecret.ValidateSessionToken(token)
	require.Error(t, err)

	wrongIssuer, err := NewJWTService(JWTConfig{Secret: "right-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	_, err = wrongIssuer.ValidateSessionToken(token)
	require.Error(t, err)
}

func TestJWTServiceRequiresSubject(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = svc.GenerateSessionToken(SessionTokenInput{})
	require.Error(t, err)
}
