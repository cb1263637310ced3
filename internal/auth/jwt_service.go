package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL applies when the configuration leaves the TTL unset.
const DefaultSessionTTL = 24 * time.Hour

// JWTConfig bundles everything a JWTService needs. Clock is optional and
// exists so tests can pin the notion of now.
type JWTConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
	Clock      func() time.Time
}

// Claims mirrors the OIDC profile claims the identity provider puts in a
// session token. The provider mints these; this server only validates them.
type Claims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"given_name,omitempty"`
	LastName  string `json:"family_name,omitempty"`
	AvatarURL string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the provider subject for the session.
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// JWTService validates provider-issued session tokens and can mint
// equivalent ones for tests and local development.
type JWTService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret must be provided")
	}

	svc := &JWTService{
		signingKey: []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		ttl:        cfg.SessionTTL,
		now:        cfg.Clock,
	}
	if svc.ttl <= 0 {
		svc.ttl = DefaultSessionTTL
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// SessionTokenInput carries the identity fields embedded in a minted token.
type SessionTokenInput struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
}

// GenerateSessionToken signs an HS256 token for the supplied identity.
func (s *JWTService) GenerateSessionToken(input SessionTokenInput) (string, error) {
	if input.UserID == "" {
		return "", errors.New("jwt: user id is required")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		AvatarURL: input.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   input.UserID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken checks the signature, validity window, issuer and
// subject of a session token and returns its claims.
func (s *JWTService) ValidateSessionToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("jwt: token string is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return nil, fmt.Errorf("jwt: parse token: %w", err)
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, errors.New("jwt: invalid issuer")
	}
	if claims.Subject == "" {
		return nil, errors.New("jwt: missing subject claim")
	}
	return claims, nil
}

func (s *JWTService) keyFunc(*jwt.Token) (interface{}, error) {
	return s.signingKey, nil
}
