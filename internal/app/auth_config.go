package app

import (
	"strings"

	iauth "github.com/dealdock/dealdock/internal/auth"
)

// JWTServiceConfig converts the configured JWT settings into the auth package's config.
func (c AuthConfig) JWTServiceConfig() iauth.JWTConfig {
	return iauth.JWTConfig{
		Secret:     strings.TrimSpace(c.JWT.Secret),
		Issuer:     strings.TrimSpace(c.JWT.Issuer),
		SessionTTL: c.JWT.SessionTTL,
	}
}
