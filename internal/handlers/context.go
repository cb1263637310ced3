package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	iauth "github.com/dealdock/dealdock/internal/auth"
	"github.com/dealdock/dealdock/internal/middleware"
	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
)

// resolveOrg returns the authenticated identity and the organization id that
// scopes every operation of this request, provisioning the organization on
// first contact.
func resolveOrg(c *gin.Context, orgs *services.OrganizationService) (services.Identity, string, error) {
	identity, ok := currentIdentity(c)
	if !ok {
		return services.Identity{}, "", apperrors.ErrUnauthorized
	}

	orgID, err := orgs.EnsureMembership(requestContext(c), identity)
	if err != nil {
		return services.Identity{}, "", err
	}
	return identity, orgID, nil
}

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentIdentity extracts the authenticated identity placed by the auth middleware.
func currentIdentity(c *gin.Context) (services.Identity, bool) {
	raw, ok := c.Get(middleware.CtxClaimsKey)
	if !ok {
		return services.Identity{}, false
	}

	claims, ok := raw.(*iauth.Claims)
	if !ok || claims == nil || claims.UserID() == "" {
		return services.Identity{}, false
	}

	return services.Identity{
		UserID:    claims.UserID(),
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		AvatarURL: claims.AvatarURL,
	}, true
}
