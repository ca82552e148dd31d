package middleware

import (
	"strings"

	"autopro-rental/internal/config"
	"autopro-rental/internal/core/sessiongate"
	"autopro-rental/internal/pkg/jwt"
	"autopro-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenFromRequest extracts the access token from the cookie or the
// Authorization header. Cookie wins.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// gateState resolves the request's credential into a session-gate state
// without touching the database. The /auth/session endpoint is the place
// where stored sessions are checked; routes only need the signed claims.
func gateState(c *fiber.Ctx, cfg *config.Config) sessiongate.State {
	accessToken := TokenFromRequest(c)
	if accessToken == "" {
		return sessiongate.Anonymous()
	}

	claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
	if err != nil {
		return sessiongate.Anonymous()
	}

	return sessiongate.Authenticated(sessiongate.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  sessiongate.Role(claims.Role),
	})
}

// RequireRoles guards a route group. The gate decision maps onto HTTP:
// login required → 401, wrong role → 403. No roles means any authenticated
// user passes.
func RequireRoles(cfg *config.Config, roles ...sessiongate.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := gateState(c, cfg)

		switch sessiongate.Decide(state, roles...) {
		case sessiongate.DecisionLogin:
			return response.Unauthorized(c, "Authentication required")
		case sessiongate.DecisionUnauthorized:
			return response.Forbidden(c, "You don't have permission to access this resource")
		case sessiongate.DecisionWait:
			// Cannot happen with a fully resolved state
			return response.Unauthorized(c, "Authentication required")
		}

		c.Locals("userID", state.User.ID)
		c.Locals("email", state.User.Email)
		c.Locals("name", state.User.Name)
		c.Locals("role", string(state.User.Role))

		return c.Next()
	}
}

// AuthMiddleware requires any authenticated user
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return RequireRoles(cfg)
}

// AdminOnly allows only the admin role
func AdminOnly(cfg *config.Config) fiber.Handler {
	return RequireRoles(cfg, sessiongate.RoleAdmin)
}

// ManagerOrAdmin allows manager and admin roles
func ManagerOrAdmin(cfg *config.Config) fiber.Handler {
	return RequireRoles(cfg, sessiongate.RoleManager, sessiongate.RoleAdmin)
}

// OptionalAuth doesn't require auth but sets user info if a valid token is present
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := gateState(c, cfg)
		if state.Status == sessiongate.StatusAuthenticated {
			c.Locals("userID", state.User.ID)
			c.Locals("email", state.User.Email)
			c.Locals("name", state.User.Name)
			c.Locals("role", string(state.User.Role))
		}

		return c.Next()
	}
}
