package middleware

import (
	"net/http"
	"os"
	"strings"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/service"
	"agriportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorContextKey = "actor"

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, path=/, domain="", secure, HttpOnly
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	if refreshToken != "" {
		// refresh_token: 7 days, path=/, domain="", secure, HttpOnly
		c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
	}
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractToken reads the access token from the cookie first, then falls
// back to the Authorization header.
func extractToken(c *gin.Context) (string, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// ActorFromClaims rebuilds the request identity from verified token claims
func ActorFromClaims(claims jwt.MapClaims) (auth.Actor, bool) {
	actor := auth.Actor{}

	if isSuper, _ := claims["is_super"].(bool); isSuper {
		actor.IsSuperUser = true
		actor.RoleName, _ = claims["role"].(string)
		return actor, true
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return auth.Actor{}, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return auth.Actor{}, false
	}

	roleIDRaw, ok := claims["role_id"].(string)
	if !ok {
		return auth.Actor{}, false
	}
	roleID, err := uuid.Parse(roleIDRaw)
	if err != nil {
		return auth.Actor{}, false
	}

	actor.UserID = userID
	actor.RoleID = roleID
	actor.RoleName, _ = claims["role"].(string)
	return actor, true
}

// Authenticator validates the JWT and stores the resolved auth.Actor in the
// gin context for downstream handlers.
func Authenticator() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		actor, ok := ActorFromClaims(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// GetActor retrieves the authenticated actor set by Authenticator
func GetActor(c *gin.Context) (auth.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := value.(auth.Actor)
	return actor, ok
}

// MustActor returns the actor or aborts with 401. Handlers behind
// Authenticator can rely on it.
func MustActor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
	}
	return actor, ok
}

// AuthMiddleware gates routes on the permission level a role holds for a
// menu. Resolution errors, including the unconfigured-role condition, are
// surfaced with their own status and message rather than a generic 403.
type AuthMiddleware struct {
	perms service.PermissionService
}

func NewAuthMiddleware(perms service.PermissionService) *AuthMiddleware {
	return &AuthMiddleware{perms: perms}
}

// RequireView admits levels F and R for the menu
func (m *AuthMiddleware) RequireView(menuID string) gin.HandlerFunc {
	return m.require(menuID, model.CanView)
}

// RequireMutate admits only level F for the menu
func (m *AuthMiddleware) RequireMutate(menuID string) gin.HandlerFunc {
	return m.require(menuID, model.CanMutate)
}

func (m *AuthMiddleware) require(menuID string, allowed func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := MustActor(c)
		if !ok {
			return
		}

		authType, err := m.perms.Resolve(c.Request.Context(), actor, menuID)
		if err != nil {
			env := response.FromError(err)
			c.AbortWithStatusJSON(env.StatusCode, env)
			return
		}

		if !allowed(authType) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions for '"+menuID+"'"))
			return
		}

		c.Next()
	}
}
