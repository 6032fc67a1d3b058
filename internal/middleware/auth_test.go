package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPermissions returns a fixed auth type, or a fixed error
type stubPermissions struct {
	authType string
	err      error
}

func (s stubPermissions) Resolve(context.Context, auth.Actor, string) (string, error) {
	return s.authType, s.err
}

func (s stubPermissions) EffectiveMap(context.Context, auth.Actor) (map[string]string, error) {
	return nil, s.err
}

func (s stubPermissions) IsElevated(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (s stubPermissions) ListRows(context.Context, *uuid.UUID) ([]model.RolePermission, error) {
	return nil, nil
}

func (s stubPermissions) ReplaceAll(context.Context, auth.Actor, uuid.UUID, map[string]string) (map[string]string, error) {
	return nil, nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetJWTSecret())
	require.NoError(t, err)
	return token
}

func newRouter(perms stubPermissions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMW := NewAuthMiddleware(perms)

	group := router.Group("/api")
	group.Use(Authenticator())
	group.GET("/view", authMW.RequireView(model.MenuReports), func(c *gin.Context) {
		actor, _ := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"role": actor.RoleName, "is_super": actor.IsSuperUser})
	})
	group.POST("/mutate", authMW.RequireMutate(model.MenuReports), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticatorRejectsMissingAndInvalidTokens(t *testing.T) {
	router := newRouter(stubPermissions{authType: model.AuthFull})

	rec := doRequest(router, http.MethodGet, "/api/view", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/view", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := signToken(t, jwt.MapClaims{
		"sub":     uuid.New().String(),
		"role_id": uuid.New().String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	rec = doRequest(router, http.MethodGet, "/api/view", expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadGrantAllowsViewButNotMutate(t *testing.T) {
	router := newRouter(stubPermissions{authType: model.AuthRead})
	token := signToken(t, jwt.MapClaims{
		"sub":     uuid.New().String(),
		"role_id": uuid.New().String(),
		"role":    "inspector",
	})

	rec := doRequest(router, http.MethodGet, "/api/view", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/mutate", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNoneGrantDeniesView(t *testing.T) {
	router := newRouter(stubPermissions{authType: model.AuthNone})
	token := signToken(t, jwt.MapClaims{
		"sub":     uuid.New().String(),
		"role_id": uuid.New().String(),
	})

	rec := doRequest(router, http.MethodGet, "/api/view", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnconfiguredRoleSurfacesDistinctly(t *testing.T) {
	router := newRouter(stubPermissions{err: apperror.PermissionsNotConfigured("new-role")})
	token := signToken(t, jwt.MapClaims{
		"sub":     uuid.New().String(),
		"role_id": uuid.New().String(),
	})

	rec := doRequest(router, http.MethodGet, "/api/view", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		ErrorCode string `json:"error_code"`
		Error     string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PERMISSIONS_NOT_CONFIGURED", body.ErrorCode)
	assert.Contains(t, body.Error, "contact an administrator")
}

func TestSuperUserClaimBuildsSuperActor(t *testing.T) {
	router := newRouter(stubPermissions{authType: model.AuthFull})
	token := signToken(t, jwt.MapClaims{
		"is_super": true,
		"role":     "super",
	})

	rec := doRequest(router, http.MethodGet, "/api/view", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Role    string `json:"role"`
		IsSuper bool   `json:"is_super"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsSuper)
	assert.Equal(t, "super", body.Role)
}

func TestActorFromClaimsRejectsMalformedIdentity(t *testing.T) {
	_, ok := ActorFromClaims(jwt.MapClaims{"sub": "not-a-uuid", "role_id": uuid.New().String()})
	assert.False(t, ok)

	_, ok = ActorFromClaims(jwt.MapClaims{"sub": uuid.New().String()})
	assert.False(t, ok)

	actor, ok := ActorFromClaims(jwt.MapClaims{
		"sub":     uuid.New().String(),
		"role_id": uuid.New().String(),
		"role":    "inspector",
	})
	assert.True(t, ok)
	assert.Equal(t, "inspector", actor.RoleName)
	assert.False(t, actor.IsSuperUser)
}
