package handler

import (
	"net/http"

	"agriportal/internal/middleware"
	"agriportal/internal/model"
	"agriportal/internal/service"
	"agriportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoleHandler struct {
	roleService service.RoleService
	permService service.PermissionService
}

func NewRoleHandler(roleService service.RoleService, permService service.PermissionService) *RoleHandler {
	return &RoleHandler{roleService: roleService, permService: permService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	roles := router.Group("/roles")
	roles.Use(middleware.Authenticator())
	{
		roles.GET("", authMW.RequireView(model.MenuRoleManagement), h.ListRoles)
		roles.GET("/:id", authMW.RequireView(model.MenuRoleManagement), h.GetRole)
		roles.POST("", authMW.RequireMutate(model.MenuRoleManagement), h.SaveRole)
		roles.DELETE("", authMW.RequireMutate(model.MenuRoleManagement), h.DeleteRole)
	}

	perms := router.Group("/role-permissions")
	perms.Use(middleware.Authenticator())
	{
		perms.GET("", authMW.RequireView(model.MenuRoleManagement), h.ListRolePermissions)
		perms.POST("", authMW.RequireMutate(model.MenuRoleManagement), h.SaveRolePermissions)
	}

	menus := router.Group("/menus")
	menus.Use(middleware.Authenticator())
	{
		menus.GET("", h.ListMenus)
	}
}

// SaveRolePermissionsRequest carries the replace-all payload. The map form
// is canonical; the parallel-array form is kept for older clients and
// folded into a map before the save.
type SaveRolePermissionsRequest struct {
	RoleID      string            `json:"role_id" binding:"required"`
	Permissions map[string]string `json:"permissions"`
	MenuIDs     []string          `json:"menuids"`
	AuthTypes   []string          `json:"authtypes"`
}

// ListRoles returns all roles
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Failure      500  {object}  response.Response
// @Router       /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRole returns a single role by ID
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response{data=service.RoleResponse}
// @Failure      404  {object}  response.Response
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// SaveRole creates a role when no id is supplied, updates it otherwise
// @Summary      Save role
// @Description  Creates or updates a role. A duplicate name is rejected either way.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SaveRoleRequest  true  "Save Role Payload"
// @Success      200      {object}  response.Response{data=service.RoleResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /roles [post]
func (h *RoleHandler) SaveRole(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.SaveRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.SaveRole(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, response.Success(status, role))
}

// DeleteRole deletes a non-system role by its id query parameter
// @Summary      Delete role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /roles [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Role deleted successfully"))
}

// ListRolePermissions returns stored permission rows, filtered by roleid
// when supplied
// @Summary      List role permissions
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        roleid  query     string  false  "Role ID"
// @Success      200     {object}  response.Response{data=[]model.RolePermission}
// @Failure      404     {object}  response.Response
// @Router       /role-permissions [get]
func (h *RoleHandler) ListRolePermissions(c *gin.Context) {
	var roleID *uuid.UUID
	if raw := c.Query("roleid"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid roleid"))
			return
		}
		roleID = &id
	}

	rows, err := h.permService.ListRows(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// SaveRolePermissions atomically replaces every permission row of a role
// @Summary      Save role permissions
// @Description  Replaces the role's whole permission set. An empty set is a legal save meaning no access to anything.
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      SaveRolePermissionsRequest  true  "Save Permissions Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /role-permissions [post]
func (h *RoleHandler) SaveRolePermissions(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req SaveRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid role_id"))
		return
	}

	perms := req.Permissions
	if perms == nil {
		perms, err = service.BuildMap(req.MenuIDs, req.AuthTypes)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	effective, err := h.permService.ReplaceAll(c.Request.Context(), actor, roleID, perms)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, effective))
}

// ListMenus returns the menu registry every permission grant refers to
// @Summary      List menus
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /menus [get]
func (h *RoleHandler) ListMenus(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, model.KnownMenus()))
}
