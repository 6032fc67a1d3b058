package handler

import (
	"net/http"

	"agriportal/internal/middleware"
	"agriportal/internal/model"
	"agriportal/internal/service"
	"agriportal/pkg/pagination"
	"agriportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type FieldExecutionHandler struct {
	fieldService service.FieldExecutionService
}

func NewFieldExecutionHandler(fieldService service.FieldExecutionService) *FieldExecutionHandler {
	return &FieldExecutionHandler{fieldService: fieldService}
}

func (h *FieldExecutionHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	executions := router.Group("/field-executions")
	executions.Use(middleware.Authenticator())
	{
		executions.GET("", authMW.RequireView(model.MenuFieldExecution), h.ListFieldExecutions)
		executions.GET("/:id", authMW.RequireView(model.MenuFieldExecution), h.GetFieldExecution)
		executions.POST("", authMW.RequireMutate(model.MenuFieldExecution), h.CreateFieldExecution)
		executions.PUT("", authMW.RequireMutate(model.MenuFieldExecution), h.UpdateFieldExecution)
		executions.DELETE("", authMW.RequireMutate(model.MenuFieldExecution), h.DeleteFieldExecution)
	}
}

// ListFieldExecutions handles GET /field-executions
// @Summary      List field executions
// @Tags         field-executions
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Items per page"
// @Param        date_from   query     string  false  "Created on or after (YYYY-MM-DD)"
// @Param        date_to     query     string  false  "Created on or before (YYYY-MM-DD)"
// @Param        district    query     string  false  "District"
// @Param        officer_id  query     string  false  "Owning officer ID"
// @Param        keyword     query     string  false  "Keyword search"
// @Success      200  {object}  response.Response{data=pagination.Page}
// @Failure      400  {object}  response.Response
// @Router       /field-executions [get]
func (h *FieldExecutionHandler) ListFieldExecutions(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.fieldService.List(c.Request.Context(), f, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(items, p, total)))
}

// GetFieldExecution handles GET /field-executions/:id
// @Summary      Get field execution
// @Tags         field-executions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Field Execution ID"
// @Success      200  {object}  response.Response{data=model.FieldExecution}
// @Failure      404  {object}  response.Response
// @Router       /field-executions/{id} [get]
func (h *FieldExecutionHandler) GetFieldExecution(c *gin.Context) {
	execution, err := h.fieldService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, execution))
}

// CreateFieldExecution handles POST /field-executions
// @Summary      Create field execution
// @Description  Records an on-site visit against an existing inspection task
// @Tags         field-executions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFieldExecutionRequest  true  "Create Field Execution Payload"
// @Success      201      {object}  response.Response{data=model.FieldExecution}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /field-executions [post]
func (h *FieldExecutionHandler) CreateFieldExecution(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.CreateFieldExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	execution, err := h.fieldService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, execution))
}

// UpdateFieldExecution handles PUT /field-executions with the id in the body
// @Summary      Update field execution
// @Tags         field-executions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateFieldExecutionRequest  true  "Update Field Execution Payload"
// @Success      200      {object}  response.Response{data=model.FieldExecution}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /field-executions [put]
func (h *FieldExecutionHandler) UpdateFieldExecution(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.UpdateFieldExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	execution, err := h.fieldService.Update(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, execution))
}

// DeleteFieldExecution handles DELETE /field-executions?id=
// @Summary      Delete field execution
// @Description  Rejected while seizures still reference the execution
// @Tags         field-executions
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Field Execution ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /field-executions [delete]
func (h *FieldExecutionHandler) DeleteFieldExecution(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.fieldService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Field execution deleted successfully"))
}
