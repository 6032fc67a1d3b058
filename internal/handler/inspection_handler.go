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

type InspectionHandler struct {
	inspectionService service.InspectionService
}

func NewInspectionHandler(inspectionService service.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspectionService: inspectionService}
}

func (h *InspectionHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	inspections := router.Group("/inspections")
	inspections.Use(middleware.Authenticator())
	{
		inspections.GET("", authMW.RequireView(model.MenuInspectionPlanning), h.ListInspections)
		inspections.GET("/:id", authMW.RequireView(model.MenuInspectionPlanning), h.GetInspection)
		inspections.POST("", authMW.RequireMutate(model.MenuInspectionPlanning), h.CreateInspection)
		inspections.PUT("", authMW.RequireMutate(model.MenuInspectionPlanning), h.UpdateInspection)
		inspections.DELETE("", authMW.RequireMutate(model.MenuInspectionPlanning), h.DeleteInspection)
	}
}

// ListInspections handles GET /inspections with the uniform filter set
// @Summary      List inspection tasks
// @Tags         inspections
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Items per page"
// @Param        date_from   query     string  false  "Created on or after (YYYY-MM-DD)"
// @Param        date_to     query     string  false  "Created on or before (YYYY-MM-DD)"
// @Param        district    query     string  false  "District"
// @Param        officer_id  query     string  false  "Owning officer ID"
// @Param        keyword     query     string  false  "Keyword search"
// @Param        status      query     string  false  "Status"
// @Success      200  {object}  response.Response{data=pagination.Page}
// @Failure      400  {object}  response.Response
// @Router       /inspections [get]
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.inspectionService.List(c.Request.Context(), f, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(items, p, total)))
}

// GetInspection handles GET /inspections/:id
// @Summary      Get inspection task
// @Tags         inspections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Inspection ID"
// @Success      200  {object}  response.Response{data=model.InspectionTask}
// @Failure      404  {object}  response.Response
// @Router       /inspections/{id} [get]
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	inspection, err := h.inspectionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, inspection))
}

// CreateInspection handles POST /inspections
// @Summary      Create inspection task
// @Description  Plans a new inspection owned by the creating officer
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateInspectionRequest  true  "Create Inspection Payload"
// @Success      201      {object}  response.Response{data=model.InspectionTask}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /inspections [post]
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	inspection, err := h.inspectionService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, inspection))
}

// UpdateInspection handles PUT /inspections with the record id in the body
// @Summary      Update inspection task
// @Description  Only the owner or an elevated role may update
// @Tags         inspections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateInspectionRequest  true  "Update Inspection Payload"
// @Success      200      {object}  response.Response{data=model.InspectionTask}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /inspections [put]
func (h *InspectionHandler) UpdateInspection(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.UpdateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	inspection, err := h.inspectionService.Update(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, inspection))
}

// DeleteInspection handles DELETE /inspections?id=
// @Summary      Delete inspection task
// @Description  Rejected while field executions still reference the task
// @Tags         inspections
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Inspection ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /inspections [delete]
func (h *InspectionHandler) DeleteInspection(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.inspectionService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Inspection deleted successfully"))
}
