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

type SeizureHandler struct {
	seizureService service.SeizureService
}

func NewSeizureHandler(seizureService service.SeizureService) *SeizureHandler {
	return &SeizureHandler{seizureService: seizureService}
}

func (h *SeizureHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	seizures := router.Group("/seizures")
	seizures.Use(middleware.Authenticator())
	{
		seizures.GET("", authMW.RequireView(model.MenuSeizureManagement), h.ListSeizures)
		seizures.GET("/:id", authMW.RequireView(model.MenuSeizureManagement), h.GetSeizure)
		seizures.POST("", authMW.RequireMutate(model.MenuSeizureManagement), h.CreateSeizure)
		seizures.PUT("", authMW.RequireMutate(model.MenuSeizureManagement), h.UpdateSeizure)
		seizures.DELETE("", authMW.RequireMutate(model.MenuSeizureManagement), h.DeleteSeizure)
	}
}

// ListSeizures handles GET /seizures
// @Summary      List seizures
// @Tags         seizures
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
// @Router       /seizures [get]
func (h *SeizureHandler) ListSeizures(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.seizureService.List(c.Request.Context(), f, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(items, p, total)))
}

// GetSeizure handles GET /seizures/:id
// @Summary      Get seizure
// @Tags         seizures
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Seizure ID"
// @Success      200  {object}  response.Response{data=model.Seizure}
// @Failure      404  {object}  response.Response
// @Router       /seizures/{id} [get]
func (h *SeizureHandler) GetSeizure(c *gin.Context) {
	seizure, err := h.seizureService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, seizure))
}

// CreateSeizure handles POST /seizures
// @Summary      Create seizure
// @Description  Records confiscated material against an existing field execution
// @Tags         seizures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSeizureRequest  true  "Create Seizure Payload"
// @Success      201      {object}  response.Response{data=model.Seizure}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /seizures [post]
func (h *SeizureHandler) CreateSeizure(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.CreateSeizureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	seizure, err := h.seizureService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, seizure))
}

// UpdateSeizure handles PUT /seizures with the id in the body
// @Summary      Update seizure
// @Tags         seizures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateSeizureRequest  true  "Update Seizure Payload"
// @Success      200      {object}  response.Response{data=model.Seizure}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /seizures [put]
func (h *SeizureHandler) UpdateSeizure(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.UpdateSeizureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	seizure, err := h.seizureService.Update(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, seizure))
}

// DeleteSeizure handles DELETE /seizures?id=
// @Summary      Delete seizure
// @Description  Rejected while lab samples or FIR cases still reference the seizure
// @Tags         seizures
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Seizure ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /seizures [delete]
func (h *SeizureHandler) DeleteSeizure(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.seizureService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Seizure deleted successfully"))
}
