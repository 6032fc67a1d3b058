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

type FIRCaseHandler struct {
	caseService service.FIRCaseService
}

func NewFIRCaseHandler(caseService service.FIRCaseService) *FIRCaseHandler {
	return &FIRCaseHandler{caseService: caseService}
}

func (h *FIRCaseHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	cases := router.Group("/fir-cases")
	cases.Use(middleware.Authenticator())
	{
		cases.GET("", authMW.RequireView(model.MenuLegalModule), h.ListFIRCases)
		cases.GET("/:id", authMW.RequireView(model.MenuLegalModule), h.GetFIRCase)
		cases.POST("", authMW.RequireMutate(model.MenuLegalModule), h.CreateFIRCase)
		cases.PUT("", authMW.RequireMutate(model.MenuLegalModule), h.UpdateFIRCase)
		cases.DELETE("", authMW.RequireMutate(model.MenuLegalModule), h.DeleteFIRCase)
	}
}

// ListFIRCases handles GET /fir-cases
// @Summary      List FIR cases
// @Tags         fir-cases
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
// @Router       /fir-cases [get]
func (h *FIRCaseHandler) ListFIRCases(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.caseService.List(c.Request.Context(), f, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(items, p, total)))
}

// GetFIRCase handles GET /fir-cases/:id
// @Summary      Get FIR case
// @Tags         fir-cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "FIR Case ID"
// @Success      200  {object}  response.Response{data=model.FIRCase}
// @Failure      404  {object}  response.Response
// @Router       /fir-cases/{id} [get]
func (h *FIRCaseHandler) GetFIRCase(c *gin.Context) {
	firCase, err := h.caseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, firCase))
}

// CreateFIRCase handles POST /fir-cases
// @Summary      Create FIR case
// @Description  Files a legal case. Seizure and lab sample links are optional but must resolve when supplied.
// @Tags         fir-cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFIRCaseRequest  true  "Create FIR Case Payload"
// @Success      201      {object}  response.Response{data=model.FIRCase}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /fir-cases [post]
func (h *FIRCaseHandler) CreateFIRCase(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.CreateFIRCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	firCase, err := h.caseService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, firCase))
}

// UpdateFIRCase handles PUT /fir-cases with the id in the body
// @Summary      Update FIR case
// @Tags         fir-cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateFIRCaseRequest  true  "Update FIR Case Payload"
// @Success      200      {object}  response.Response{data=model.FIRCase}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /fir-cases [put]
func (h *FIRCaseHandler) UpdateFIRCase(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.UpdateFIRCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	firCase, err := h.caseService.Update(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, firCase))
}

// DeleteFIRCase handles DELETE /fir-cases?id=
// @Summary      Delete FIR case
// @Tags         fir-cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "FIR Case ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /fir-cases [delete]
func (h *FIRCaseHandler) DeleteFIRCase(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.caseService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "FIR case deleted successfully"))
}
