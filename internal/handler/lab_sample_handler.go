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

type LabSampleHandler struct {
	sampleService service.LabSampleService
}

func NewLabSampleHandler(sampleService service.LabSampleService) *LabSampleHandler {
	return &LabSampleHandler{sampleService: sampleService}
}

func (h *LabSampleHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	samples := router.Group("/lab-samples")
	samples.Use(middleware.Authenticator())
	{
		samples.GET("", authMW.RequireView(model.MenuLabSamples), h.ListLabSamples)
		samples.GET("/:id", authMW.RequireView(model.MenuLabSamples), h.GetLabSample)
		samples.POST("", authMW.RequireMutate(model.MenuLabSamples), h.CreateLabSample)
		samples.PUT("", authMW.RequireMutate(model.MenuLabSamples), h.UpdateLabSample)
		samples.DELETE("", authMW.RequireMutate(model.MenuLabSamples), h.DeleteLabSample)
	}
}

// ListLabSamples handles GET /lab-samples
// @Summary      List lab samples
// @Tags         lab-samples
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
// @Router       /lab-samples [get]
func (h *LabSampleHandler) ListLabSamples(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	p := pagination.Parse(c)

	items, total, err := h.sampleService.List(c.Request.Context(), f, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(items, p, total)))
}

// GetLabSample handles GET /lab-samples/:id
// @Summary      Get lab sample
// @Tags         lab-samples
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lab Sample ID"
// @Success      200  {object}  response.Response{data=model.LabSample}
// @Failure      404  {object}  response.Response
// @Router       /lab-samples/{id} [get]
func (h *LabSampleHandler) GetLabSample(c *gin.Context) {
	sample, err := h.sampleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, sample))
}

// CreateLabSample handles POST /lab-samples
// @Summary      Create lab sample
// @Description  Dispatches a sample for testing against an existing seizure
// @Tags         lab-samples
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLabSampleRequest  true  "Create Lab Sample Payload"
// @Success      201      {object}  response.Response{data=model.LabSample}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /lab-samples [post]
func (h *LabSampleHandler) CreateLabSample(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.CreateLabSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sample, err := h.sampleService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sample))
}

// UpdateLabSample handles PUT /lab-samples with the id in the body
// @Summary      Update lab sample
// @Tags         lab-samples
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateLabSampleRequest  true  "Update Lab Sample Payload"
// @Success      200      {object}  response.Response{data=model.LabSample}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /lab-samples [put]
func (h *LabSampleHandler) UpdateLabSample(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	var req service.UpdateLabSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sample, err := h.sampleService.Update(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sample))
}

// DeleteLabSample handles DELETE /lab-samples?id=
// @Summary      Delete lab sample
// @Description  Rejected while FIR cases still reference the sample
// @Tags         lab-samples
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Lab Sample ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /lab-samples [delete]
func (h *LabSampleHandler) DeleteLabSample(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "id query parameter is required"))
		return
	}

	if err := h.sampleService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Lab sample deleted successfully"))
}
