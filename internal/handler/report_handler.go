package handler

import (
	"net/http"

	"agriportal/internal/middleware"
	"agriportal/internal/model"
	"agriportal/internal/service"
	"agriportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	reports := router.Group("/reports")
	reports.Use(middleware.Authenticator())
	{
		reports.GET("", authMW.RequireView(model.MenuReports), h.GetReport)
	}
}

// GetReport handles GET /reports?type=
// @Summary      Get report
// @Description  type=dashboard returns all entity summaries plus the recent activity feed; an entity name returns that entity's summary alone. Every report honors the shared filter set.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        type        query     string  false  "dashboard (default) or an entity name"
// @Param        date_from   query     string  false  "Created on or after (YYYY-MM-DD)"
// @Param        date_to     query     string  false  "Created on or before (YYYY-MM-DD)"
// @Param        district    query     string  false  "District"
// @Param        officer_id  query     string  false  "Owning officer ID"
// @Param        keyword     query     string  false  "Keyword search"
// @Param        status      query     string  false  "Status"
// @Success      200  {object}  response.Response{data=model.DashboardReport}
// @Failure      400  {object}  response.Response
// @Router       /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	f, err := parseCaseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	reportType := c.DefaultQuery("type", "dashboard")
	if reportType == "dashboard" {
		report, err := h.reportService.Dashboard(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
		return
	}

	summary, err := h.reportService.EntitySummary(c.Request.Context(), reportType, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
