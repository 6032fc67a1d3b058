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

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	group := router.Group("/audit-logs")
	group.Use(middleware.Authenticator())
	{
		group.GET("", authMW.RequireView(model.MenuAuditLogs), h.GetAuditLogs)
	}
}

// GetAuditLogs retrieves paginated audit records newest first
// @Summary      Get audit logs
// @Description  Retrieves the change history of critical records
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=pagination.Page}
// @Router       /audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(logs, p, total)))
}
