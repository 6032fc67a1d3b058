package handler

import (
	"time"

	"agriportal/internal/model"
	"agriportal/pkg/apperror"
	"agriportal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates a service error into its HTTP envelope
func respondError(c *gin.Context, err error) {
	env := response.FromError(err)
	c.JSON(env.StatusCode, env)
}

// parseDate accepts date-only and RFC3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseCaseFilter extracts the uniform listing/report filter set from the
// request query string.
func parseCaseFilter(c *gin.Context) (model.CaseFilter, error) {
	var f model.CaseFilter

	if raw := c.Query("date_from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, apperror.Validation("invalid date_from '" + raw + "'")
		}
		f.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, apperror.Validation("invalid date_to '" + raw + "'")
		}
		// A date-only upper bound is inclusive of the whole day
		if len(raw) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.DateTo = &t
	}

	if raw := c.Query("officer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, apperror.Validation("invalid officer_id '" + raw + "'")
		}
		f.OfficerID = &id
	}

	f.District = c.Query("district")
	f.Keyword = c.Query("keyword")
	f.Status = c.Query("status")
	return f, nil
}
