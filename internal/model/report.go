package model

import (
	"time"

	"github.com/google/uuid"
)

// Report entity type identifiers
const (
	EntityInspection     = "inspections"
	EntityFieldExecution = "field-executions"
	EntitySeizure        = "seizures"
	EntityLabSample      = "lab-samples"
	EntityFIRCase        = "fir-cases"
)

// CaseFilter is the uniform filter set applied across all five case-graph
// queries, for listings and reports alike, so cross-entity summary numbers
// stay comparable. District and status are equality matches, keyword is a
// case-insensitive substring match.
type CaseFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	District  string
	OfficerID *uuid.UUID
	Keyword   string
	Status    string
}

// EntitySummary holds the total and the group-by-status counts for one
// entity type. A type with zero rows yields an empty histogram.
type EntitySummary struct {
	Entity   string           `json:"entity"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// ActivityItem is one entry of the cross-entity recent activity feed
type ActivityItem struct {
	Entity    string    `json:"entity"`
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	District  string    `json:"district"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardReport aggregates summaries for every entity type plus the
// most recent activity across the whole chain.
type DashboardReport struct {
	Summaries      []EntitySummary `json:"summaries"`
	RecentActivity []ActivityItem  `json:"recent_activity"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
