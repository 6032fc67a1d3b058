package service

import (
	"context"
	"testing"
	"time"

	"agriportal/internal/model"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	summaries map[string]model.EntitySummary
	activity  []model.ActivityItem
}

func (f *fakeReportRepo) Summary(_ context.Context, entity string, _ model.CaseFilter) (model.EntitySummary, error) {
	if summary, ok := f.summaries[entity]; ok {
		return summary, nil
	}
	return model.EntitySummary{Entity: entity, ByStatus: map[string]int64{}}, nil
}

func (f *fakeReportRepo) RecentActivity(_ context.Context, _ model.CaseFilter, limit int) ([]model.ActivityItem, error) {
	if len(f.activity) > limit {
		return f.activity[:limit], nil
	}
	return f.activity, nil
}

func TestDashboardAggregatesAllEntities(t *testing.T) {
	repo := &fakeReportRepo{
		summaries: map[string]model.EntitySummary{
			model.EntityInspection: {
				Entity: model.EntityInspection,
				Total:  7,
				ByStatus: map[string]int64{
					model.InspectionScheduled: 4,
					model.InspectionCompleted: 3,
				},
			},
			model.EntitySeizure: {
				Entity:   model.EntitySeizure,
				Total:    2,
				ByStatus: map[string]int64{model.SeizurePending: 2},
			},
		},
		activity: []model.ActivityItem{
			{Entity: model.EntityInspection, ID: uuid.New(), Code: "INS-001", CreatedAt: time.Now()},
		},
	}
	svc := NewReportService(repo)

	report, err := svc.Dashboard(context.Background(), model.CaseFilter{})
	require.NoError(t, err)

	require.Len(t, report.Summaries, len(ReportEntities()))
	for i, entity := range ReportEntities() {
		assert.Equal(t, entity, report.Summaries[i].Entity)
	}
	assert.Len(t, report.RecentActivity, 1)
	assert.False(t, report.GeneratedAt.IsZero())

	// Histogram totals stay consistent with the entity total
	for _, summary := range report.Summaries {
		var sum int64
		for _, n := range summary.ByStatus {
			sum += n
		}
		if len(summary.ByStatus) > 0 {
			assert.Equal(t, summary.Total, sum, "entity %s", summary.Entity)
		}
	}
}

func TestEntitySummaryRejectsUnknownType(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})

	_, err := svc.EntitySummary(context.Background(), "warehouses", model.CaseFilter{})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	summary, err := svc.EntitySummary(context.Background(), model.EntityLabSample, model.CaseFilter{})
	require.NoError(t, err)
	assert.Equal(t, model.EntityLabSample, summary.Entity)
}
