package repository

import (
	"context"
	"fmt"
	"sort"

	"agriportal/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Summary(ctx context.Context, entity string, f model.CaseFilter) (model.EntitySummary, error)
	RecentActivity(ctx context.Context, f model.CaseFilter, limit int) ([]model.ActivityItem, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// entitySpec describes how one case-graph table is queried for reporting
type entitySpec struct {
	model       interface{}
	codeColumn  string
	hasStatus   bool
	keywordCols []string
}

func specFor(entity string) (entitySpec, error) {
	switch entity {
	case model.EntityInspection:
		return entitySpec{&model.InspectionTask{}, "code", true, []string{"code", "location", "target_type"}}, nil
	case model.EntityFieldExecution:
		return entitySpec{&model.FieldExecution{}, "field_code", false, []string{"field_code", "company_name", "product_name", "dealer_name"}}, nil
	case model.EntitySeizure:
		return entitySpec{&model.Seizure{}, "seizure_code", true, []string{"seizure_code", "location"}}, nil
	case model.EntityLabSample:
		return entitySpec{&model.LabSample{}, "sample_code", true, []string{"sample_code", "department", "destination"}}, nil
	case model.EntityFIRCase:
		return entitySpec{&model.FIRCase{}, "fir_code", true, []string{"fir_code", "violation_type", "accused_name", "police_station"}}, nil
	}
	return entitySpec{}, fmt.Errorf("unknown report entity '%s'", entity)
}

// Summary returns the total row count and the group-by-status histogram for
// one entity type. An entity with zero rows yields an empty histogram.
func (r *reportRepository) Summary(ctx context.Context, entity string, f model.CaseFilter) (model.EntitySummary, error) {
	spec, err := specFor(entity)
	if err != nil {
		return model.EntitySummary{}, err
	}
	if !spec.hasStatus {
		f.Status = ""
	}

	summary := model.EntitySummary{Entity: entity, ByStatus: map[string]int64{}}

	base := applyCaseFilter(GetDB(ctx, r.db).Model(spec.model), f, spec.keywordCols...)
	if err := base.Count(&summary.Total).Error; err != nil {
		return model.EntitySummary{}, err
	}

	if spec.hasStatus {
		var rows []struct {
			Status string
			Count  int64
		}
		grouped := applyCaseFilter(GetDB(ctx, r.db).Model(spec.model), f, spec.keywordCols...)
		if err := grouped.Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
			return model.EntitySummary{}, err
		}
		for _, row := range rows {
			summary.ByStatus[row.Status] = row.Count
		}
	}

	return summary, nil
}

// RecentActivity merges the newest records of all five entity types into a
// single feed ordered by creation time descending.
func (r *reportRepository) RecentActivity(ctx context.Context, f model.CaseFilter, limit int) ([]model.ActivityItem, error) {
	entities := []string{
		model.EntityInspection,
		model.EntityFieldExecution,
		model.EntitySeizure,
		model.EntityLabSample,
		model.EntityFIRCase,
	}

	feed := make([]model.ActivityItem, 0, limit*len(entities))
	for _, entity := range entities {
		spec, err := specFor(entity)
		if err != nil {
			return nil, err
		}
		ef := f
		if !spec.hasStatus {
			ef.Status = ""
		}

		statusCol := "status"
		if !spec.hasStatus {
			statusCol = "''"
		}

		var items []model.ActivityItem
		db := applyCaseFilter(GetDB(ctx, r.db).Model(spec.model), ef, spec.keywordCols...)
		err = db.Select(fmt.Sprintf("id, %s as code, %s as status, district, created_at", spec.codeColumn, statusCol)).
			Order("created_at desc").
			Limit(limit).
			Scan(&items).Error
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].Entity = entity
		}
		feed = append(feed, items...)
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
