package service

import (
	"context"
	"time"

	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/pkg/apperror"
)

const recentActivityLimit = 20

// ReportEntities lists every entity type the report layer aggregates over,
// in chain order.
func ReportEntities() []string {
	return []string{
		model.EntityInspection,
		model.EntityFieldExecution,
		model.EntitySeizure,
		model.EntityLabSample,
		model.EntityFIRCase,
	}
}

type ReportService interface {
	Dashboard(ctx context.Context, f model.CaseFilter) (*model.DashboardReport, error)
	EntitySummary(ctx context.Context, entity string, f model.CaseFilter) (*model.EntitySummary, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

// Dashboard aggregates all five entity summaries plus the cross-entity
// activity feed under a single filter set, so the numbers on one screen
// are mutually consistent.
func (s *reportService) Dashboard(ctx context.Context, f model.CaseFilter) (*model.DashboardReport, error) {
	report := &model.DashboardReport{
		Summaries:   make([]model.EntitySummary, 0, 5),
		GeneratedAt: time.Now().UTC(),
	}

	for _, entity := range ReportEntities() {
		summary, err := s.repo.Summary(ctx, entity, f)
		if err != nil {
			return nil, err
		}
		report.Summaries = append(report.Summaries, summary)
	}

	activity, err := s.repo.RecentActivity(ctx, f, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	report.RecentActivity = activity

	return report, nil
}

func (s *reportService) EntitySummary(ctx context.Context, entity string, f model.CaseFilter) (*model.EntitySummary, error) {
	valid := false
	for _, e := range ReportEntities() {
		if e == entity {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperror.Validation("unknown report type '" + entity + "'")
	}

	summary, err := s.repo.Summary(ctx, entity, f)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
