package service

import (
	"context"
	"errors"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/internal/websocket"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateLabSampleRequest struct {
	SampleCode  string `json:"sample_code" binding:"required"`
	SeizureID   string `json:"seizure_id" binding:"required"`
	District    string `json:"district"`
	Department  string `json:"department"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	TestResult  string `json:"test_result"`
}

type UpdateLabSampleRequest struct {
	ID          string `json:"id" binding:"required"`
	District    string `json:"district"`
	Department  string `json:"department"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	TestResult  string `json:"test_result"`
}

// --- Interface ---

type LabSampleService interface {
	Create(ctx context.Context, actor auth.Actor, req CreateLabSampleRequest) (*model.LabSample, error)
	Get(ctx context.Context, id string) (*model.LabSample, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.LabSample, int64, error)
	Update(ctx context.Context, actor auth.Actor, req UpdateLabSampleRequest) (*model.LabSample, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type labSampleService struct {
	repo       repository.LabSampleRepository
	parentRepo repository.SeizureRepository
	firRepo    repository.FIRCaseRepository
	guard      *OwnershipGuard
	activity   caseActivity
}

func NewLabSampleService(
	repo repository.LabSampleRepository,
	parentRepo repository.SeizureRepository,
	firRepo repository.FIRCaseRepository,
	guard *OwnershipGuard,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) LabSampleService {
	return &labSampleService{
		repo:       repo,
		parentRepo: parentRepo,
		firRepo:    firRepo,
		guard:      guard,
		activity:   caseActivity{auditRepo: auditRepo, hub: hub},
	}
}

// --- Implementation ---

func (s *labSampleService) Create(ctx context.Context, actor auth.Actor, req CreateLabSampleRequest) (*model.LabSample, error) {
	seizureID, err := uuid.Parse(req.SeizureID)
	if err != nil {
		return nil, apperror.Validation("invalid seizure id")
	}

	exists, err := s.parentRepo.Exists(ctx, seizureID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("seizure", req.SeizureID)
	}

	status := req.Status
	if status == "" {
		status = model.SamplePending
	}
	if !model.ValidSampleStatus(status) {
		return nil, apperror.Validation("unrecognized lab sample status '" + status + "'")
	}

	if _, err := s.repo.GetByCode(ctx, req.SampleCode); err == nil {
		return nil, apperror.Conflict("sample code '" + req.SampleCode + "' already exists")
	}

	sample := &model.LabSample{
		SampleCode:  req.SampleCode,
		SeizureID:   seizureID,
		UserID:      actor.UserID,
		District:    req.District,
		Department:  req.Department,
		Destination: req.Destination,
		Status:      status,
		TestResult:  req.TestResult,
	}

	if err := s.repo.Create(ctx, sample); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionCreateLabSample, model.EntityLabSample,
		sample.ID, sample.SampleCode, sample.Status, sample.District, req)
	return sample, nil
}

func (s *labSampleService) Get(ctx context.Context, id string) (*model.LabSample, error) {
	sampleID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid lab sample id")
	}
	sample, err := s.repo.GetByID(ctx, sampleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lab sample", id)
		}
		return nil, err
	}
	return sample, nil
}

func (s *labSampleService) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.LabSample, int64, error) {
	if f.Status != "" && !model.ValidSampleStatus(f.Status) {
		return nil, 0, apperror.Validation("unrecognized lab sample status '" + f.Status + "'")
	}
	return s.repo.List(ctx, f, page, limit)
}

func (s *labSampleService) Update(ctx context.Context, actor auth.Actor, req UpdateLabSampleRequest) (*model.LabSample, error) {
	sample, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Require(ctx, actor, sample.UserID); err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !model.ValidSampleStatus(req.Status) {
			return nil, apperror.Validation("unrecognized lab sample status '" + req.Status + "'")
		}
		sample.Status = req.Status
	}
	if req.District != "" {
		sample.District = req.District
	}
	if req.Department != "" {
		sample.Department = req.Department
	}
	if req.Destination != "" {
		sample.Destination = req.Destination
	}
	if req.TestResult != "" {
		sample.TestResult = req.TestResult
	}

	if err := s.repo.Update(ctx, sample); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionUpdateLabSample, model.EntityLabSample,
		sample.ID, sample.SampleCode, sample.Status, sample.District, req)
	return sample, nil
}

func (s *labSampleService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	sample, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.Require(ctx, actor, sample.UserID); err != nil {
		return err
	}

	firCases, err := s.firRepo.CountByLabSample(ctx, sample.ID)
	if err != nil {
		return err
	}
	if firCases > 0 {
		return apperror.Conflict("lab sample is referenced by FIR cases and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, sample.ID); err != nil {
		return err
	}

	s.activity.record(ctx, actor, model.ActionDeleteLabSample, model.EntityLabSample,
		sample.ID, sample.SampleCode, sample.Status, sample.District, nil)
	return nil
}
