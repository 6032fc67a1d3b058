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

type CreateFIRCaseRequest struct {
	FIRCode       string `json:"fir_code" binding:"required"`
	LabSampleID   string `json:"lab_sample_id"`
	SeizureID     string `json:"seizure_id"`
	District      string `json:"district"`
	ViolationType string `json:"violation_type"`
	AccusedName   string `json:"accused_name"`
	PoliceStation string `json:"police_station"`
	ActSection    string `json:"act_section"`
	Status        string `json:"status"`
	Details       string `json:"details"`
}

type UpdateFIRCaseRequest struct {
	ID            string `json:"id" binding:"required"`
	District      string `json:"district"`
	ViolationType string `json:"violation_type"`
	AccusedName   string `json:"accused_name"`
	PoliceStation string `json:"police_station"`
	ActSection    string `json:"act_section"`
	Status        string `json:"status"`
	Details       string `json:"details"`
}

// --- Interface ---

type FIRCaseService interface {
	Create(ctx context.Context, actor auth.Actor, req CreateFIRCaseRequest) (*model.FIRCase, error)
	Get(ctx context.Context, id string) (*model.FIRCase, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FIRCase, int64, error)
	Update(ctx context.Context, actor auth.Actor, req UpdateFIRCaseRequest) (*model.FIRCase, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type firCaseService struct {
	repo        repository.FIRCaseRepository
	sampleRepo  repository.LabSampleRepository
	seizureRepo repository.SeizureRepository
	guard       *OwnershipGuard
	activity    caseActivity
}

func NewFIRCaseService(
	repo repository.FIRCaseRepository,
	sampleRepo repository.LabSampleRepository,
	seizureRepo repository.SeizureRepository,
	guard *OwnershipGuard,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) FIRCaseService {
	return &firCaseService{
		repo:        repo,
		sampleRepo:  sampleRepo,
		seizureRepo: seizureRepo,
		guard:       guard,
		activity:    caseActivity{auditRepo: auditRepo, hub: hub},
	}
}

// --- Implementation ---

func (s *firCaseService) Create(ctx context.Context, actor auth.Actor, req CreateFIRCaseRequest) (*model.FIRCase, error) {
	// Upstream links are optional, but a supplied link must resolve.
	var labSampleID *uuid.UUID
	if req.LabSampleID != "" {
		parsed, err := uuid.Parse(req.LabSampleID)
		if err != nil {
			return nil, apperror.Validation("invalid lab sample id")
		}
		exists, err := s.sampleRepo.Exists(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.NotFound("lab sample", req.LabSampleID)
		}
		labSampleID = &parsed
	}

	var seizureID *uuid.UUID
	if req.SeizureID != "" {
		parsed, err := uuid.Parse(req.SeizureID)
		if err != nil {
			return nil, apperror.Validation("invalid seizure id")
		}
		exists, err := s.seizureRepo.Exists(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.NotFound("seizure", req.SeizureID)
		}
		seizureID = &parsed
	}

	status := req.Status
	if status == "" {
		status = model.FIRDraft
	}
	if !model.ValidFIRStatus(status) {
		return nil, apperror.Validation("unrecognized FIR case status '" + status + "'")
	}

	if _, err := s.repo.GetByCode(ctx, req.FIRCode); err == nil {
		return nil, apperror.Conflict("FIR code '" + req.FIRCode + "' already exists")
	}

	firCase := &model.FIRCase{
		FIRCode:       req.FIRCode,
		LabSampleID:   labSampleID,
		SeizureID:     seizureID,
		UserID:        actor.UserID,
		District:      req.District,
		ViolationType: req.ViolationType,
		AccusedName:   req.AccusedName,
		PoliceStation: req.PoliceStation,
		ActSection:    req.ActSection,
		Status:        status,
		Details:       req.Details,
	}

	if err := s.repo.Create(ctx, firCase); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionCreateFIRCase, model.EntityFIRCase,
		firCase.ID, firCase.FIRCode, firCase.Status, firCase.District, req)
	return firCase, nil
}

func (s *firCaseService) Get(ctx context.Context, id string) (*model.FIRCase, error) {
	caseID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid FIR case id")
	}
	firCase, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("FIR case", id)
		}
		return nil, err
	}
	return firCase, nil
}

func (s *firCaseService) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FIRCase, int64, error) {
	if f.Status != "" && !model.ValidFIRStatus(f.Status) {
		return nil, 0, apperror.Validation("unrecognized FIR case status '" + f.Status + "'")
	}
	return s.repo.List(ctx, f, page, limit)
}

func (s *firCaseService) Update(ctx context.Context, actor auth.Actor, req UpdateFIRCaseRequest) (*model.FIRCase, error) {
	firCase, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Require(ctx, actor, firCase.UserID); err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !model.ValidFIRStatus(req.Status) {
			return nil, apperror.Validation("unrecognized FIR case status '" + req.Status + "'")
		}
		firCase.Status = req.Status
	}
	if req.District != "" {
		firCase.District = req.District
	}
	if req.ViolationType != "" {
		firCase.ViolationType = req.ViolationType
	}
	if req.AccusedName != "" {
		firCase.AccusedName = req.AccusedName
	}
	if req.PoliceStation != "" {
		firCase.PoliceStation = req.PoliceStation
	}
	if req.ActSection != "" {
		firCase.ActSection = req.ActSection
	}
	if req.Details != "" {
		firCase.Details = req.Details
	}

	if err := s.repo.Update(ctx, firCase); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionUpdateFIRCase, model.EntityFIRCase,
		firCase.ID, firCase.FIRCode, firCase.Status, firCase.District, req)
	return firCase, nil
}

func (s *firCaseService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	firCase, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.Require(ctx, actor, firCase.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, firCase.ID); err != nil {
		return err
	}

	s.activity.record(ctx, actor, model.ActionDeleteFIRCase, model.EntityFIRCase,
		firCase.ID, firCase.FIRCode, firCase.Status, firCase.District, nil)
	return nil
}
