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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateSeizureRequest struct {
	SeizureCode      string `json:"seizure_code" binding:"required"`
	FieldExecutionID string `json:"field_execution_id" binding:"required"`
	District         string `json:"district"`
	Location         string `json:"location"`
	Quantity         string `json:"quantity" binding:"required"` // Decimal string
	QuantityUnit     string `json:"quantity_unit"`
	EstimatedValue   string `json:"estimated_value" binding:"required"` // Decimal string
	Status           string `json:"status"`
	Remarks          string `json:"remarks"`
}

type UpdateSeizureRequest struct {
	ID             string `json:"id" binding:"required"`
	District       string `json:"district"`
	Location       string `json:"location"`
	Quantity       string `json:"quantity"`
	QuantityUnit   string `json:"quantity_unit"`
	EstimatedValue string `json:"estimated_value"`
	Status         string `json:"status"`
	Remarks        string `json:"remarks"`
}

// --- Interface ---

type SeizureService interface {
	Create(ctx context.Context, actor auth.Actor, req CreateSeizureRequest) (*model.Seizure, error)
	Get(ctx context.Context, id string) (*model.Seizure, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.Seizure, int64, error)
	Update(ctx context.Context, actor auth.Actor, req UpdateSeizureRequest) (*model.Seizure, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type seizureService struct {
	repo       repository.SeizureRepository
	parentRepo repository.FieldExecutionRepository
	sampleRepo repository.LabSampleRepository
	firRepo    repository.FIRCaseRepository
	guard      *OwnershipGuard
	activity   caseActivity
}

func NewSeizureService(
	repo repository.SeizureRepository,
	parentRepo repository.FieldExecutionRepository,
	sampleRepo repository.LabSampleRepository,
	firRepo repository.FIRCaseRepository,
	guard *OwnershipGuard,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) SeizureService {
	return &seizureService{
		repo:       repo,
		parentRepo: parentRepo,
		sampleRepo: sampleRepo,
		firRepo:    firRepo,
		guard:      guard,
		activity:   caseActivity{auditRepo: auditRepo, hub: hub},
	}
}

// --- Implementation ---

func (s *seizureService) Create(ctx context.Context, actor auth.Actor, req CreateSeizureRequest) (*model.Seizure, error) {
	fieldExecutionID, err := uuid.Parse(req.FieldExecutionID)
	if err != nil {
		return nil, apperror.Validation("invalid field execution id")
	}

	exists, err := s.parentRepo.Exists(ctx, fieldExecutionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("field execution", req.FieldExecutionID)
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return nil, apperror.Validation("invalid quantity")
	}
	estimatedValue, err := decimal.NewFromString(req.EstimatedValue)
	if err != nil {
		return nil, apperror.Validation("invalid estimated_value")
	}
	if quantity.IsNegative() || estimatedValue.IsNegative() {
		return nil, apperror.Validation("quantity and estimated_value must not be negative")
	}

	status := req.Status
	if status == "" {
		status = model.SeizurePending
	}
	if !model.ValidSeizureStatus(status) {
		return nil, apperror.Validation("unrecognized seizure status '" + status + "'")
	}

	if _, err := s.repo.GetByCode(ctx, req.SeizureCode); err == nil {
		return nil, apperror.Conflict("seizure code '" + req.SeizureCode + "' already exists")
	}

	seizure := &model.Seizure{
		SeizureCode:      req.SeizureCode,
		FieldExecutionID: fieldExecutionID,
		UserID:           actor.UserID,
		District:         req.District,
		Location:         req.Location,
		Quantity:         quantity,
		QuantityUnit:     req.QuantityUnit,
		EstimatedValue:   estimatedValue,
		Status:           status,
		Remarks:          req.Remarks,
	}

	if err := s.repo.Create(ctx, seizure); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionCreateSeizure, model.EntitySeizure,
		seizure.ID, seizure.SeizureCode, seizure.Status, seizure.District, req)
	return seizure, nil
}

func (s *seizureService) Get(ctx context.Context, id string) (*model.Seizure, error) {
	seizureID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid seizure id")
	}
	seizure, err := s.repo.GetByID(ctx, seizureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("seizure", id)
		}
		return nil, err
	}
	return seizure, nil
}

func (s *seizureService) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.Seizure, int64, error) {
	if f.Status != "" && !model.ValidSeizureStatus(f.Status) {
		return nil, 0, apperror.Validation("unrecognized seizure status '" + f.Status + "'")
	}
	return s.repo.List(ctx, f, page, limit)
}

func (s *seizureService) Update(ctx context.Context, actor auth.Actor, req UpdateSeizureRequest) (*model.Seizure, error) {
	seizure, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Require(ctx, actor, seizure.UserID); err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !model.ValidSeizureStatus(req.Status) {
			return nil, apperror.Validation("unrecognized seizure status '" + req.Status + "'")
		}
		seizure.Status = req.Status
	}
	if req.Quantity != "" {
		quantity, err := decimal.NewFromString(req.Quantity)
		if err != nil || quantity.IsNegative() {
			return nil, apperror.Validation("invalid quantity")
		}
		seizure.Quantity = quantity
	}
	if req.EstimatedValue != "" {
		estimatedValue, err := decimal.NewFromString(req.EstimatedValue)
		if err != nil || estimatedValue.IsNegative() {
			return nil, apperror.Validation("invalid estimated_value")
		}
		seizure.EstimatedValue = estimatedValue
	}
	if req.District != "" {
		seizure.District = req.District
	}
	if req.Location != "" {
		seizure.Location = req.Location
	}
	if req.QuantityUnit != "" {
		seizure.QuantityUnit = req.QuantityUnit
	}
	if req.Remarks != "" {
		seizure.Remarks = req.Remarks
	}

	if err := s.repo.Update(ctx, seizure); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionUpdateSeizure, model.EntitySeizure,
		seizure.ID, seizure.SeizureCode, seizure.Status, seizure.District, req)
	return seizure, nil
}

func (s *seizureService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	seizure, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.Require(ctx, actor, seizure.UserID); err != nil {
		return err
	}

	samples, err := s.sampleRepo.CountBySeizure(ctx, seizure.ID)
	if err != nil {
		return err
	}
	firCases, err := s.firRepo.CountBySeizure(ctx, seizure.ID)
	if err != nil {
		return err
	}
	if samples > 0 || firCases > 0 {
		return apperror.Conflict("seizure is referenced by lab samples or FIR cases and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, seizure.ID); err != nil {
		return err
	}

	s.activity.record(ctx, actor, model.ActionDeleteSeizure, model.EntitySeizure,
		seizure.ID, seizure.SeizureCode, seizure.Status, seizure.District, nil)
	return nil
}
