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

type CreateFieldExecutionRequest struct {
	FieldCode       string   `json:"field_code" binding:"required"`
	InspectionID    string   `json:"inspection_id" binding:"required"`
	District        string   `json:"district"`
	CompanyName     string   `json:"company_name"`
	ProductName     string   `json:"product_name"`
	DealerName      string   `json:"dealer_name"`
	BatchNumber     string   `json:"batch_number"`
	ChemicalName    string   `json:"chemical_name"`
	AssayPercentage *float64 `json:"assay_percentage"`
	Findings        string   `json:"findings"`
}

type UpdateFieldExecutionRequest struct {
	ID              string   `json:"id" binding:"required"`
	District        string   `json:"district"`
	CompanyName     string   `json:"company_name"`
	ProductName     string   `json:"product_name"`
	DealerName      string   `json:"dealer_name"`
	BatchNumber     string   `json:"batch_number"`
	ChemicalName    string   `json:"chemical_name"`
	AssayPercentage *float64 `json:"assay_percentage"`
	Findings        string   `json:"findings"`
}

// --- Interface ---

type FieldExecutionService interface {
	Create(ctx context.Context, actor auth.Actor, req CreateFieldExecutionRequest) (*model.FieldExecution, error)
	Get(ctx context.Context, id string) (*model.FieldExecution, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FieldExecution, int64, error)
	Update(ctx context.Context, actor auth.Actor, req UpdateFieldExecutionRequest) (*model.FieldExecution, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type fieldExecutionService struct {
	repo       repository.FieldExecutionRepository
	parentRepo repository.InspectionRepository
	childRepo  repository.SeizureRepository
	guard      *OwnershipGuard
	activity   caseActivity
}

func NewFieldExecutionService(
	repo repository.FieldExecutionRepository,
	parentRepo repository.InspectionRepository,
	childRepo repository.SeizureRepository,
	guard *OwnershipGuard,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) FieldExecutionService {
	return &fieldExecutionService{
		repo:       repo,
		parentRepo: parentRepo,
		childRepo:  childRepo,
		guard:      guard,
		activity:   caseActivity{auditRepo: auditRepo, hub: hub},
	}
}

// --- Implementation ---

func (s *fieldExecutionService) Create(ctx context.Context, actor auth.Actor, req CreateFieldExecutionRequest) (*model.FieldExecution, error) {
	inspectionID, err := uuid.Parse(req.InspectionID)
	if err != nil {
		return nil, apperror.Validation("invalid inspection id")
	}

	// Never create an orphan: the parent inspection must exist first
	exists, err := s.parentRepo.Exists(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("inspection", req.InspectionID)
	}

	if _, err := s.repo.GetByCode(ctx, req.FieldCode); err == nil {
		return nil, apperror.Conflict("field code '" + req.FieldCode + "' already exists")
	}

	exec := &model.FieldExecution{
		FieldCode:       req.FieldCode,
		InspectionID:    inspectionID,
		UserID:          actor.UserID,
		District:        req.District,
		CompanyName:     req.CompanyName,
		ProductName:     req.ProductName,
		DealerName:      req.DealerName,
		BatchNumber:     req.BatchNumber,
		ChemicalName:    req.ChemicalName,
		AssayPercentage: req.AssayPercentage,
		Findings:        req.Findings,
	}

	if err := s.repo.Create(ctx, exec); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionCreateFieldExecution, model.EntityFieldExecution,
		exec.ID, exec.FieldCode, "", exec.District, req)
	return exec, nil
}

func (s *fieldExecutionService) Get(ctx context.Context, id string) (*model.FieldExecution, error) {
	execID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid field execution id")
	}
	exec, err := s.repo.GetByID(ctx, execID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("field execution", id)
		}
		return nil, err
	}
	return exec, nil
}

func (s *fieldExecutionService) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FieldExecution, int64, error) {
	return s.repo.List(ctx, f, page, limit)
}

func (s *fieldExecutionService) Update(ctx context.Context, actor auth.Actor, req UpdateFieldExecutionRequest) (*model.FieldExecution, error) {
	exec, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Require(ctx, actor, exec.UserID); err != nil {
		return nil, err
	}

	if req.District != "" {
		exec.District = req.District
	}
	if req.CompanyName != "" {
		exec.CompanyName = req.CompanyName
	}
	if req.ProductName != "" {
		exec.ProductName = req.ProductName
	}
	if req.DealerName != "" {
		exec.DealerName = req.DealerName
	}
	if req.BatchNumber != "" {
		exec.BatchNumber = req.BatchNumber
	}
	if req.ChemicalName != "" {
		exec.ChemicalName = req.ChemicalName
	}
	if req.AssayPercentage != nil {
		exec.AssayPercentage = req.AssayPercentage
	}
	if req.Findings != "" {
		exec.Findings = req.Findings
	}

	if err := s.repo.Update(ctx, exec); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionUpdateFieldExecution, model.EntityFieldExecution,
		exec.ID, exec.FieldCode, "", exec.District, req)
	return exec, nil
}

func (s *fieldExecutionService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	exec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.Require(ctx, actor, exec.UserID); err != nil {
		return err
	}

	children, err := s.childRepo.CountByFieldExecution(ctx, exec.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperror.Conflict("field execution has seizures and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, exec.ID); err != nil {
		return err
	}

	s.activity.record(ctx, actor, model.ActionDeleteFieldExecution, model.EntityFieldExecution,
		exec.ID, exec.FieldCode, "", exec.District, nil)
	return nil
}
