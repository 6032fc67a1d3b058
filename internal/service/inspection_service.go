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

type CreateInspectionRequest struct {
	Code       string `json:"code" binding:"required"`
	District   string `json:"district" binding:"required"`
	Taluka     string `json:"taluka"`
	Location   string `json:"location"`
	TargetType string `json:"target_type"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
}

type UpdateInspectionRequest struct {
	ID         string `json:"id" binding:"required"`
	District   string `json:"district"`
	Taluka     string `json:"taluka"`
	Location   string `json:"location"`
	TargetType string `json:"target_type"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
}

// --- Interface ---

type InspectionService interface {
	Create(ctx context.Context, actor auth.Actor, req CreateInspectionRequest) (*model.InspectionTask, error)
	Get(ctx context.Context, id string) (*model.InspectionTask, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.InspectionTask, int64, error)
	Update(ctx context.Context, actor auth.Actor, req UpdateInspectionRequest) (*model.InspectionTask, error)
	Delete(ctx context.Context, actor auth.Actor, id string) error
}

type inspectionService struct {
	repo      repository.InspectionRepository
	childRepo repository.FieldExecutionRepository
	guard     *OwnershipGuard
	activity  caseActivity
}

func NewInspectionService(
	repo repository.InspectionRepository,
	childRepo repository.FieldExecutionRepository,
	guard *OwnershipGuard,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) InspectionService {
	return &inspectionService{
		repo:      repo,
		childRepo: childRepo,
		guard:     guard,
		activity:  caseActivity{auditRepo: auditRepo, hub: hub},
	}
}

// --- Implementation ---

func (s *inspectionService) Create(ctx context.Context, actor auth.Actor, req CreateInspectionRequest) (*model.InspectionTask, error) {
	status := req.Status
	if status == "" {
		status = model.InspectionScheduled
	}
	if !model.ValidInspectionStatus(status) {
		return nil, apperror.Validation("unrecognized inspection status '" + status + "'")
	}

	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, apperror.Conflict("inspection code '" + req.Code + "' already exists")
	}

	task := &model.InspectionTask{
		Code:       req.Code,
		UserID:     actor.UserID,
		District:   req.District,
		Taluka:     req.Taluka,
		Location:   req.Location,
		TargetType: req.TargetType,
		Status:     status,
		Remarks:    req.Remarks,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionCreateInspection, model.EntityInspection,
		task.ID, task.Code, task.Status, task.District, req)
	return task, nil
}

func (s *inspectionService) Get(ctx context.Context, id string) (*model.InspectionTask, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid inspection id")
	}
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("inspection", id)
		}
		return nil, err
	}
	return task, nil
}

func (s *inspectionService) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.InspectionTask, int64, error) {
	if f.Status != "" && !model.ValidInspectionStatus(f.Status) {
		return nil, 0, apperror.Validation("unrecognized inspection status '" + f.Status + "'")
	}
	return s.repo.List(ctx, f, page, limit)
}

func (s *inspectionService) Update(ctx context.Context, actor auth.Actor, req UpdateInspectionRequest) (*model.InspectionTask, error) {
	task, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Require(ctx, actor, task.UserID); err != nil {
		return nil, err
	}

	if req.Status != "" {
		if !model.ValidInspectionStatus(req.Status) {
			return nil, apperror.Validation("unrecognized inspection status '" + req.Status + "'")
		}
		task.Status = req.Status
	}
	if req.District != "" {
		task.District = req.District
	}
	if req.Taluka != "" {
		task.Taluka = req.Taluka
	}
	if req.Location != "" {
		task.Location = req.Location
	}
	if req.TargetType != "" {
		task.TargetType = req.TargetType
	}
	if req.Remarks != "" {
		task.Remarks = req.Remarks
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, model.ActionUpdateInspection, model.EntityInspection,
		task.ID, task.Code, task.Status, task.District, req)
	return task, nil
}

func (s *inspectionService) Delete(ctx context.Context, actor auth.Actor, id string) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.Require(ctx, actor, task.UserID); err != nil {
		return err
	}

	// Restrict rather than cascade: a task with recorded field executions
	// stays until its children are removed.
	children, err := s.childRepo.CountByInspection(ctx, task.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperror.Conflict("inspection has field executions and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.activity.record(ctx, actor, model.ActionDeleteInspection, model.EntityInspection,
		task.ID, task.Code, task.Status, task.District, nil)
	return nil
}
