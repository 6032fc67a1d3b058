package repository

import (
	"context"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FieldExecutionRepository interface {
	Create(ctx context.Context, exec *model.FieldExecution) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FieldExecution, error)
	GetByCode(ctx context.Context, code string) (*model.FieldExecution, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FieldExecution, int64, error)
	Update(ctx context.Context, exec *model.FieldExecution) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByInspection(ctx context.Context, inspectionID uuid.UUID) (int64, error)
}

type fieldExecutionRepository struct {
	db *gorm.DB
}

func NewFieldExecutionRepository(db *gorm.DB) FieldExecutionRepository {
	return &fieldExecutionRepository{db: db}
}

func (r *fieldExecutionRepository) Create(ctx context.Context, exec *model.FieldExecution) error {
	return GetDB(ctx, r.db).Create(exec).Error
}

func (r *fieldExecutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FieldExecution, error) {
	var exec model.FieldExecution
	if err := GetDB(ctx, r.db).Preload("Inspection").Preload("User").First(&exec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exec, nil
}

func (r *fieldExecutionRepository) GetByCode(ctx context.Context, code string) (*model.FieldExecution, error) {
	var exec model.FieldExecution
	if err := GetDB(ctx, r.db).First(&exec, "field_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &exec, nil
}

func (r *fieldExecutionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.FieldExecution{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *fieldExecutionRepository) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FieldExecution, int64, error) {
	var execs []model.FieldExecution
	var total int64

	// Field executions carry no status column
	f.Status = ""
	db := applyCaseFilter(GetDB(ctx, r.db).Model(&model.FieldExecution{}), f,
		"field_code", "company_name", "product_name", "dealer_name")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Inspection").Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&execs).Error; err != nil {
		return nil, 0, err
	}

	return execs, total, nil
}

func (r *fieldExecutionRepository) Update(ctx context.Context, exec *model.FieldExecution) error {
	return GetDB(ctx, r.db).Save(exec).Error
}

func (r *fieldExecutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.FieldExecution{}).Error
}

func (r *fieldExecutionRepository) CountByInspection(ctx context.Context, inspectionID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.FieldExecution{}).Where("inspection_id = ?", inspectionID).Count(&count).Error
	return count, err
}
