package repository

import (
	"context"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeizureRepository interface {
	Create(ctx context.Context, seizure *model.Seizure) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Seizure, error)
	GetByCode(ctx context.Context, code string) (*model.Seizure, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.Seizure, int64, error)
	Update(ctx context.Context, seizure *model.Seizure) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByFieldExecution(ctx context.Context, fieldExecutionID uuid.UUID) (int64, error)
}

type seizureRepository struct {
	db *gorm.DB
}

func NewSeizureRepository(db *gorm.DB) SeizureRepository {
	return &seizureRepository{db: db}
}

func (r *seizureRepository) Create(ctx context.Context, seizure *model.Seizure) error {
	return GetDB(ctx, r.db).Create(seizure).Error
}

func (r *seizureRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Seizure, error) {
	var seizure model.Seizure
	if err := GetDB(ctx, r.db).Preload("FieldExecution").Preload("User").First(&seizure, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seizure, nil
}

func (r *seizureRepository) GetByCode(ctx context.Context, code string) (*model.Seizure, error) {
	var seizure model.Seizure
	if err := GetDB(ctx, r.db).First(&seizure, "seizure_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &seizure, nil
}

func (r *seizureRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Seizure{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *seizureRepository) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.Seizure, int64, error) {
	var seizures []model.Seizure
	var total int64

	db := applyCaseFilter(GetDB(ctx, r.db).Model(&model.Seizure{}), f, "seizure_code", "location")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("FieldExecution").Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&seizures).Error; err != nil {
		return nil, 0, err
	}

	return seizures, total, nil
}

func (r *seizureRepository) Update(ctx context.Context, seizure *model.Seizure) error {
	return GetDB(ctx, r.db).Save(seizure).Error
}

func (r *seizureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Seizure{}).Error
}

func (r *seizureRepository) CountByFieldExecution(ctx context.Context, fieldExecutionID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Seizure{}).Where("field_execution_id = ?", fieldExecutionID).Count(&count).Error
	return count, err
}
