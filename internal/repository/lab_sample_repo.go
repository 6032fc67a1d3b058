package repository

import (
	"context"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabSampleRepository interface {
	Create(ctx context.Context, sample *model.LabSample) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.LabSample, error)
	GetByCode(ctx context.Context, code string) (*model.LabSample, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.LabSample, int64, error)
	Update(ctx context.Context, sample *model.LabSample) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySeizure(ctx context.Context, seizureID uuid.UUID) (int64, error)
}

type labSampleRepository struct {
	db *gorm.DB
}

func NewLabSampleRepository(db *gorm.DB) LabSampleRepository {
	return &labSampleRepository{db: db}
}

func (r *labSampleRepository) Create(ctx context.Context, sample *model.LabSample) error {
	return GetDB(ctx, r.db).Create(sample).Error
}

func (r *labSampleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.LabSample, error) {
	var sample model.LabSample
	if err := GetDB(ctx, r.db).Preload("Seizure").Preload("User").First(&sample, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *labSampleRepository) GetByCode(ctx context.Context, code string) (*model.LabSample, error) {
	var sample model.LabSample
	if err := GetDB(ctx, r.db).First(&sample, "sample_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *labSampleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.LabSample{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *labSampleRepository) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.LabSample, int64, error) {
	var samples []model.LabSample
	var total int64

	db := applyCaseFilter(GetDB(ctx, r.db).Model(&model.LabSample{}), f, "sample_code", "department", "destination")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Seizure").Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&samples).Error; err != nil {
		return nil, 0, err
	}

	return samples, total, nil
}

func (r *labSampleRepository) Update(ctx context.Context, sample *model.LabSample) error {
	return GetDB(ctx, r.db).Save(sample).Error
}

func (r *labSampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.LabSample{}).Error
}

func (r *labSampleRepository) CountBySeizure(ctx context.Context, seizureID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.LabSample{}).Where("seizure_id = ?", seizureID).Count(&count).Error
	return count, err
}
