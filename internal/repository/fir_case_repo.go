package repository

import (
	"context"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FIRCaseRepository interface {
	Create(ctx context.Context, firCase *model.FIRCase) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FIRCase, error)
	GetByCode(ctx context.Context, code string) (*model.FIRCase, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FIRCase, int64, error)
	Update(ctx context.Context, firCase *model.FIRCase) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySeizure(ctx context.Context, seizureID uuid.UUID) (int64, error)
	CountByLabSample(ctx context.Context, labSampleID uuid.UUID) (int64, error)
}

type firCaseRepository struct {
	db *gorm.DB
}

func NewFIRCaseRepository(db *gorm.DB) FIRCaseRepository {
	return &firCaseRepository{db: db}
}

func (r *firCaseRepository) Create(ctx context.Context, firCase *model.FIRCase) error {
	return GetDB(ctx, r.db).Create(firCase).Error
}

func (r *firCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FIRCase, error) {
	var firCase model.FIRCase
	if err := GetDB(ctx, r.db).Preload("LabSample").Preload("Seizure").Preload("User").First(&firCase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &firCase, nil
}

func (r *firCaseRepository) GetByCode(ctx context.Context, code string) (*model.FIRCase, error) {
	var firCase model.FIRCase
	if err := GetDB(ctx, r.db).First(&firCase, "fir_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &firCase, nil
}

func (r *firCaseRepository) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.FIRCase, int64, error) {
	var cases []model.FIRCase
	var total int64

	db := applyCaseFilter(GetDB(ctx, r.db).Model(&model.FIRCase{}), f,
		"fir_code", "violation_type", "accused_name", "police_station")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("LabSample").Preload("Seizure").Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&cases).Error; err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

func (r *firCaseRepository) Update(ctx context.Context, firCase *model.FIRCase) error {
	return GetDB(ctx, r.db).Save(firCase).Error
}

func (r *firCaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.FIRCase{}).Error
}

func (r *firCaseRepository) CountBySeizure(ctx context.Context, seizureID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.FIRCase{}).Where("seizure_id = ?", seizureID).Count(&count).Error
	return count, err
}

func (r *firCaseRepository) CountByLabSample(ctx context.Context, labSampleID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.FIRCase{}).Where("lab_sample_id = ?", labSampleID).Count(&count).Error
	return count, err
}
