package repository

import (
	"context"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InspectionRepository interface {
	Create(ctx context.Context, task *model.InspectionTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.InspectionTask, error)
	GetByCode(ctx context.Context, code string) (*model.InspectionTask, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.InspectionTask, int64, error)
	Update(ctx context.Context, task *model.InspectionTask) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type inspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, task *model.InspectionTask) error {
	return GetDB(ctx, r.db).Create(task).Error
}

func (r *inspectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InspectionTask, error) {
	var task model.InspectionTask
	if err := GetDB(ctx, r.db).Preload("User").First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *inspectionRepository) GetByCode(ctx context.Context, code string) (*model.InspectionTask, error) {
	var task model.InspectionTask
	if err := GetDB(ctx, r.db).First(&task, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *inspectionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.InspectionTask{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *inspectionRepository) List(ctx context.Context, f model.CaseFilter, page, limit int) ([]model.InspectionTask, int64, error) {
	var tasks []model.InspectionTask
	var total int64

	db := applyCaseFilter(GetDB(ctx, r.db).Model(&model.InspectionTask{}), f, "code", "location", "target_type")
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("created_at desc").Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *inspectionRepository) Update(ctx context.Context, task *model.InspectionTask) error {
	return GetDB(ctx, r.db).Save(task).Error
}

func (r *inspectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.InspectionTask{}).Error
}
