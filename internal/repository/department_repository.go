package repository

import (
	"context"

	"gorm.io/gorm"

	"hourcount/internal/model"
)

// DepartmentRepository defines department persistence operations.
type DepartmentRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Department, error)
	FindOrCreateByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository builds a GORM-backed repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	var dept model.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindOrCreateByName is used by roster seeding, where departments
// arrive as plain names.
func (r *departmentRepository) FindOrCreateByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
	if err == nil {
		return &dept, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	dept = model.Department{Name: name}
	if err := r.db.WithContext(ctx).Create(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]model.Department, error) {
	depts := []model.Department{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}
