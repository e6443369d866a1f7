package repository

import (
	"context"

	"gorm.io/gorm"

	"internhub/internal/model"
)

// InternRepository defines persistence operations.
type InternRepository interface {
	Create(ctx context.Context, intern *model.Intern) error
	Save(ctx context.Context, intern *model.Intern) error
	FindByID(ctx context.Context, id uint) (*model.Intern, error)
	FindByEmail(ctx context.Context, email string) (*model.Intern, error)
	List(ctx context.Context) ([]model.Intern, error)
}

type internRepository struct {
	db *gorm.DB
}

// NewInternRepository builds a GORM-backed repository.
func NewInternRepository(db *gorm.DB) InternRepository {
	return &internRepository{db: db}
}

func (r *internRepository) Create(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Create(intern).Error
}

func (r *internRepository) Save(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Save(intern).Error
}

func (r *internRepository) FindByID(ctx context.Context, id uint) (*model.Intern, error) {
	var intern model.Intern
	if err := r.db.WithContext(ctx).First(&intern, id).Error; err != nil {
		return nil, err
	}
	return &intern, nil
}

func (r *internRepository) FindByEmail(ctx context.Context, email string) (*model.Intern, error) {
	var intern model.Intern
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&intern).Error; err != nil {
		return nil, err
	}
	return &intern, nil
}

func (r *internRepository) List(ctx context.Context) ([]model.Intern, error) {
	var interns []model.Intern
	if err := r.db.WithContext(ctx).Order("intern_id").Find(&interns).Error; err != nil {
		return nil, err
	}
	return interns, nil
}
