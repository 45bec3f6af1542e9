package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailPermitidoRepository interface {
	Create(ctx context.Context, e *model.EmailPermitido) error
	FindByEmail(ctx context.Context, email string) (*model.EmailPermitido, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.EmailPermitido, error)
	List(ctx context.Context) ([]model.EmailPermitido, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type emailPermitidoRepo struct{ db *gorm.DB }

func NewEmailPermitidoRepository(db *gorm.DB) EmailPermitidoRepository {
	return &emailPermitidoRepo{db: db}
}

func (r *emailPermitidoRepo) Create(ctx context.Context, e *model.EmailPermitido) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *emailPermitidoRepo) FindByEmail(ctx context.Context, email string) (*model.EmailPermitido, error) {
	var e model.EmailPermitido
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&e).Error
	return &e, err
}

func (r *emailPermitidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EmailPermitido, error) {
	var e model.EmailPermitido
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *emailPermitidoRepo) List(ctx context.Context) ([]model.EmailPermitido, error) {
	var list []model.EmailPermitido
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *emailPermitidoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EmailPermitido{}, "id = ?", id).Error
}
