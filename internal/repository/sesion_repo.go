package repository

import (
	"context"

	"obranza/internal/model"

	"gorm.io/gorm"
)

type SesionRepository interface {
	Create(ctx context.Context, s *model.Sesion) error
	FindByToken(ctx context.Context, token string) (*model.Sesion, error)
	Delete(ctx context.Context, token string) error
	DeleteExpiradas(ctx context.Context) (int64, error)
}

type sesionRepo struct{ db *gorm.DB }

func NewSesionRepository(db *gorm.DB) SesionRepository { return &sesionRepo{db: db} }

func (r *sesionRepo) Create(ctx context.Context, s *model.Sesion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sesionRepo) FindByToken(ctx context.Context, token string) (*model.Sesion, error) {
	var s model.Sesion
	err := r.db.WithContext(ctx).Preload("Usuario").Where("token = ?", token).First(&s).Error
	return &s, err
}

// Delete is idempotent: removing an absent token is not an error.
func (r *sesionRepo) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&model.Sesion{}, "token = ?", token).Error
}

// DeleteExpiradas removes stale session rows; run periodically from main.
func (r *sesionRepo) DeleteExpiradas(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= NOW()").Delete(&model.Sesion{})
	return res.RowsAffected, res.Error
}
