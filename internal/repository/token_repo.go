package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository persists the single-use verification and reset tokens.
// Marking a token used flips the flag permanently; there is no un-use.
type TokenRepository interface {
	CreateVerificacion(ctx context.Context, t *model.TokenVerificacion) error
	FindVerificacion(ctx context.Context, token string) (*model.TokenVerificacion, error)
	MarcarVerificacionUsado(ctx context.Context, tx *gorm.DB, token string) error

	CreateReset(ctx context.Context, tx *gorm.DB, t *model.TokenReset) error
	FindReset(ctx context.Context, token string) (*model.TokenReset, error)
	MarcarResetUsado(ctx context.Context, tx *gorm.DB, token string) error
	// InvalidarResetsPendientes marks every unused reset token of the user as
	// used, so only the most recently issued one can complete a reset.
	InvalidarResetsPendientes(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) error
}

type tokenRepo struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) TokenRepository { return &tokenRepo{db: db} }

func (r *tokenRepo) CreateVerificacion(ctx context.Context, t *model.TokenVerificacion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tokenRepo) FindVerificacion(ctx context.Context, token string) (*model.TokenVerificacion, error) {
	var t model.TokenVerificacion
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	return &t, err
}

func (r *tokenRepo) MarcarVerificacionUsado(ctx context.Context, tx *gorm.DB, token string) error {
	return tx.WithContext(ctx).Model(&model.TokenVerificacion{}).
		Where("token = ?", token).Update("usado", true).Error
}

func (r *tokenRepo) CreateReset(ctx context.Context, tx *gorm.DB, t *model.TokenReset) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *tokenRepo) FindReset(ctx context.Context, token string) (*model.TokenReset, error) {
	var t model.TokenReset
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	return &t, err
}

func (r *tokenRepo) MarcarResetUsado(ctx context.Context, tx *gorm.DB, token string) error {
	return tx.WithContext(ctx).Model(&model.TokenReset{}).
		Where("token = ?", token).Update("usado", true).Error
}

func (r *tokenRepo) InvalidarResetsPendientes(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.TokenReset{}).
		Where("usuario_id = ? AND usado = false", usuarioID).Update("usado", true).Error
}
