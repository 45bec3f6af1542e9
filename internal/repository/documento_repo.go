package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentoRepository interface {
	Create(ctx context.Context, d *model.Documento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error)
	List(ctx context.Context, proyectoID, clienteID *uuid.UUID) ([]model.Documento, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentoRepo struct{ db *gorm.DB }

func NewDocumentoRepository(db *gorm.DB) DocumentoRepository { return &documentoRepo{db: db} }

func (r *documentoRepo) Create(ctx context.Context, d *model.Documento) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Documento, error) {
	var d model.Documento
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *documentoRepo) List(ctx context.Context, proyectoID, clienteID *uuid.UUID) ([]model.Documento, error) {
	var docs []model.Documento
	q := r.db.WithContext(ctx)
	if proyectoID != nil {
		q = q.Where("proyecto_id = ?", *proyectoID)
	}
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	err := q.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Documento{}, "id = ?", id).Error
}
