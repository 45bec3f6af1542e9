package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProyectoRepository interface {
	Create(ctx context.Context, p *model.Proyecto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proyecto, error)
	List(ctx context.Context, clienteID *uuid.UUID) ([]model.Proyecto, error)
	Update(ctx context.Context, p *model.Proyecto) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceRubros(ctx context.Context, proyectoID uuid.UUID, rubros []model.Rubro) error
}

type proyectoRepo struct{ db *gorm.DB }

func NewProyectoRepository(db *gorm.DB) ProyectoRepository { return &proyectoRepo{db: db} }

func (r *proyectoRepo) Create(ctx context.Context, p *model.Proyecto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proyectoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proyecto, error) {
	var p model.Proyecto
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Rubros").First(&p, id).Error
	return &p, err
}

func (r *proyectoRepo) List(ctx context.Context, clienteID *uuid.UUID) ([]model.Proyecto, error) {
	var proyectos []model.Proyecto
	q := r.db.WithContext(ctx).Preload("Cliente")
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	err := q.Order("created_at DESC").Find(&proyectos).Error
	return proyectos, err
}

func (r *proyectoRepo) Update(ctx context.Context, p *model.Proyecto) error {
	return r.db.WithContext(ctx).Omit("Rubros", "Cliente").Save(p).Error
}

func (r *proyectoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Proyecto{}, "id = ?", id).Error
}

// ReplaceRubros swaps the full set of budget line items in one transaction.
func (r *proyectoRepo) ReplaceRubros(ctx context.Context, proyectoID uuid.UUID, rubros []model.Rubro) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Rubro{}, "proyecto_id = ?", proyectoID).Error; err != nil {
			return err
		}
		for i := range rubros {
			rubros[i].ProyectoID = proyectoID
		}
		if len(rubros) == 0 {
			return nil
		}
		return tx.Create(&rubros).Error
	})
}
