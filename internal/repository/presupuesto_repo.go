package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresupuestoRepository interface {
	Create(ctx context.Context, p *model.Presupuesto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error)
	List(ctx context.Context, clienteID *uuid.UUID) ([]model.Presupuesto, error)
	// ReplaceConItems saves the header and swaps the entire item set
	// (delete-all then reinsert) inside one transaction.
	ReplaceConItems(ctx context.Context, p *model.Presupuesto, items []model.PresupuestoItem) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository {
	return &presupuestoRepo{db: db}
}

func (r *presupuestoRepo) Create(ctx context.Context, p *model.Presupuesto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *presupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	var p model.Presupuesto
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Items").First(&p, id).Error
	return &p, err
}

func (r *presupuestoRepo) List(ctx context.Context, clienteID *uuid.UUID) ([]model.Presupuesto, error) {
	var list []model.Presupuesto
	q := r.db.WithContext(ctx).Preload("Cliente").Preload("Items")
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *presupuestoRepo) ReplaceConItems(ctx context.Context, p *model.Presupuesto, items []model.PresupuestoItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Cliente").Save(p).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.PresupuestoItem{}, "presupuesto_id = ?", p.ID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.Nil // ids regenerate on reinsert
			items[i].PresupuestoID = p.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *presupuestoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Presupuesto{}).
		Where("id = ?", id).Update("estado", estado).Error
}

func (r *presupuestoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Presupuesto{}, "id = ?", id).Error
}
