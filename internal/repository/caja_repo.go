package repository

import (
	"context"

	"obranza/internal/dto"
	"obranza/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaRepository covers the general cash ledger and the per-project ledgers.
// Movements are immutable once written; balances are never stored — they are
// summed on read over the signed amounts.
type CajaRepository interface {
	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoCaja, int64, error)
	SaldoPorMetodo(ctx context.Context) (map[string]decimal.Decimal, error)

	CreateMovimientoProyecto(ctx context.Context, tx *gorm.DB, m *model.MovimientoCajaProyecto) error
	ListMovimientosProyecto(ctx context.Context, proyectoID uuid.UUID) ([]model.MovimientoCajaProyecto, error)
	SaldoProyecto(ctx context.Context, proyectoID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoCaja, int64, error) {
	var movs []model.MovimientoCaja
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.MovimientoCaja{})
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", filter.MetodoPago)
	}
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error
	return movs, total, err
}

// SaldoPorMetodo computes SUM(ingreso) - SUM(egreso) grouped by payment method.
func (r *cajaRepo) SaldoPorMetodo(ctx context.Context) (map[string]decimal.Decimal, error) {
	type row struct {
		MetodoPago string
		Saldo      decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).
		Select("metodo_pago, COALESCE(SUM(CASE WHEN tipo = 'ingreso' THEN monto ELSE -monto END), 0) AS saldo").
		Group("metodo_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	saldos := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		saldos[r.MetodoPago] = r.Saldo
	}
	return saldos, nil
}

func (r *cajaRepo) CreateMovimientoProyecto(ctx context.Context, tx *gorm.DB, m *model.MovimientoCajaProyecto) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListMovimientosProyecto(ctx context.Context, proyectoID uuid.UUID) ([]model.MovimientoCajaProyecto, error) {
	var movs []model.MovimientoCajaProyecto
	err := r.db.WithContext(ctx).
		Where("proyecto_id = ?", proyectoID).
		Order("fecha DESC, created_at DESC").
		Find(&movs).Error
	return movs, err
}

// SaldoProyecto treats transferencia_in as an inflow alongside ingreso.
func (r *cajaRepo) SaldoProyecto(ctx context.Context, proyectoID uuid.UUID) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.MovimientoCajaProyecto{}).
		Select("COALESCE(SUM(CASE WHEN tipo = 'egreso' THEN -monto ELSE monto END), 0)").
		Where("proyecto_id = ?", proyectoID).
		Scan(&saldo).Error
	return saldo, err
}
