package repository

import (
	"context"

	"obranza/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CuentaRepository persists client running-account movements.
type CuentaRepository interface {
	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error
	ListPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuenta, error)
	SaldoCliente(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) DB() *gorm.DB { return r.db }

func (r *cuentaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cuentaRepo) ListPorCliente(ctx context.Context, clienteID uuid.UUID) ([]model.MovimientoCuenta, error) {
	var movs []model.MovimientoCuenta
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("fecha DESC, created_at DESC").
		Find(&movs).Error
	return movs, err
}

// SaldoCliente computes SUM(cobro) - SUM(cargo) on read.
func (r *cuentaRepo) SaldoCliente(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.MovimientoCuenta{}).
		Select("COALESCE(SUM(CASE WHEN tipo = 'cobro' THEN monto ELSE -monto END), 0)").
		Where("cliente_id = ?", clienteID).
		Scan(&saldo).Error
	return saldo, err
}
