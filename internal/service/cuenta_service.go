package service

import (
	"context"
	"time"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CuentaService runs the per-client running accounts. A cobro is never written
// alone: the mirrored ingreso in the general cash ledger lands in the same
// transaction, with the same amount, or the whole operation fails.
type CuentaService interface {
	// RegistrarCobro records a client payment and mirrors it into general cash.
	RegistrarCobro(ctx context.Context, clienteID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.CobroResponse, error)
	// RegistrarCargo posts a charge; cargos touch only the running account.
	RegistrarCargo(ctx context.Context, clienteID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.MovimientoCuentaResponse, error)
	// CobrarCuota records an installment payment against a project: a cobro in
	// the client's account plus the mirrored ingreso, both carrying proyecto_id.
	CobrarCuota(ctx context.Context, proyectoID uuid.UUID, req dto.CobrarCuotaRequest) (*dto.CobroResponse, error)
	Estado(ctx context.Context, clienteID uuid.UUID) (*dto.CuentaCorrienteResponse, error)
}

type cuentaService struct {
	repo     repository.CuentaRepository
	caja     repository.CajaRepository
	clientes repository.ClienteRepository
}

func NewCuentaService(
	repo repository.CuentaRepository,
	caja repository.CajaRepository,
	clientes repository.ClienteRepository,
) CuentaService {
	return &cuentaService{repo: repo, caja: caja, clientes: clientes}
}

// ── Cobro ─────────────────────────────────────────────────────────────────────

func (s *cuentaService) RegistrarCobro(ctx context.Context, clienteID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.CobroResponse, error) {
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}

	proyectoID, err := parseOptionalUUID(req.ProyectoID)
	if err != nil {
		return nil, apierror.BadRequest("proyecto_id inválido")
	}

	concepto := req.Concepto
	if concepto == "" {
		concepto = "Cobro cuenta corriente"
	}
	metodo := req.MetodoPago
	if metodo == "" {
		metodo = "efectivo"
	}

	return s.registrarCobroEspejado(ctx, &model.MovimientoCuenta{
		ClienteID:  clienteID,
		Tipo:       "cobro",
		Monto:      req.Monto,
		Concepto:   concepto,
		ProyectoID: proyectoID,
		Fecha:      time.Now(),
	}, metodo)
}

func (s *cuentaService) RegistrarCargo(ctx context.Context, clienteID uuid.UUID, req dto.MovimientoCuentaRequest) (*dto.MovimientoCuentaResponse, error) {
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	proyectoID, err := parseOptionalUUID(req.ProyectoID)
	if err != nil {
		return nil, apierror.BadRequest("proyecto_id inválido")
	}
	concepto := req.Concepto
	if concepto == "" {
		concepto = "Cargo"
	}

	cargo := &model.MovimientoCuenta{
		ClienteID:  clienteID,
		Tipo:       "cargo",
		Monto:      req.Monto,
		Concepto:   concepto,
		ProyectoID: proyectoID,
		Fecha:      time.Now(),
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateMovimiento(ctx, tx, cargo)
	})
	if err != nil {
		return nil, err
	}
	resp := movimientoCuentaToResponse(cargo)
	return &resp, nil
}

// ── Cobrar cuota de proyecto ──────────────────────────────────────────────────

func (s *cuentaService) CobrarCuota(ctx context.Context, proyectoID uuid.UUID, req dto.CobrarCuotaRequest) (*dto.CobroResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.BadRequest("cliente_id inválido")
	}
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}

	concepto := req.Concepto
	if concepto == "" {
		concepto = "Cobro de cuota"
	}

	return s.registrarCobroEspejado(ctx, &model.MovimientoCuenta{
		ClienteID:  clienteID,
		Tipo:       "cobro",
		Monto:      req.Monto,
		Concepto:   concepto,
		ProyectoID: &proyectoID,
		Fecha:      time.Now(),
	}, req.MetodoPago)
}

// registrarCobroEspejado writes the cobro and its mirrored ingreso as one unit.
// The concept stays a short fixed tag; client and project stay as structured
// references so display formatting is the caller's problem, not ledger data.
func (s *cuentaService) registrarCobroEspejado(ctx context.Context, cobro *model.MovimientoCuenta, metodoPago string) (*dto.CobroResponse, error) {
	var ingreso *model.MovimientoCaja

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimiento(ctx, tx, cobro); err != nil {
			return err
		}
		ingreso = &model.MovimientoCaja{
			Tipo:       "ingreso",
			Monto:      cobro.Monto,
			MetodoPago: metodoPago,
			Concepto:   "Cobro CC: " + cobro.Concepto,
			ClienteID:  &cobro.ClienteID,
			ProyectoID: cobro.ProyectoID,
			Fecha:      cobro.Fecha,
		}
		return s.caja.CreateMovimiento(ctx, tx, ingreso)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CobroResponse{
		Cobro:   movimientoCuentaToResponse(cobro),
		Ingreso: movimientoCajaToResponse(ingreso),
	}, nil
}

func (s *cuentaService) Estado(ctx context.Context, clienteID uuid.UUID) (*dto.CuentaCorrienteResponse, error) {
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	movs, err := s.repo.ListPorCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	saldo, err := s.repo.SaldoCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CuentaCorrienteResponse{Saldo: saldo}
	resp.Movimientos = make([]dto.MovimientoCuentaResponse, len(movs))
	for i := range movs {
		resp.Movimientos[i] = movimientoCuentaToResponse(&movs[i])
	}
	return resp, nil
}

func movimientoCuentaToResponse(m *model.MovimientoCuenta) dto.MovimientoCuentaResponse {
	resp := dto.MovimientoCuentaResponse{
		ID:        m.ID.String(),
		ClienteID: m.ClienteID.String(),
		Tipo:      m.Tipo,
		Monto:     m.Monto,
		Concepto:  m.Concepto,
		Fecha:     m.Fecha.Format("2006-01-02"),
	}
	if m.ProyectoID != nil {
		id := m.ProyectoID.String()
		resp.ProyectoID = &id
	}
	return resp
}
