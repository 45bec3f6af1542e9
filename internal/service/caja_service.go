package service

import (
	"context"
	"time"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService runs the general cash ledger, the per-project ledgers and the
// transfer between them. Every event that by design lands in two ledgers is
// written inside a single transaction: a primary row without its mirror is a
// correctness bug, so a failed mirror write rolls back the primary.
type CajaService interface {
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error)
	ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]dto.MovimientoCajaResponse, int64, error)
	Saldo(ctx context.Context) (*dto.SaldoCajaResponse, error)

	// Transferir moves funds from general cash into a project: an egreso in
	// the general ledger mirrored by a transferencia_in in the project ledger,
	// linked by the egreso row's id and carrying the same amount.
	Transferir(ctx context.Context, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error)
	CajaProyecto(ctx context.Context, proyectoID uuid.UUID) (*dto.CajaProyectoResponse, error)
}

type cajaService struct {
	repo      repository.CajaRepository
	proyectos repository.ProyectoRepository
}

func NewCajaService(repo repository.CajaRepository, proyectos repository.ProyectoRepository) CajaService {
	return &cajaService{repo: repo, proyectos: proyectos}
}

// ── Movimiento simple ─────────────────────────────────────────────────────────

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	mov := &model.MovimientoCaja{
		Tipo:       req.Tipo,
		Monto:      req.Monto,
		MetodoPago: req.MetodoPago,
		Concepto:   req.Concepto,
		Categoria:  req.Categoria,
		Fecha:      parseFecha(req.Fecha),
	}
	var err error
	if mov.ClienteID, err = parseOptionalUUID(req.ClienteID); err != nil {
		return nil, apierror.BadRequest("cliente_id inválido")
	}
	if mov.ProyectoID, err = parseOptionalUUID(req.ProyectoID); err != nil {
		return nil, apierror.BadRequest("proyecto_id inválido")
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateMovimiento(ctx, tx, mov)
	})
	if err != nil {
		return nil, err
	}
	resp := movimientoCajaToResponse(mov)
	return &resp, nil
}

func (s *cajaService) ListMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]dto.MovimientoCajaResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 50
	}
	movs, total, err := s.repo.ListMovimientos(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.MovimientoCajaResponse, len(movs))
	for i := range movs {
		resp[i] = movimientoCajaToResponse(&movs[i])
	}
	return resp, total, nil
}

func (s *cajaService) Saldo(ctx context.Context) (*dto.SaldoCajaResponse, error) {
	porMetodo, err := s.repo.SaldoPorMetodo(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, saldo := range porMetodo {
		total = total.Add(saldo)
	}
	return &dto.SaldoCajaResponse{PorMetodo: porMetodo, Total: total}, nil
}

// ── Transferencia a proyecto ──────────────────────────────────────────────────

func (s *cajaService) Transferir(ctx context.Context, req dto.TransferenciaRequest) (*dto.TransferenciaResponse, error) {
	proyectoID, err := uuid.Parse(req.ProyectoID)
	if err != nil {
		return nil, apierror.BadRequest("proyecto_id inválido")
	}
	proyecto, err := s.proyectos.FindByID(ctx, proyectoID)
	if err != nil {
		return nil, apierror.NotFound("Proyecto no encontrado")
	}

	concepto := req.Concepto
	if concepto == "" {
		concepto = "Transferencia a proyecto"
	}
	ahora := time.Now()

	egreso := &model.MovimientoCaja{
		Tipo:       "egreso",
		Monto:      req.Monto,
		MetodoPago: req.MetodoPago,
		Concepto:   concepto,
		ProyectoID: &proyecto.ID,
		Fecha:      ahora,
	}
	var espejo *model.MovimientoCajaProyecto

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimiento(ctx, tx, egreso); err != nil {
			return err
		}
		espejo = &model.MovimientoCajaProyecto{
			ProyectoID:             proyecto.ID,
			Tipo:                   "transferencia_in",
			Monto:                  req.Monto,
			Concepto:               concepto,
			MovimientoCajaOrigenID: &egreso.ID,
			Fecha:                  ahora,
		}
		return s.repo.CreateMovimientoProyecto(ctx, tx, espejo)
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransferenciaResponse{
		Egreso:          movimientoCajaToResponse(egreso),
		TransferenciaIn: movimientoProyectoToResponse(espejo),
	}, nil
}

func (s *cajaService) CajaProyecto(ctx context.Context, proyectoID uuid.UUID) (*dto.CajaProyectoResponse, error) {
	movs, err := s.repo.ListMovimientosProyecto(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	saldo, err := s.repo.SaldoProyecto(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CajaProyectoResponse{Saldo: saldo}
	resp.Movimientos = make([]dto.MovimientoProyectoResponse, len(movs))
	for i := range movs {
		resp.Movimientos[i] = movimientoProyectoToResponse(&movs[i])
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parseFecha(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Now()
	}
	return t
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func movimientoCajaToResponse(m *model.MovimientoCaja) dto.MovimientoCajaResponse {
	resp := dto.MovimientoCajaResponse{
		ID:         m.ID.String(),
		Tipo:       m.Tipo,
		Monto:      m.Monto,
		MetodoPago: m.MetodoPago,
		Concepto:   m.Concepto,
		Categoria:  m.Categoria,
		Fecha:      m.Fecha.Format("2006-01-02"),
	}
	if m.ClienteID != nil {
		id := m.ClienteID.String()
		resp.ClienteID = &id
	}
	if m.ProyectoID != nil {
		id := m.ProyectoID.String()
		resp.ProyectoID = &id
	}
	return resp
}

func movimientoProyectoToResponse(m *model.MovimientoCajaProyecto) dto.MovimientoProyectoResponse {
	resp := dto.MovimientoProyectoResponse{
		ID:         m.ID.String(),
		ProyectoID: m.ProyectoID.String(),
		Tipo:       m.Tipo,
		Monto:      m.Monto,
		Concepto:   m.Concepto,
		Fecha:      m.Fecha.Format("2006-01-02"),
	}
	if m.MovimientoCajaOrigenID != nil {
		id := m.MovimientoCajaOrigenID.String()
		resp.MovimientoCajaOrigenID = &id
	}
	return resp
}
