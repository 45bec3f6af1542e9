package service

import (
	"context"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PresupuestoService owns quotation totals. The cost total is always the sum
// of item subtotals; the total equals that sum unless the caller supplies an
// override. The engine does no margin math of its own.
type PresupuestoService interface {
	Crear(ctx context.Context, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error)
	Listar(ctx context.Context, clienteID *uuid.UUID) ([]dto.PresupuestoResponse, error)
	// Actualizar fully replaces the item set and recomputes totals.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error)
	// ActualizarEstado mutates only the status and skips recomputation.
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type presupuestoService struct {
	repo     repository.PresupuestoRepository
	clientes repository.ClienteRepository
}

func NewPresupuestoService(repo repository.PresupuestoRepository, clientes repository.ClienteRepository) PresupuestoService {
	return &presupuestoService{repo: repo, clientes: clientes}
}

// CalcularTotales returns (total, costoTotal) for a set of items and an
// optional override. costoTotal uses the raw item sum regardless of override.
func CalcularTotales(items []dto.PresupuestoItemRequest, override *decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	suma := decimal.Zero
	for _, item := range items {
		suma = suma.Add(item.Subtotal)
	}
	total := suma
	if override != nil {
		total = *override
	}
	return total, suma
}

func (s *presupuestoService) Crear(ctx context.Context, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.BadRequest("cliente_id inválido")
	}
	if _, err := s.clientes.FindByID(ctx, clienteID); err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	proyectoID, err := parseOptionalUUID(req.ProyectoID)
	if err != nil {
		return nil, apierror.BadRequest("proyecto_id inválido")
	}

	total, costoTotal := CalcularTotales(req.Items, req.TotalOverride)

	p := &model.Presupuesto{
		ClienteID:   clienteID,
		ProyectoID:  proyectoID,
		Titulo:      req.Titulo,
		Estado:      "borrador",
		Total:       total,
		CostoTotal:  costoTotal,
		Observacion: req.Observacion,
		Items:       itemsFromRequest(req.Items),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := presupuestoToResponse(p)
	return &resp, nil
}

func (s *presupuestoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Presupuesto no encontrado")
	}
	resp := presupuestoToResponse(p)
	return &resp, nil
}

func (s *presupuestoService) Listar(ctx context.Context, clienteID *uuid.UUID) ([]dto.PresupuestoResponse, error) {
	list, err := s.repo.List(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PresupuestoResponse, len(list))
	for i := range list {
		resp[i] = presupuestoToResponse(&list[i])
	}
	return resp, nil
}

func (s *presupuestoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Presupuesto no encontrado")
	}
	if req.Titulo != "" {
		p.Titulo = req.Titulo
	}
	if req.Observacion != nil {
		p.Observacion = req.Observacion
	}

	items := req.Items
	if items == nil {
		// Item-less update: keep the current set, still allow an override.
		items = itemsToRequest(p.Items)
	}
	p.Total, p.CostoTotal = CalcularTotales(items, req.TotalOverride)

	if err := s.repo.ReplaceConItems(ctx, p, itemsFromRequest(items)); err != nil {
		return nil, err
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := presupuestoToResponse(actualizado)
	return &resp, nil
}

func (s *presupuestoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Presupuesto no encontrado")
	}
	return s.repo.UpdateEstado(ctx, id, estado)
}

func (s *presupuestoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Presupuesto no encontrado")
	}
	return s.repo.Delete(ctx, id)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func itemsFromRequest(items []dto.PresupuestoItemRequest) []model.PresupuestoItem {
	out := make([]model.PresupuestoItem, len(items))
	for i, item := range items {
		cantidad := item.Cantidad
		if cantidad.IsZero() {
			cantidad = decimal.NewFromInt(1)
		}
		out[i] = model.PresupuestoItem{
			Descripcion: item.Descripcion,
			Cantidad:    cantidad,
			Subtotal:    item.Subtotal,
		}
	}
	return out
}

func itemsToRequest(items []model.PresupuestoItem) []dto.PresupuestoItemRequest {
	out := make([]dto.PresupuestoItemRequest, len(items))
	for i, item := range items {
		out[i] = dto.PresupuestoItemRequest{
			Descripcion: item.Descripcion,
			Cantidad:    item.Cantidad,
			Subtotal:    item.Subtotal,
		}
	}
	return out
}

func presupuestoToResponse(p *model.Presupuesto) dto.PresupuestoResponse {
	resp := dto.PresupuestoResponse{
		ID:          p.ID.String(),
		ClienteID:   p.ClienteID.String(),
		Titulo:      p.Titulo,
		Estado:      p.Estado,
		Total:       p.Total,
		CostoTotal:  p.CostoTotal,
		Observacion: p.Observacion,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.ProyectoID != nil {
		id := p.ProyectoID.String()
		resp.ProyectoID = &id
	}
	resp.Items = make([]dto.PresupuestoItemResponse, len(p.Items))
	for i, item := range p.Items {
		resp.Items[i] = dto.PresupuestoItemResponse{
			ID:          item.ID.String(),
			Descripcion: item.Descripcion,
			Cantidad:    item.Cantidad,
			Subtotal:    item.Subtotal,
		}
	}
	return resp
}
