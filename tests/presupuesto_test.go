package tests

import (
	"context"
	"errors"
	"testing"

	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"
	"obranza/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory PresupuestoRepository ───────────────────────────────────────────

type memPresupuestoRepo struct {
	presupuestos map[uuid.UUID]*model.Presupuesto
}

func newMemPresupuestoRepo() *memPresupuestoRepo {
	return &memPresupuestoRepo{presupuestos: make(map[uuid.UUID]*model.Presupuesto)}
}

func (r *memPresupuestoRepo) Create(_ context.Context, p *model.Presupuesto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PresupuestoID = p.ID
	}
	r.presupuestos[p.ID] = p
	return nil
}

func (r *memPresupuestoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Presupuesto, error) {
	p, ok := r.presupuestos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	cp.Items = append([]model.PresupuestoItem(nil), p.Items...)
	return &cp, nil
}

func (r *memPresupuestoRepo) List(_ context.Context, clienteID *uuid.UUID) ([]model.Presupuesto, error) {
	var out []model.Presupuesto
	for _, p := range r.presupuestos {
		if clienteID != nil && p.ClienteID != *clienteID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memPresupuestoRepo) ReplaceConItems(_ context.Context, p *model.Presupuesto, items []model.PresupuestoItem) error {
	if _, ok := r.presupuestos[p.ID]; !ok {
		return errors.New("not found")
	}
	for i := range items {
		items[i].ID = uuid.New() // ids regenerate on reinsert
		items[i].PresupuestoID = p.ID
	}
	cp := *p
	cp.Items = items
	r.presupuestos[p.ID] = &cp
	return nil
}

func (r *memPresupuestoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	p, ok := r.presupuestos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Estado = estado
	return nil
}

func (r *memPresupuestoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.presupuestos, id)
	return nil
}

var _ repository.PresupuestoRepository = (*memPresupuestoRepo)(nil)

func newPresupuestoFixture(t *testing.T) (service.PresupuestoService, *memPresupuestoRepo, uuid.UUID) {
	t.Helper()
	repo := newMemPresupuestoRepo()
	clientes := newMemClienteRepo()
	cliente := &model.Cliente{Nombre: "Fernández"}
	require.NoError(t, clientes.Create(context.Background(), cliente))
	return service.NewPresupuestoService(repo, clientes), repo, cliente.ID
}

func items(subtotales ...int64) []dto.PresupuestoItemRequest {
	out := make([]dto.PresupuestoItemRequest, len(subtotales))
	for i, s := range subtotales {
		out[i] = dto.PresupuestoItemRequest{
			Descripcion: "Item",
			Subtotal:    decimal.NewFromInt(s),
		}
	}
	return out
}

// ── Totales ───────────────────────────────────────────────────────────────────

func TestCalcularTotalesSinOverride(t *testing.T) {
	total, costo := service.CalcularTotales(items(100, 250), nil)
	assert.Equal(t, "350", total.String())
	assert.Equal(t, "350", costo.String())
}

func TestCalcularTotalesConOverride(t *testing.T) {
	override := decimal.NewFromInt(400)
	total, costo := service.CalcularTotales(items(100, 250), &override)
	assert.Equal(t, "400", total.String())
	// The cost total ignores the override
	assert.Equal(t, "350", costo.String())
}

func TestCrearPresupuestoArrancaEnBorrador(t *testing.T) {
	svc, _, clienteID := newPresupuestoFixture(t)

	resp, err := svc.Crear(context.Background(), dto.CrearPresupuestoRequest{
		ClienteID: clienteID.String(),
		Titulo:    "Reforma cocina",
		Items:     items(120000, 80000),
	})
	require.NoError(t, err)
	assert.Equal(t, "borrador", resp.Estado)
	assert.Equal(t, "200000", resp.Total.String())
	assert.Equal(t, "200000", resp.CostoTotal.String())
	assert.Len(t, resp.Items, 2)
	// Omitted quantity defaults to 1
	assert.Equal(t, "1", resp.Items[0].Cantidad.String())
}

func TestActualizarRegeneraIDsDeItems(t *testing.T) {
	svc, _, clienteID := newPresupuestoFixture(t)

	creado, err := svc.Crear(context.Background(), dto.CrearPresupuestoRequest{
		ClienteID: clienteID.String(),
		Titulo:    "Baño completo",
		Items:     items(50000),
	})
	require.NoError(t, err)
	idOriginal := creado.Items[0].ID

	actualizado, err := svc.Actualizar(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarPresupuestoRequest{
		Items: items(50000, 30000),
	})
	require.NoError(t, err)
	require.Len(t, actualizado.Items, 2)
	assert.Equal(t, "80000", actualizado.Total.String())
	for _, item := range actualizado.Items {
		assert.NotEqual(t, idOriginal, item.ID, "replaced items must get fresh ids")
	}
}

func TestActualizarSinItemsConservaElSet(t *testing.T) {
	svc, _, clienteID := newPresupuestoFixture(t)

	creado, err := svc.Crear(context.Background(), dto.CrearPresupuestoRequest{
		ClienteID: clienteID.String(),
		Titulo:    "Quincho",
		Items:     items(70000, 30000),
	})
	require.NoError(t, err)

	override := decimal.NewFromInt(125000)
	actualizado, err := svc.Actualizar(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarPresupuestoRequest{
		TotalOverride: &override,
	})
	require.NoError(t, err)
	assert.Len(t, actualizado.Items, 2)
	assert.Equal(t, "125000", actualizado.Total.String())
	assert.Equal(t, "100000", actualizado.CostoTotal.String())
}

func TestActualizarEstadoNoRecalcula(t *testing.T) {
	svc, repo, clienteID := newPresupuestoFixture(t)

	creado, err := svc.Crear(context.Background(), dto.CrearPresupuestoRequest{
		ClienteID: clienteID.String(),
		Titulo:    "Galpón",
		Items:     items(500000),
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	// Mutate the stored totals directly; a status change must not touch them
	repo.presupuestos[id].Total = decimal.NewFromInt(999)

	require.NoError(t, svc.ActualizarEstado(context.Background(), id, "aprobado"))

	p, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "aprobado", p.Estado)
	assert.Equal(t, "999", p.Total.String())
	assert.Len(t, p.Items, 1)
}

func TestCrearConClienteInexistente(t *testing.T) {
	svc, _, _ := newPresupuestoFixture(t)

	_, err := svc.Crear(context.Background(), dto.CrearPresupuestoRequest{
		ClienteID: uuid.NewString(),
		Titulo:    "Sin dueño",
		Items:     items(100),
	})
	assert.ErrorContains(t, err, "Cliente no encontrado")
}
