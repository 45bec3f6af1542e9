package handler

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProyectosHandler covers project CRUD, the rubro breakdown, the per-project
// cash ledger and installment collection.
type ProyectosHandler struct {
	repo   repository.ProyectoRepository
	caja   service.CajaService
	cuenta service.CuentaService
}

func NewProyectosHandler(repo repository.ProyectoRepository, caja service.CajaService, cuenta service.CuentaService) *ProyectosHandler {
	return &ProyectosHandler{repo: repo, caja: caja, cuenta: cuenta}
}

func (h *ProyectosHandler) Crear(c *gin.Context) {
	var req dto.ProyectoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
		return
	}
	estado := req.Estado
	if estado == "" {
		estado = "presupuestado"
	}
	proyecto := &model.Proyecto{
		Nombre:      req.Nombre,
		ClienteID:   clienteID,
		Estado:      estado,
		Direccion:   req.Direccion,
		Descripcion: req.Descripcion,
		Rubros:      rubrosFromRequest(req.Rubros),
	}
	if err := h.repo.Create(c.Request.Context(), proyecto); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"proyecto": proyectoToResponse(proyecto)})
}

func (h *ProyectosHandler) Listar(c *gin.Context) {
	var clienteID *uuid.UUID
	if raw := c.Query("cliente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
			return
		}
		clienteID = &id
	}
	proyectos, err := h.repo.List(c.Request.Context(), clienteID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]dto.ProyectoResponse, len(proyectos))
	for i := range proyectos {
		resp[i] = proyectoToResponse(&proyectos[i])
	}
	c.JSON(http.StatusOK, gin.H{"proyectos": resp})
}

func (h *ProyectosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	proyecto, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Proyecto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyectoToResponse(proyecto)})
}

// Actualizar updates header fields and, when rubros come in the payload,
// replaces the full rubro set.
func (h *ProyectosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	proyecto, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Proyecto no encontrado"))
		return
	}
	var req dto.ProyectoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
		return
	}

	proyecto.Nombre = req.Nombre
	proyecto.ClienteID = clienteID
	proyecto.Direccion = req.Direccion
	proyecto.Descripcion = req.Descripcion
	if req.Estado != "" {
		proyecto.Estado = req.Estado
	}
	if err := h.repo.Update(c.Request.Context(), proyecto); err != nil {
		respondErr(c, err)
		return
	}
	if req.Rubros != nil {
		if err := h.repo.ReplaceRubros(c.Request.Context(), proyecto.ID, rubrosFromRequest(req.Rubros)); err != nil {
			respondErr(c, err)
			return
		}
	}
	proyecto, err = h.repo.FindByID(c.Request.Context(), proyecto.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proyecto": proyectoToResponse(proyecto)})
}

func (h *ProyectosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Proyecto no encontrado"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Caja y cuotas ────────────────────────────────────────────────────────────

// Caja returns the project ledger with its computed saldo.
func (h *ProyectosHandler) Caja(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Proyecto no encontrado"))
		return
	}
	resp, err := h.caja.CajaProyecto(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CobrarCuota records an installment payment against the project.
func (h *ProyectosHandler) CobrarCuota(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Proyecto no encontrado"))
		return
	}
	var req dto.CobrarCuotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuenta.CobrarCuota(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func rubrosFromRequest(reqs []dto.RubroRequest) []model.Rubro {
	rubros := make([]model.Rubro, len(reqs))
	for i, r := range reqs {
		rubros[i] = model.Rubro{
			Nombre:          r.Nombre,
			CostoMateriales: r.CostoMateriales,
			CostoManoObra:   r.CostoManoObra,
		}
	}
	return rubros
}

func proyectoToResponse(p *model.Proyecto) dto.ProyectoResponse {
	resp := dto.ProyectoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		ClienteID:   p.ClienteID.String(),
		Estado:      p.Estado,
		Direccion:   p.Direccion,
		Descripcion: p.Descripcion,
		Rubros:      make([]dto.RubroResponse, len(p.Rubros)),
	}
	if p.Cliente != nil {
		nombre := p.Cliente.Nombre
		resp.Cliente = &nombre
	}
	for i, r := range p.Rubros {
		resp.Rubros[i] = dto.RubroResponse{
			ID:              r.ID.String(),
			Nombre:          r.Nombre,
			CostoMateriales: r.CostoMateriales,
			CostoManoObra:   r.CostoManoObra,
		}
	}
	return resp
}
