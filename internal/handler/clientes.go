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

// ClientesHandler covers client CRUD and the client running account.
type ClientesHandler struct {
	repo   repository.ClienteRepository
	cuenta service.CuentaService
}

func NewClientesHandler(repo repository.ClienteRepository, cuenta service.CuentaService) *ClientesHandler {
	return &ClientesHandler{repo: repo, cuenta: cuenta}
}

func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente := &model.Cliente{
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Notas:     req.Notas,
	}
	if err := h.repo.Create(c.Request.Context(), cliente); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cliente": clienteToResponse(cliente)})
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	clientes, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = clienteToResponse(&clientes[i])
	}
	c.JSON(http.StatusOK, gin.H{"clientes": resp})
}

func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cliente, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cliente": clienteToResponse(cliente)})
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cliente, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente.Nombre = req.Nombre
	cliente.Email = req.Email
	cliente.Telefono = req.Telefono
	cliente.Direccion = req.Direccion
	cliente.Notas = req.Notas
	if err := h.repo.Update(c.Request.Context(), cliente); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cliente": clienteToResponse(cliente)})
}

func (h *ClientesHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Cuenta corriente ─────────────────────────────────────────────────────────

// Cuenta returns the movements and the computed saldo for a client.
func (h *ClientesHandler) Cuenta(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.cuenta.Estado(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cobro records a client payment, mirrored into general cash.
func (h *ClientesHandler) Cobro(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.MovimientoCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuenta.RegistrarCobro(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cargo posts a charge to the running account.
func (h *ClientesHandler) Cargo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.MovimientoCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cuenta.RegistrarCargo(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

func clienteToResponse(cl *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        cl.ID.String(),
		Nombre:    cl.Nombre,
		Email:     cl.Email,
		Telefono:  cl.Telefono,
		Direccion: cl.Direccion,
		Notas:     cl.Notas,
	}
}
