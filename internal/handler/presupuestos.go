package handler

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/config"
	"obranza/internal/dto"
	"obranza/internal/infra"
	"obranza/internal/repository"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PresupuestosHandler covers quotation CRUD, status changes and PDF export.
type PresupuestosHandler struct {
	svc  service.PresupuestoService
	repo repository.PresupuestoRepository
	cfg  *config.Config
}

func NewPresupuestosHandler(svc service.PresupuestoService, repo repository.PresupuestoRepository, cfg *config.Config) *PresupuestosHandler {
	return &PresupuestosHandler{svc: svc, repo: repo, cfg: cfg}
}

// Crear godoc
// @Summary  Crea un presupuesto con sus items
// @Tags     presupuestos
// @Accept   json
// @Produce  json
// @Param    presupuesto body dto.CrearPresupuestoRequest true "Presupuesto"
// @Success  201 {object} dto.PresupuestoResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/presupuestos [post]
func (h *PresupuestosHandler) Crear(c *gin.Context) {
	var req dto.CrearPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PresupuestosHandler) Listar(c *gin.Context) {
	var clienteID *uuid.UUID
	if raw := c.Query("cliente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
			return
		}
		clienteID = &id
	}
	list, err := h.svc.Listar(c.Request.Context(), clienteID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presupuestos": list})
}

func (h *PresupuestosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado changes only the status; totals are left untouched.
func (h *PresupuestosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EstadoPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Estado actualizado"})
}

func (h *PresupuestosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportarPDF renders the quotation to PDF and streams it back as a download.
func (h *PresupuestosHandler) ExportarPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Presupuesto no encontrado"))
		return
	}
	path, err := infra.GeneratePresupuestoPDF(p, h.cfg.PDFStoragePath)
	if err != nil {
		log.Error().Err(err).Str("presupuesto_id", p.ID.String()).Msg("error generando PDF")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el PDF"))
		return
	}
	c.FileAttachment(path, "presupuesto_"+p.ID.String()+".pdf")
}
