package handler

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/middleware"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermitidosHandler administers the registration allow-list (admin only).
type PermitidosHandler struct{ svc service.PermitidoService }

func NewPermitidosHandler(svc service.PermitidoService) *PermitidosHandler {
	return &PermitidosHandler{svc: svc}
}

func (h *PermitidosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": resp})
}

func (h *PermitidosHandler) Agregar(c *gin.Context) {
	var req dto.AgregarEmailPermitidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Eliminar rejects removing the caller's own allow-list entry.
func (h *PermitidosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	ident := middleware.GetIdentity(c)
	if err := h.svc.Eliminar(c.Request.Context(), id, ident.Usuario.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
