package handler

import (
	"net/http"
	"strconv"

	"obranza/internal/dto"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
)

// CajaHandler covers the general cash ledger: movements, balance and
// transfers into project ledgers.
type CajaHandler struct {
	svc service.CajaService
}

func NewCajaHandler(svc service.CajaService) *CajaHandler {
	return &CajaHandler{svc: svc}
}

// RegistrarMovimiento godoc
// @Summary  Registra un ingreso o egreso en la caja general
// @Tags     caja
// @Accept   json
// @Produce  json
// @Param    movimiento body dto.MovimientoCajaRequest true "Movimiento"
// @Success  201 {object} dto.MovimientoCajaResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/caja/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CajaHandler) ListMovimientos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.MovimientoFilter{
		Tipo:       c.Query("tipo"),
		MetodoPago: c.Query("metodo_pago"),
		Desde:      c.Query("desde"),
		Hasta:      c.Query("hasta"),
		Page:       page,
		Limit:      limit,
	}
	movs, total, err := h.svc.ListMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movimientos": movs,
		"total":       total,
		"page":        filter.Page,
	})
}

// Saldo returns the balance per payment method plus the grand total,
// always computed from the movement rows.
func (h *CajaHandler) Saldo(c *gin.Context) {
	resp, err := h.svc.Saldo(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajaHandler) Transferir(c *gin.Context) {
	var req dto.TransferenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transferir(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
