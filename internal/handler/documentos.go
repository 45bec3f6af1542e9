package handler

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentosHandler covers attachment upload, listing and deletion.
type DocumentosHandler struct {
	svc service.DocumentoService
}

func NewDocumentosHandler(svc service.DocumentoService) *DocumentosHandler {
	return &DocumentosHandler{svc: svc}
}

const maxDocumentoSize = 20 << 20 // 20 MiB

// Subir receives a multipart upload plus optional proyecto_id / cliente_id
// form fields linking the document to its owner.
func (h *DocumentosHandler) Subir(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentoSize)

	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo (campo 'archivo')"))
		return
	}
	proyectoID, err := parseOptionalForm(c, "proyecto_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("proyecto_id inválido"))
		return
	}
	clienteID, err := parseOptionalForm(c, "cliente_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondErr(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.svc.Subir(c.Request.Context(), fileHeader.Filename, file, contentType, proyectoID, clienteID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DocumentosHandler) Listar(c *gin.Context) {
	proyectoID, err := parseOptionalQuery(c, "proyecto_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("proyecto_id inválido"))
		return
	}
	clienteID, err := parseOptionalQuery(c, "cliente_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
		return
	}
	docs, err := h.svc.Listar(c.Request.Context(), proyectoID, clienteID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documentos": docs})
}

func (h *DocumentosHandler) Eliminar(c *gin.Context) {
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

func parseOptionalForm(c *gin.Context, field string) (*uuid.UUID, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalQuery(c *gin.Context, field string) (*uuid.UUID, error) {
	raw := c.Query(field)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
