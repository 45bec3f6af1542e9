package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/infra"
	"obranza/internal/model"
	"obranza/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DocumentoService stores attachments in the blob store and tracks them in the
// database. Blob deletion failures are logged and never block the row delete.
type DocumentoService interface {
	Subir(ctx context.Context, nombre string, body io.Reader, contentType string, proyectoID, clienteID *uuid.UUID) (*dto.DocumentoResponse, error)
	Listar(ctx context.Context, proyectoID, clienteID *uuid.UUID) ([]dto.DocumentoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type documentoService struct {
	repo    repository.DocumentoRepository
	storage infra.Storage
}

func NewDocumentoService(repo repository.DocumentoRepository, storage infra.Storage) DocumentoService {
	return &documentoService{repo: repo, storage: storage}
}

func (s *documentoService) Subir(ctx context.Context, nombre string, body io.Reader, contentType string, proyectoID, clienteID *uuid.UUID) (*dto.DocumentoResponse, error) {
	pathname := fmt.Sprintf("documentos/%d_%s", time.Now().UnixNano(), filepath.Base(nombre))

	url, err := s.storage.Put(ctx, pathname, body, contentType)
	if err != nil {
		log.Error().Err(err).Str("nombre", nombre).Msg("documento: fallo al subir al blob store")
		return nil, apierror.Internal()
	}

	doc := &model.Documento{
		Nombre:     nombre,
		URL:        url,
		Pathname:   pathname,
		ProyectoID: proyectoID,
		ClienteID:  clienteID,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		// Orphaned blob: best-effort cleanup, the row is the source of truth.
		if delErr := s.storage.Del(ctx, pathname); delErr != nil {
			log.Error().Err(delErr).Str("pathname", pathname).Msg("documento: limpieza de blob fallida")
		}
		return nil, err
	}

	resp := documentoToResponse(doc)
	return &resp, nil
}

func (s *documentoService) Listar(ctx context.Context, proyectoID, clienteID *uuid.UUID) ([]dto.DocumentoResponse, error) {
	docs, err := s.repo.List(ctx, proyectoID, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DocumentoResponse, len(docs))
	for i := range docs {
		resp[i] = documentoToResponse(&docs[i])
	}
	return resp, nil
}

func (s *documentoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Documento no encontrado")
	}
	if err := s.storage.Del(ctx, doc.Pathname); err != nil {
		log.Error().Err(err).Str("pathname", doc.Pathname).Msg("documento: fallo al borrar del blob store")
	}
	return s.repo.Delete(ctx, id)
}

func documentoToResponse(d *model.Documento) dto.DocumentoResponse {
	return dto.DocumentoResponse{
		ID:       d.ID.String(),
		Nombre:   d.Nombre,
		URL:      d.URL,
		Pathname: d.Pathname,
	}
}
