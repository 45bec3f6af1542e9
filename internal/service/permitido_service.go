package service

import (
	"context"
	"strings"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/repository"

	"github.com/google/uuid"
)

// PermitidoService administers the registration allow-list.
type PermitidoService interface {
	Listar(ctx context.Context) ([]dto.EmailPermitidoResponse, error)
	Agregar(ctx context.Context, req dto.AgregarEmailPermitidoRequest) (*dto.EmailPermitidoResponse, error)
	// Eliminar rejects the attempt when the target email equals the caller's own.
	Eliminar(ctx context.Context, id uuid.UUID, actorEmail string) error
}

type permitidoService struct {
	repo repository.EmailPermitidoRepository
}

func NewPermitidoService(repo repository.EmailPermitidoRepository) PermitidoService {
	return &permitidoService{repo: repo}
}

func (s *permitidoService) Listar(ctx context.Context) ([]dto.EmailPermitidoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmailPermitidoResponse, len(list))
	for i, e := range list {
		resp[i] = permitidoToResponse(&e)
	}
	return resp, nil
}

func (s *permitidoService) Agregar(ctx context.Context, req dto.AgregarEmailPermitidoRequest) (*dto.EmailPermitidoResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("El email ya está en la lista")
	}

	e := &model.EmailPermitido{
		Email: email,
		Rol:   model.ParseRol(req.Rol),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := permitidoToResponse(e)
	return &resp, nil
}

func (s *permitidoService) Eliminar(ctx context.Context, id uuid.UUID, actorEmail string) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Email no encontrado en la lista")
	}
	if strings.EqualFold(e.Email, actorEmail) {
		return apierror.Forbidden("No podés eliminar tu propio email de la lista")
	}
	return s.repo.Delete(ctx, id)
}

func permitidoToResponse(e *model.EmailPermitido) dto.EmailPermitidoResponse {
	return dto.EmailPermitidoResponse{
		ID:    e.ID.String(),
		Email: e.Email,
		Rol:   string(e.Rol),
	}
}
