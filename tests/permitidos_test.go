package tests

import (
	"context"
	"testing"

	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgregarPermitidoNormalizaEmail(t *testing.T) {
	repo := newStubPermitidoRepo()
	svc := service.NewPermitidoService(repo)

	resp, err := svc.Agregar(context.Background(), dto.AgregarEmailPermitidoRequest{
		Email: "  Nuevo@Test.COM ", Rol: "viewer",
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@test.com", resp.Email)
	assert.Equal(t, "viewer", resp.Rol)
}

func TestAgregarPermitidoRolDesconocidoCaeAUser(t *testing.T) {
	repo := newStubPermitidoRepo()
	svc := service.NewPermitidoService(repo)

	resp, err := svc.Agregar(context.Background(), dto.AgregarEmailPermitidoRequest{
		Email: "raro@test.com", Rol: "superadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", resp.Rol)
}

func TestAgregarPermitidoDuplicado(t *testing.T) {
	repo := newStubPermitidoRepo()
	svc := service.NewPermitidoService(repo)

	_, err := svc.Agregar(context.Background(), dto.AgregarEmailPermitidoRequest{Email: "dup@test.com"})
	require.NoError(t, err)
	_, err = svc.Agregar(context.Background(), dto.AgregarEmailPermitidoRequest{Email: "DUP@test.com"})
	assert.ErrorContains(t, err, "ya está en la lista")
}

func TestEliminarPropioEmailRechazado(t *testing.T) {
	repo := newStubPermitidoRepo()
	svc := service.NewPermitidoService(repo)

	entrada := &model.EmailPermitido{Email: "admin@test.com", Rol: model.RolAdmin}
	require.NoError(t, repo.Create(context.Background(), entrada))

	err := svc.Eliminar(context.Background(), entrada.ID, "Admin@Test.com")
	assert.ErrorContains(t, err, "propio email")

	// A different admin can remove it
	require.NoError(t, svc.Eliminar(context.Background(), entrada.ID, "otra@test.com"))
}

func TestEliminarPermitidoInexistente(t *testing.T) {
	svc := service.NewPermitidoService(newStubPermitidoRepo())
	err := svc.Eliminar(context.Background(), uuid.New(), "admin@test.com")
	assert.ErrorContains(t, err, "no encontrado")
}
