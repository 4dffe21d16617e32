package service_test

import (
	"context"
	"testing"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const segredoTeste = "segredo-de-teste"

func newAuthService(ur *stubUsuarioRepo) service.AuthService {
	return service.NewAuthService(ur, fixedClock(), segredoTeste, 8)
}

func TestLoginEmiteTokenComClaims(t *testing.T) {
	ur := newStubUsuarioRepo()
	svc := newAuthService(ur)

	u, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "aline",
		Nome:     "Aline Souza",
		Password: "senha-forte-123",
		Role:     "vendedora",
	})
	require.NoError(t, err)

	token, logado, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "aline", Password: "senha-forte-123",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logado.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(segredoTeste), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "vendedora", claims["role"])
}

func TestLoginSenhaErrada(t *testing.T) {
	ur := newStubUsuarioRepo()
	svc := newAuthService(ur)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "aline", Nome: "Aline Souza", Password: "senha-forte-123", Role: "vendedora",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), dto.LoginRequest{Username: "aline", Password: "outra"})
	require.ErrorIs(t, err, service.ErrCredenciaisInvalidas)
}

func TestLoginUsuarioDesconhecidoMesmoErro(t *testing.T) {
	svc := newAuthService(newStubUsuarioRepo())

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ninguem", Password: "x"})
	require.ErrorIs(t, err, service.ErrCredenciaisInvalidas)
}

func TestLoginUsuarioInativo(t *testing.T) {
	ur := newStubUsuarioRepo()
	svc := newAuthService(ur)

	u, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "aline", Nome: "Aline Souza", Password: "senha-forte-123", Role: "vendedora",
	})
	require.NoError(t, err)
	u.Ativo = false

	_, _, err = svc.Login(context.Background(), dto.LoginRequest{Username: "aline", Password: "senha-forte-123"})
	require.ErrorIs(t, err, service.ErrCredenciaisInvalidas)
}

func TestRegisterHasheiaSenha(t *testing.T) {
	ur := newStubUsuarioRepo()
	svc := newAuthService(ur)

	u, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "aline", Nome: "Aline Souza", Password: "senha-forte-123", Role: "vendedora",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "senha-forte-123", u.SenhaHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte("senha-forte-123")))
}

func TestRegisterUsernameDuplicado(t *testing.T) {
	ur := newStubUsuarioRepo()
	svc := newAuthService(ur)

	req := dto.RegisterRequest{
		Username: "aline", Nome: "Aline Souza", Password: "senha-forte-123", Role: "vendedora",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, service.ErrUsuarioJaExiste)
}
