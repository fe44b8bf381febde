package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pos/internal/application/auth"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/gestion-pos/pkg/jwt"
)

const authTestSecret = "secret-de-test-para-auth"

func nuevoAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewUsuarioRepository(), auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     "gestion-pos-test",
	})
}

func TestRegister_CreaUsuarioConRolPorDefecto(t *testing.T) {
	uc := nuevoAuthUC()

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RolVendedor, resp.Rol, "sin rol explícito el usuario queda vendedor")
	assert.Equal(t, "ana@example.com", resp.Nombre, "sin nombre se usa el email")
	assert.True(t, resp.Activo)
}

func TestRegister_EmailRepetido_Rechazado(t *testing.T) {
	uc := nuevoAuthUC()
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "otra-clave-99"})
	assert.ErrorIs(t, err, domain.ErrEmailYaRegistrado)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc := nuevoAuthUC()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "admin@example.com", Password: "password123", Rol: entity.RolAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, rol, err := pkgjwt.Parse(authTestSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Usuario.ID, userID)
	assert.Equal(t, entity.RolAdmin, rol)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	uc := nuevoAuthUC()
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_NotFound(t *testing.T) {
	uc := nuevoAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}
