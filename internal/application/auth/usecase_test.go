package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/testutil/memstore"
)

func newUseCase(t *testing.T, s *memstore.Store) *AuthUseCase {
	return NewAuthUseCase(s.Users(), newSigner(t)).WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterYLogin(t *testing.T) {
	s := memstore.New()
	uc := newUseCase(t, s)

	reg, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Ana", Surname: "Pérez", Email: "  Ana@Test.com ", Password: "secreto1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ana@test.com", reg.User.Email)

	claims, err := newSigner(t).Parse(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	s := memstore.New()
	s.AddUser("Ana", "ana@test.com", "x")
	uc := newUseCase(t, s)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Otra", Surname: "X", Email: "ANA@test.com", Password: "secreto1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := memstore.New()
	hash, err := HashPassword("correcta", bcrypt.MinCost)
	require.NoError(t, err)
	s.AddUser("Ana", "ana@test.com", hash)
	uc := newUseCase(t, s)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@test.com", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc := newUseCase(t, memstore.New())
	p := &entity.Principal{
		User:    entity.User{ID: 3, Name: "Ana", Email: "ana@test.com"},
		Profile: entity.AuthorizationProfile{IsSystemAdmin: true},
	}
	out := uc.Me(p)
	assert.Equal(t, entity.ID(3), out.ID)
	assert.True(t, out.IsSystemAdmin)
}
