package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
	"github.com/jhoicas/negocify-api/pkg/jwt"
)

// TokenVerifier verifica un token y devuelve sus claims (implementado por *jwt.Signer).
type TokenVerifier interface {
	Parse(token string) (*jwt.Claims, error)
}

// PermissionResolver calcula el perfil de autorización (implementado por *authz.Resolver).
type PermissionResolver interface {
	ResolvePermissions(ctx context.Context, userID entity.ID) (entity.AuthorizationProfile, error)
}

// Authenticator convierte la cabecera Authorization en un Principal:
// token → verificación → carga del usuario → perfil de permisos.
// Cada paso falla con un error distinto; no hay reintentos.
type Authenticator struct {
	tokens   TokenVerifier
	users    repository.UserRepository
	resolver PermissionResolver
	log      zerolog.Logger
}

// NewAuthenticator construye el gate.
func NewAuthenticator(tokens TokenVerifier, users repository.UserRepository, resolver PermissionResolver, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		tokens:   tokens,
		users:    users,
		resolver: resolver,
		log:      log,
	}
}

// BearerToken extrae el token de "Bearer <token>". Devuelve "" si la cabecera no tiene esa forma.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate valida la cabecera y devuelve el principal con el usuario sin hash.
//
// Errores: domain.ErrMissingToken, domain.ErrInvalidToken, domain.ErrExpiredToken,
// domain.ErrUserNotFound, domain.ErrPermissionResolution o domain.ErrInternal.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*entity.Principal, error) {
	raw := BearerToken(header)
	if raw == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrExpiredToken
		}
		a.log.Debug().Err(err).Msg("token rechazado")
		return nil, domain.ErrInvalidToken
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		a.log.Error().Err(err).Int64("user_id", claims.UserID).Msg("error cargando usuario del token")
		return nil, fmt.Errorf("%w: cargar usuario: %w", domain.ErrInternal, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	profile, err := a.resolver.ResolvePermissions(ctx, user.ID)
	if err != nil {
		a.log.Error().Err(err).Int64("user_id", user.ID).Msg("error resolviendo permisos")
		if !errors.Is(err, domain.ErrPermissionResolution) {
			err = fmt.Errorf("%w: %w", domain.ErrPermissionResolution, err)
		}
		return nil, err
	}

	return &entity.Principal{User: user.Sanitized(), Profile: profile}, nil
}
