package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo tabla de referencia rol.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Role, error) {
	var role entity.Role
	if err := r.q.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// GetByID rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT id, nombre FROM rol WHERE id = $1`, id)
}

// GetByName rol por nombre exacto.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT id, nombre FROM rol WHERE nombre = $1`, name)
}

// ListByIDs roles existentes entre los ids dados.
func (r *RoleRepo) ListByIDs(ctx context.Context, ids []entity.ID) ([]*entity.Role, error) {
	return r.list(ctx, `SELECT id, nombre FROM rol WHERE id = ANY($1) ORDER BY id`, ids)
}

// List todos los roles.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	return r.list(ctx, `SELECT id, nombre FROM rol ORDER BY id`)
}

func (r *RoleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, &role)
	}
	return out, rows.Err()
}
