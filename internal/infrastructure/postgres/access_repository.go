package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo usuario_rol_almacen y administradores_sistema sobre PostgreSQL.
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

// IsSystemAdmin indica si el usuario tiene la marca de administrador del sistema.
func (r *AccessRepo) IsSystemAdmin(ctx context.Context, userID entity.ID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM administradores_sistema WHERE usuario_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check system admin: %w", err)
	}
	return exists, nil
}

// ListAccessRows relaciones del usuario con LEFT JOIN a almacén y rol (NULL = relación colgante).
func (r *AccessRepo) ListAccessRows(ctx context.Context, userID entity.ID) ([]entity.AccessRow, error) {
	query := `
		SELECT ura.id, ura.almacen_id, a.nombre, a.direccion, ura.rol_id, ro.nombre
		FROM usuario_rol_almacen ura
		LEFT JOIN almacen a ON a.id = ura.almacen_id
		LEFT JOIN rol ro ON ro.id = ura.rol_id
		WHERE ura.usuario_id = $1
		ORDER BY a.nombre ASC NULLS LAST, ura.id ASC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list access rows: %w", err)
	}
	defer rows.Close()
	var out []entity.AccessRow
	for rows.Next() {
		var row entity.AccessRow
		if err := rows.Scan(&row.JoinID, &row.WarehouseID, &row.WarehouseName, &row.WarehouseAddress, &row.RoleID, &row.RoleName); err != nil {
			return nil, fmt.Errorf("scan access row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// HasRole indica si el usuario tiene roleID en algún almacén.
func (r *AccessRepo) HasRole(ctx context.Context, userID, roleID entity.ID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuario_rol_almacen WHERE usuario_id = $1 AND rol_id = $2)`,
		userID, roleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

// ReplaceForUser borra y recrea las relaciones del usuario. Llamar dentro de RunIdentity.
func (r *AccessRepo) ReplaceForUser(ctx context.Context, userID entity.ID, rows []entity.UserRoleWarehouse) error {
	if err := r.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		_, err := r.q.Exec(ctx,
			`INSERT INTO usuario_rol_almacen (usuario_id, almacen_id, rol_id) VALUES ($1, $2, $3)`,
			userID, row.WarehouseID, row.RoleID,
		)
		if err != nil {
			return mapAccessErr(err)
		}
	}
	return nil
}

func mapAccessErr(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: almacén o rol inexistente", domain.ErrInvalidInput)
	default:
		return fmt.Errorf("insert access row: %w", err)
	}
}

// DeleteForUser borra todas las relaciones del usuario.
func (r *AccessRepo) DeleteForUser(ctx context.Context, userID entity.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM usuario_rol_almacen WHERE usuario_id = $1`, userID); err != nil {
		return fmt.Errorf("delete access rows: %w", err)
	}
	return nil
}

// GrantSystemAdmin marca al usuario como administrador del sistema (idempotente).
func (r *AccessRepo) GrantSystemAdmin(ctx context.Context, userID entity.ID) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO administradores_sistema (usuario_id) VALUES ($1) ON CONFLICT (usuario_id) DO NOTHING`, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("grant system admin: %w", err)
	}
	return nil
}

// RevokeSystemAdmin quita la marca de administrador del sistema.
func (r *AccessRepo) RevokeSystemAdmin(ctx context.Context, userID entity.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM administradores_sistema WHERE usuario_id = $1`, userID); err != nil {
		return fmt.Errorf("revoke system admin: %w", err)
	}
	return nil
}
