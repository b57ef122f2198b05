package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/negocify-api/internal/application/auth"
	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios por administradores de almacén.
// Solo un administrador del sistema puede tocar asignaciones en almacenes que no administra.
type UserUseCase struct {
	tx         IdentityTxRunner
	users      repository.UserRepository
	roles      repository.RoleRepository
	warehouses repository.WarehouseRepository
	access     repository.AccessRepository
	guard      AdminChecker
	cost       int
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	tx IdentityTxRunner,
	users repository.UserRepository,
	roles repository.RoleRepository,
	warehouses repository.WarehouseRepository,
	access repository.AccessRepository,
	guard AdminChecker,
) *UserUseCase {
	return &UserUseCase{
		tx:         tx,
		users:      users,
		roles:      roles,
		warehouses: warehouses,
		access:     access,
		guard:      guard,
		cost:       bcrypt.DefaultCost,
	}
}

// WithBcryptCost cambia el coste de bcrypt.
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// ListByWarehouse usuarios con algún rol en el almacén; requiere ser administrador en él.
func (uc *UserUseCase) ListByWarehouse(ctx context.Context, p *entity.Principal, warehouseID entity.ID) ([]dto.UserResponse, error) {
	if err := authz.Require(p, warehouseID, entity.RoleAdministrador); err != nil {
		return nil, err
	}
	users, err := uc.users.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// GetByID usuario con sus asignaciones; requiere ser administrador en algún almacén.
func (uc *UserUseCase) GetByID(ctx context.Context, p *entity.Principal, id entity.ID) (*dto.UserDetailResponse, error) {
	if err := requireAdmin(ctx, uc.guard, p); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.access.ListAccessRows(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.UserDetailResponse{UserResponse: dto.ToUserResponse(user), Assignments: []dto.UserAssignment{}}
	for _, row := range rows {
		if row.WarehouseName == nil || row.RoleName == nil {
			continue
		}
		out.Assignments = append(out.Assignments, dto.UserAssignment{
			WarehouseID:   row.WarehouseID,
			WarehouseName: *row.WarehouseName,
			RoleID:        row.RoleID,
			Role:          *row.RoleName,
		})
	}
	return out, nil
}

// Create da de alta un usuario con un rol en un almacén, todo en una transacción.
func (uc *UserUseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	warehouseID, roleID := entity.ID(in.WarehouseID), entity.ID(in.RoleID)
	if err := authz.Require(p, warehouseID, entity.RoleAdministrador); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, warehouseID, roleID); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		Email:        auth.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunIdentity(ctx, func(users repository.UserRepository, access repository.AccessRepository) error {
		taken, err := users.EmailTaken(ctx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return access.ReplaceForUser(ctx, user.ID, []entity.UserRoleWarehouse{
			{UserID: user.ID, WarehouseID: warehouseID, RoleID: roleID},
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Update modifica datos y asignación del usuario en una transacción. Password vacío conserva el hash.
// Las asignaciones en almacenes que el llamador no administra se conservan.
func (uc *UserUseCase) Update(ctx context.Context, p *entity.Principal, id entity.ID, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	warehouseID, roleID := entity.ID(in.WarehouseID), entity.ID(in.RoleID)
	if err := authz.Require(p, warehouseID, entity.RoleAdministrador); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, warehouseID, roleID); err != nil {
		return nil, err
	}
	var hash string
	if in.Password != "" {
		h, err := auth.HashPassword(in.Password, uc.cost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var updated *entity.User
	err := uc.tx.RunIdentity(ctx, func(users repository.UserRepository, access repository.AccessRepository) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if err := uc.checkManageable(ctx, access, p, id, warehouseID, true); err != nil {
			return err
		}
		email := auth.NormalizeEmail(in.Email)
		taken, err := users.EmailTaken(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailAlreadyExists
		}

		user.Name = strings.TrimSpace(in.Name)
		user.Surname = strings.TrimSpace(in.Surname)
		user.Email = email
		if in.Phone != nil {
			user.Phone = in.Phone
		}
		if hash != "" {
			user.PasswordHash = hash
		}
		user.UpdatedAt = time.Now()
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		rows, err := uc.keptAssignments(ctx, access, p, id, warehouseID)
		if err != nil {
			return err
		}
		rows = append(rows, entity.UserRoleWarehouse{UserID: id, WarehouseID: warehouseID, RoleID: roleID})
		if err := access.ReplaceForUser(ctx, id, rows); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(updated)
	return &out, nil
}

// Delete borra al usuario junto con sus relaciones. El llamador debe administrar un almacén
// donde el usuario tenga rol; a un administrador del sistema solo lo borra otro.
func (uc *UserUseCase) Delete(ctx context.Context, p *entity.Principal, id, warehouseID entity.ID) error {
	if err := authz.Require(p, warehouseID, entity.RoleAdministrador); err != nil {
		return err
	}
	return uc.tx.RunIdentity(ctx, func(users repository.UserRepository, access repository.AccessRepository) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if err := uc.checkManageable(ctx, access, p, id, warehouseID, false); err != nil {
			return err
		}
		if err := access.DeleteForUser(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
}

func (uc *UserUseCase) checkReferences(ctx context.Context, warehouseID, roleID entity.ID) error {
	role, err := uc.roles.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("%w: el rol no existe", domain.ErrInvalidInput)
	}
	w, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: el almacén no existe", domain.ErrInvalidInput)
	}
	return nil
}

// keptAssignments relaciones actuales del usuario que el llamador no puede tocar.
func (uc *UserUseCase) keptAssignments(ctx context.Context, access repository.AccessRepository, p *entity.Principal, userID, target entity.ID) ([]entity.UserRoleWarehouse, error) {
	if p.Profile.IsSystemAdmin {
		return nil, nil
	}
	rows, err := access.ListAccessRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	var kept []entity.UserRoleWarehouse
	seen := map[entity.ID]bool{target: true}
	for _, row := range rows {
		if row.WarehouseName == nil || row.RoleName == nil || seen[row.WarehouseID] {
			continue
		}
		seen[row.WarehouseID] = true
		if authz.IsAuthorized(p, []string{entity.RoleAdministrador}, row.WarehouseID) {
			continue
		}
		kept = append(kept, entity.UserRoleWarehouse{UserID: userID, WarehouseID: row.WarehouseID, RoleID: row.RoleID})
	}
	return kept, nil
}

// checkManageable exige, salvo para un administrador del sistema, que el usuario objetivo
// no sea administrador del sistema, tenga rol en warehouseID (o ninguno, si allowUnassigned)
// y no sea administrador de un almacén que el llamador no administra.
func (uc *UserUseCase) checkManageable(ctx context.Context, access repository.AccessRepository, p *entity.Principal, userID, warehouseID entity.ID, allowUnassigned bool) error {
	if p.Profile.IsSystemAdmin {
		return nil
	}
	targetAdmin, err := access.IsSystemAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if targetAdmin {
		return domain.ErrForbidden
	}
	rows, err := access.ListAccessRows(ctx, userID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.RoleName != nil && *row.RoleName == entity.RoleAdministrador &&
			!authz.IsAuthorized(p, []string{entity.RoleAdministrador}, row.WarehouseID) {
			return domain.ErrForbidden
		}
	}
	if hasWarehouse(rows, warehouseID) || (allowUnassigned && len(rows) == 0) {
		return nil
	}
	return domain.ErrForbidden
}

func hasWarehouse(rows []entity.AccessRow, warehouseID entity.ID) bool {
	for _, row := range rows {
		if row.WarehouseID == warehouseID {
			return true
		}
	}
	return false
}
