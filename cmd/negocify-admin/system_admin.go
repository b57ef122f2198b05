package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/negocify-api/internal/application/auth"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/internal/domain/repository"
)

// La marca de administrador del sistema solo se concede desde aquí, nunca por HTTP.
func newGrantAdminCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "grant-admin [user-id]",
		Short: "Marca a un usuario como administrador del sistema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tx.RunAdmin(cmd.Context(), func(users repository.UserRepository, _ repository.WarehouseRepository, access repository.AccessRepository) error {
				user, err := lookupUser(cmd.Context(), users, args, email)
				if err != nil {
					return err
				}
				if err := access.GrantSystemAdmin(cmd.Context(), user.ID); err != nil {
					return err
				}
				a.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("administrador del sistema concedido")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del usuario (alternativa al id)")
	return cmd
}

func newRevokeAdminCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "revoke-admin [user-id]",
		Short: "Quita la marca de administrador del sistema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tx.RunAdmin(cmd.Context(), func(users repository.UserRepository, _ repository.WarehouseRepository, access repository.AccessRepository) error {
				user, err := lookupUser(cmd.Context(), users, args, email)
				if err != nil {
					return err
				}
				if err := access.RevokeSystemAdmin(cmd.Context(), user.ID); err != nil {
					return err
				}
				a.log.Info().Int64("user_id", user.ID).Msg("administrador del sistema revocado")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del usuario (alternativa al id)")
	return cmd
}

func lookupUser(ctx context.Context, users repository.UserRepository, args []string, email string) (*entity.User, error) {
	var (
		user *entity.User
		err  error
	)
	switch {
	case len(args) == 1 && email != "":
		return nil, errors.New("indique el id o --email, no ambos")
	case len(args) == 1:
		id, perr := entity.ParseID(args[0])
		if perr != nil {
			return nil, perr
		}
		user, err = users.GetByID(ctx, id)
	case email != "":
		user, err = users.GetByEmail(ctx, auth.NormalizeEmail(email))
	default:
		return nil, errors.New("indique el id del usuario o --email")
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
