package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// schema DDL del modelo, declarado de forma estática e idempotente.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuario (
		id         BIGSERIAL PRIMARY KEY,
		nombre     VARCHAR(100) NOT NULL,
		apellido   VARCHAR(100) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		password   VARCHAR(255) NOT NULL,
		telefono   VARCHAR(30),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS usuario_email_key ON usuario (lower(email))`,
	`CREATE TABLE IF NOT EXISTS rol (
		id     BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(50) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS almacen (
		id        BIGSERIAL PRIMARY KEY,
		nombre    VARCHAR(200) NOT NULL,
		direccion VARCHAR(300)
	)`,
	`CREATE TABLE IF NOT EXISTS usuario_rol_almacen (
		id         BIGSERIAL PRIMARY KEY,
		usuario_id BIGINT NOT NULL REFERENCES usuario(id) ON DELETE CASCADE,
		rol_id     BIGINT NOT NULL REFERENCES rol(id) ON DELETE CASCADE,
		almacen_id BIGINT NOT NULL REFERENCES almacen(id) ON DELETE CASCADE,
		CONSTRAINT usuario_rol_almacen_usuario_almacen_key UNIQUE (usuario_id, almacen_id)
	)`,
	`CREATE TABLE IF NOT EXISTS administradores_sistema (
		id         BIGSERIAL PRIMARY KEY,
		usuario_id BIGINT NOT NULL UNIQUE REFERENCES usuario(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tipo_producto (
		id     BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS producto (
		id               BIGSERIAL PRIMARY KEY,
		nombre           VARCHAR(200) NOT NULL,
		tipo_producto_id BIGINT NOT NULL REFERENCES tipo_producto(id),
		stock            BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		stock_minimo     BIGINT NOT NULL DEFAULT 0 CHECK (stock_minimo >= 0),
		almacen_id       BIGINT NOT NULL REFERENCES almacen(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS producto_almacen_idx ON producto (almacen_id)`,
	`CREATE TABLE IF NOT EXISTS tipo_venta (
		id       BIGSERIAL PRIMARY KEY,
		nombre   VARCHAR(100) NOT NULL UNIQUE,
		comision NUMERIC(10,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS venta (
		id            BIGSERIAL PRIMARY KEY,
		monto_bruto   NUMERIC(14,2) NOT NULL,
		monto_neto    NUMERIC(14,2) NOT NULL,
		fecha         TIMESTAMPTZ NOT NULL DEFAULT now(),
		almacen_id    BIGINT NOT NULL REFERENCES almacen(id) ON DELETE CASCADE,
		tipo_venta_id BIGINT NOT NULL REFERENCES tipo_venta(id)
	)`,
	`CREATE INDEX IF NOT EXISTS venta_almacen_fecha_idx ON venta (almacen_id, fecha)`,
}

// seedRoles roles de referencia.
var seedRoles = []string{entity.RoleAdministrador, entity.RoleEmpleado}

// Migrate aplica el esquema y los roles de referencia en una transacción.
func Migrate(ctx context.Context, runner *TxRunner) error {
	return runner.run(ctx, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate paso %d: %w", i+1, err)
			}
		}
		for _, name := range seedRoles {
			if _, err := tx.Exec(ctx, `INSERT INTO rol (nombre) VALUES ($1) ON CONFLICT (nombre) DO NOTHING`, name); err != nil {
				return fmt.Errorf("seed rol %s: %w", name, err)
			}
		}
		return nil
	})
}
