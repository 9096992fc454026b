package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"folha/internal/auth"
	"folha/internal/platform/config"
)

// Seed ensures the admin user exists. It is idempotent and safe to run
// on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedAdminEmail) == "" {
		return nil
	}
	return ensureUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, auth.RoleHR)
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, role string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
  `, email, hash, role)
	return err
}
