package repository

import (
	"context"
	"fmt"
)

// usersSchema is the DDL for the users table.
// Idempotent via IF NOT EXISTS so it can run on every startup.
const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(100) UNIQUE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Bootstrap creates the users table if it does not exist.
func (r *Repository) Bootstrap(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("failed to bootstrap users schema: %w", err)
	}
	return nil
}
