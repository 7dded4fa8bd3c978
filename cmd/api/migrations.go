// cmd/api/migrations.go
// Schema setup for the PostgreSQL store.

package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(30) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(50),
		last_name VARCHAR(50),
		profile_image_url TEXT,
		bio TEXT,
		location VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		address VARCHAR(255) NOT NULL,
		type VARCHAR(50) NOT NULL,
		icon VARCHAR(50)
	)`,

	`CREATE TABLE IF NOT EXISTS interests (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(80) UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(80) NOT NULL,
		icon VARCHAR(50)
	)`,

	`CREATE TABLE IF NOT EXISTS user_interests (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		interest_id BIGINT NOT NULL REFERENCES interests(id) ON DELETE CASCADE,
		UNIQUE (user_id, interest_id)
	)`,

	`CREATE TABLE IF NOT EXISTS user_activities (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		activity_id BIGINT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		UNIQUE (user_id, activity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS checkins (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		location_id BIGINT NOT NULL REFERENCES locations(id),
		activity_id BIGINT NOT NULL REFERENCES activities(id),
		note VARCHAR(280),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checkins_location ON checkins(location_id)`,
	`CREATE INDEX IF NOT EXISTS idx_checkins_user ON checkins(user_id)`,

	`CREATE TABLE IF NOT EXISTS checkin_interests (
		id BIGSERIAL PRIMARY KEY,
		checkin_id BIGINT NOT NULL REFERENCES checkins(id) ON DELETE CASCADE,
		interest_id BIGINT NOT NULL REFERENCES interests(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS connection_requests (
		id BIGSERIAL PRIMARY KEY,
		sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message VARCHAR(280),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_requests_receiver ON connection_requests(receiver_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_sender ON connection_requests(sender_id)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		is_read BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id)`,
}

// runMigrations applies the schema statements in order. Statements are
// idempotent so restarts are safe.
func runMigrations(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
