package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"engineering-sync/internal/subscription"
	pkgLog "engineering-sync/pkg/log"
)

const connectTimeout = 5 * time.Second

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT PRIMARY KEY,
		name TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_subscriptions (
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_id INT NOT NULL,
		category_name TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, category_id)
	)`,
}

// Repository is the PostgreSQL-backed subscription store.
type Repository struct {
	pool *pgxpool.Pool
	l    pkgLog.Logger
}

// Connect opens a pool against dsn, verifies it with a ping, and ensures the
// schema exists.
func Connect(ctx context.Context, dsn string, l pkgLog.Logger) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = time.Minute

	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Repository{pool: pool, l: l}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	l.Info(ctx, "subscription store ready")
	return r, nil
}

// New wraps an existing pool. The schema is assumed present.
func New(pool *pgxpool.Pool, l pkgLog.Logger) *Repository {
	return &Repository{pool: pool, l: l}
}

// Close releases the underlying pool.
func (r *Repository) Close() {
	r.pool.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *Repository) GetUserSubscriptions(ctx context.Context, userID int) ([]subscription.CategoryRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category_id, category_name
		FROM user_subscriptions
		WHERE user_id = $1
		ORDER BY category_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	refs := []subscription.CategoryRef{}
	for rows.Next() {
		var ref subscription.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *Repository) GetOrCreateUser(ctx context.Context, email string) (subscription.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := r.GetUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, subscription.ErrUserNotFound) {
		return subscription.User{}, err
	}

	name := localPart(email)
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, name
	`, email, name).Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return subscription.User{}, fmt.Errorf("create user: %w", err)
	}
	r.l.Infof(ctx, "provisioned recipient %s", email)
	return u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (subscription.User, error) {
	var u subscription.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name
		FROM users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return subscription.User{}, subscription.ErrUserNotFound
	}
	if err != nil {
		return subscription.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]subscription.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []subscription.User{}
	for rows.Next() {
		var u subscription.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) DeleteUser(ctx context.Context, userID int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrUserNotFound
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]subscription.CategoryRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	refs := []subscription.CategoryRef{}
	for rows.Next() {
		var ref subscription.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// SyncCategories upserts the live listing so the manage page reflects streams
// that exist upstream even before anyone subscribes to them.
func (r *Repository) SyncCategories(ctx context.Context, refs []subscription.CategoryRef) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin category sync: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, ref := range refs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO categories (id, name, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		`, ref.ID, ref.Name); err != nil {
			return fmt.Errorf("upsert category %d: %w", ref.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit category sync: %w", err)
	}
	return nil
}

// UpdateUserSubscriptions replaces the user's subscription set in one
// transaction. Category names are denormalized at write time so resolution
// can fall back to name matching when upstream identifiers drift.
func (r *Repository) UpdateUserSubscriptions(ctx context.Context, userID int, categoryIDs []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin subscription update: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_subscriptions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear subscriptions: %w", err)
	}
	for _, id := range categoryIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_subscriptions (user_id, category_id, category_name)
			VALUES ($1, $2, COALESCE((SELECT name FROM categories WHERE id = $2), ''))
			ON CONFLICT (user_id, category_id) DO NOTHING
		`, userID, id); err != nil {
			return fmt.Errorf("insert subscription %d: %w", id, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit subscription update: %w", err)
	}
	r.l.Infof(ctx, "updated subscriptions for user %d (%d streams)", userID, len(categoryIDs))
	return nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
