package userdata

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore is a Store backed by a single user_data table. Update
// serializes writers with SELECT ... FOR UPDATE row locking inside a
// transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store on top of an established pgx pool.
// Run Migrate once at startup to create the schema.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate applies the embedded schema migrations using goose.
// Bridges the pgx pool to database/sql since goose doesn't natively support pgx.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID uuid.UUID, namespace, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM user_data WHERE user_id = $1 AND namespace = $2 AND key = $3`,
		userID, namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, userID uuid.UUID, namespace, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_data (user_id, namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, namespace, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		userID, namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID uuid.UUID, namespace, key string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM user_data WHERE user_id = $1 AND namespace = $2 AND key = $3`,
		userID, namespace, key,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

// Update runs fn inside a transaction holding an advisory lock on the
// record identity, so concurrent cycles for the same (user, namespace,
// key) queue up behind each other. A row lock alone is not enough:
// SELECT ... FOR UPDATE on a missing row locks nothing, and two
// concurrent creators would silently overwrite each other.
func (s *PostgresStore) Update(ctx context.Context, userID uuid.UUID, namespace, key string, fn UpdateFunc) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2 || ':' || $3, 0))`,
		userID, namespace, key,
	); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	var current []byte
	found := true
	err = tx.QueryRow(ctx,
		`SELECT value FROM user_data WHERE user_id = $1 AND namespace = $2 AND key = $3 FOR UPDATE`,
		userID, namespace, key,
	).Scan(&current)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
		}
		found = false
		current = nil
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	if next == nil {
		_, err = tx.Exec(ctx,
			`DELETE FROM user_data WHERE user_id = $1 AND namespace = $2 AND key = $3`,
			userID, namespace, key,
		)
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_data (user_id, namespace, key, value, updated_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (user_id, namespace, key)
			 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			userID, namespace, key, next,
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}
