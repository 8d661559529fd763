package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/logger"
	"github.com/pinboard-dev/pinboard/internal/storage/pg/migrations"
)

const uniqueViolation = "23505"

// Querier abstracts database operations. It is satisfied by both *sql.DB
// (single operations on the pool) and *sql.Tx (operations within a
// transaction), so the core query logic is transaction-agnostic.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Storage owns the long-lived connection pool shared across request
// handlers. There is exactly one per process.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg *config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	storage := &Storage{db}
	if err := storage.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return storage, nil
}

func Connect(cfg *config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func (s *Storage) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// withTx executes fn within a transaction. The deferred Rollback is a
// no-op once the transaction has been committed.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. Duplicate-key races are resolved by the database, not by
// check-then-insert.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
