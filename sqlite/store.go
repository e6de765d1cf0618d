// Package sqlite provides a SQLite-backed registration repository.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/puzzlesmarathon/registration-backend/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var _ registration.Repository = (*Store)(nil)

// Store persists registrations in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies the embedded migrations. The
// store is ready to serve once Open returns.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
	    name TEXT PRIMARY KEY,
	    applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := fs.Glob(migrationFS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		var found int
		err := sqlDB.QueryRow("SELECT 1 FROM schema_migrations WHERE name = ?", file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)", file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}

	return nil
}

func (s *Store) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	if err := ctx.Err(); err != nil {
		return registration.NewFailedToWriteError("Context done before write", err)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO registrations (
		   id,
		   version,
		   type,
		   data,
		   status,
		   session_reference,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reg.ID,
		reg.Version,
		string(reg.Type),
		string(reg.Data),
		reg.Status.String(),
		nullableString(reg.SessionReference),
		reg.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("CreateRegistration timed out")
		}
		return registration.NewFailedToWriteError("Failed to insert registration", err)
	}

	return nil
}

func (s *Store) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	var (
		version          int
		tier             string
		data             string
		status           string
		sessionReference sql.NullString
		createdAt        int64
	)

	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT version, type, data, status, session_reference, created_at
		 FROM registrations WHERE id = ?`,
		id,
	).Scan(&version, &tier, &data, &status, &sessionReference, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
		}
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with id %q", id), err)
	}

	parsedStatus, err := registration.ParseStatus(status)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError(fmt.Sprintf("Stored registration %q is invalid", id), err)
	}

	reg := registration.Registration{
		ID:        id,
		Version:   version,
		Type:      registration.Tier(tier),
		Data:      json.RawMessage(data),
		Status:    parsedStatus,
		CreatedAt: time.UnixMilli(createdAt).UTC(),
	}
	if sessionReference.Valid {
		reg.SessionReference = &sessionReference.String
	}

	return reg, nil
}

func (s *Store) UpdateRegistrationToPaid(ctx context.Context, reg registration.Registration) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE registrations
		 SET status = ?, session_reference = ?, version = ?
		 WHERE id = ? AND version = ?`,
		registration.PAID.String(),
		nullableString(reg.SessionReference),
		reg.Version,
		reg.ID,
		reg.Version-1,
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("UpdateRegistrationToPaid timed out")
		}
		return registration.NewFailedToWriteError("Failed to update registration", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return registration.NewFailedToWriteError("Failed to read update result", err)
	}
	if affected == 0 {
		return registration.NewVersionConflictError(fmt.Sprintf("Registration %q is not at version %d", reg.ID, reg.Version-1), nil)
	}

	return nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
