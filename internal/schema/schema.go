//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema creates and drops the LootBox schema: tables, analytic
// views, stored routines and audit triggers.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lootbox/lootbox-admin/internal/logging"
)

// migrationsDir is the directory inside the embedded filesystem.
const migrationsDir = "migrations"

// versionTable records applied migrations.
const versionTable = "lootbox_schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

var setupOnce sync.Once
var setupErr error

// setup configures goose's package-level state once per process.
func setup() error {
	setupOnce.Do(func() {
		goose.SetBaseFS(migrations)
		goose.SetTableName(versionTable)
		goose.SetLogger(gooseLogger{})
		setupErr = goose.SetDialect("postgres")
	})
	return setupErr
}

// Create applies all pending migrations.
func Create(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Up(ctx, db)
}

// Drop rolls back every applied migration.
func Drop(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Down(ctx, db)
}

// Up applies all pending migrations on db.
func Up(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logging.Info().Msg("Applying schema migrations")
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back every applied migration on db.
func Down(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logging.Info().Msg("Dropping schema")
	if err := goose.DownToContext(ctx, db, migrationsDir, 0); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Version returns the currently applied migration version.
func Version(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	if err := setup(); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return goose.GetDBVersionContext(ctx, db)
}

// Migrations lists the embedded migration file names in order.
func Migrations() ([]string, error) {
	entries, err := fs.ReadDir(migrations, migrationsDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// gooseLogger routes goose output through the structured logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logging.Debug().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logging.Fatal().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
