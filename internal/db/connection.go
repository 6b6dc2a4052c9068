//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package db provides store connections and the generic query executors
// used by the access layer.
package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lootbox/lootbox-admin/internal/logging"
)

// AuditUserSetting is the session variable read by the audit triggers.
const AuditUserSetting = "lootbox.user_id"

// Conn is the subset of *pgx.Conn used by the executors.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close(ctx context.Context) error
}

// Opener hands out a fresh connection for a single operation.
type Opener interface {
	Open(ctx context.Context) (Conn, error)
}

// Connector opens one connection per call from static configuration.
// Connections are never pooled or reused.
type Connector struct {
	config *pgx.ConnConfig
}

// NewConnector parses the connection string once. auditUserID, when
// non-zero, is attached to every connection for the audit triggers.
func NewConnector(connString string, auditUserID int64) (*Connector, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if auditUserID != 0 {
		if config.RuntimeParams == nil {
			config.RuntimeParams = map[string]string{}
		}
		config.RuntimeParams[AuditUserSetting] = strconv.FormatInt(auditUserID, 10)
	}
	return &Connector{config: config}, nil
}

// Open establishes a new connection. Failures are reported as KindConnection.
func (c *Connector) Open(ctx context.Context) (Conn, error) {
	logging.Debug().
		Str("host", c.config.Host).
		Uint16("port", c.config.Port).
		Str("database", c.config.Database).
		Msg("Opening store connection")

	conn, err := pgx.ConnectConfig(ctx, c.config.Copy())
	if err != nil {
		return nil, &Error{Kind: KindConnection, Op: "connect", Err: err}
	}
	return conn, nil
}

// Ping opens and closes a connection to verify the store is reachable.
func (c *Connector) Ping(ctx context.Context) error {
	conn, err := c.Open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if pc, ok := conn.(*pgx.Conn); ok {
		if err := pc.Ping(ctx); err != nil {
			return &Error{Kind: KindConnection, Op: "ping", Err: err}
		}
	}
	return nil
}

// Connect establishes a connection pool. It is used only by the seed
// generator, which writes in bulk from a single process.
func Connect(ctx context.Context, connString string, maxConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Uint16("port", config.ConnConfig.Port).
		Str("database", config.ConnConfig.Database).
		Int32("max_conns", config.MaxConns).
		Msg("Connecting to database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &Error{Kind: KindConnection, Op: "ping", Err: err}
	}

	logging.Info().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("Connected to database")

	return pool, nil
}
