//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/multierr"

	"github.com/lootbox/lootbox-admin/internal/logging"
	"github.com/lootbox/lootbox-admin/internal/metrics"
)

// Operation names used for logging and metrics.
const (
	opRead    = "read"
	opExecute = "execute"
	opCall    = "call"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is a plain SQL identifier.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Executor runs statements on a fresh connection per call.
//
// Read, Execute and CallProcedure log failures and degrade to an empty
// result. Query, Exec and Call return the classified error instead.
type Executor struct {
	opener  Opener
	metrics *metrics.QueryMetrics
}

// NewExecutor creates an executor. m may be nil.
func NewExecutor(opener Opener, m *metrics.QueryMetrics) *Executor {
	return &Executor{opener: opener, metrics: m}
}

// Query runs a parameterized read and returns its rows as records.
func (e *Executor) Query(ctx context.Context, sql string, args ...any) (records []Record, err error) {
	start := time.Now()
	defer func() { e.observe(opRead, start, int64(len(records)), err) }()

	conn, err := e.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { err = closeConn(ctx, conn, err) }()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, Classify(opRead, err)
	}
	records, err = collectRecords(rows)
	if err != nil {
		return nil, Classify(opRead, err)
	}
	return records, nil
}

// Read is Query with failures logged and absorbed.
func (e *Executor) Read(ctx context.Context, sql string, args ...any) []Record {
	records, err := e.Query(ctx, sql, args...)
	if err != nil {
		logging.Error().
			Err(err).
			Str("sql", compact(sql)).
			Msg("Read failed")
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// Exec runs a parameterized write in a transaction and returns the number
// of affected rows. The transaction is rolled back on any failure.
func (e *Executor) Exec(ctx context.Context, sql string, args ...any) (affected int64, err error) {
	start := time.Now()
	defer func() { e.observe(opExecute, start, affected, err) }()

	conn, err := e.opener.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { err = closeConn(ctx, conn, err) }()

	err = inTx(ctx, conn, opExecute, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Execute is Exec with failures logged and reported as 0 affected rows.
func (e *Executor) Execute(ctx context.Context, sql string, args ...any) int64 {
	affected, err := e.Exec(ctx, sql, args...)
	if err != nil {
		logging.Error().
			Err(err).
			Str("sql", compact(sql)).
			Msg("Execute failed")
		return 0
	}
	return affected
}

// Call invokes the stored routine name with args inside a transaction and
// returns every row it produced.
func (e *Executor) Call(ctx context.Context, name string, args ...any) (records []Record, err error) {
	if !ValidIdentifier(name) {
		e.metrics.Observe(opCall, metrics.OutcomeRejected, 0, 0)
		return nil, &Error{Kind: KindStore, Op: opCall, Err: fmt.Errorf("invalid routine name %q", name)}
	}

	start := time.Now()
	defer func() { e.observe(opCall, start, int64(len(records)), err) }()

	conn, err := e.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { err = closeConn(ctx, conn, err) }()

	sql := CallSQL(name, len(args))
	err = inTx(ctx, conn, opCall, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err := collectRecords(rows)
		if err != nil {
			return err
		}
		records = append(records, out...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CallProcedure is Call with failures logged and absorbed.
func (e *Executor) CallProcedure(ctx context.Context, name string, args ...any) []Record {
	records, err := e.Call(ctx, name, args...)
	if err != nil {
		logging.Error().
			Err(err).
			Str("routine", name).
			Msg("Procedure call failed")
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// CallSQL returns the statement that invokes a set-returning routine with
// n positional arguments.
func CallSQL(name string, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	return "SELECT * FROM " + name + "(" + strings.Join(ph, ", ") + ")"
}

func inTx(ctx context.Context, conn Conn, op string, fn func(pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return Classify(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logging.Warn().Err(rbErr).Str("op", op).Msg("Rollback failed")
		}
		return Classify(op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Classify(op, err)
	}
	return nil
}

func closeConn(ctx context.Context, conn Conn, err error) error {
	if cerr := conn.Close(ctx); cerr != nil {
		logging.Debug().Err(cerr).Msg("Failed to close store connection")
		if err != nil {
			return multierr.Append(err, cerr)
		}
	}
	return err
}

func (e *Executor) observe(op string, start time.Time, rows int64, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	e.metrics.Observe(op, outcome, time.Since(start), rows)
}

// compact collapses whitespace so statements log on one line.
func compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
