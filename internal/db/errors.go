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
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies store failures.
type Kind int

const (
	// KindStore is any store failure not otherwise classified.
	KindStore Kind = iota
	// KindConnection means the store was unreachable or rejected the credentials.
	KindConnection
	// KindIntegrity means a constraint was violated (SQLSTATE class 23).
	KindIntegrity
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrStore      = errors.New("store error")
	ErrConnection = errors.New("connection failure")
	ErrIntegrity  = errors.New("integrity violation")
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindIntegrity:
		return "integrity"
	default:
		return "store"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConnection:
		return ErrConnection
	case KindIntegrity:
		return ErrIntegrity
	default:
		return ErrStore
	}
}

// Error is a classified store failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Classify wraps err in an *Error describing op. Already classified errors
// are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) Kind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return KindIntegrity
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "28"):
			return KindConnection
		default:
			return KindStore
		}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}

	return KindStore
}

// KindOf returns the kind of a classified error, or KindStore.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return kindOf(err)
}

// IsIntegrity reports whether err is a constraint violation.
func IsIntegrity(err error) bool {
	return err != nil && KindOf(err) == KindIntegrity
}

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool {
	return err != nil && KindOf(err) == KindConnection
}
