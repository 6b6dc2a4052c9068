package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRows struct {
	pgx.Rows
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.data) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Values() ([]any, error) { return r.data[r.idx-1], nil }
func (r *fakeRows) Err() error             { return r.err }
func (r *fakeRows) Close()                 { r.closed = true }

type fakeConn struct {
	queries []string
	args    [][]any

	rows     *fakeRows
	queryErr error
	execTag  string
	execErr  error

	beginErr  error
	commitErr error
	closeErr  error

	committed  bool
	rolledBack bool
	closed     bool
}

func (c *fakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	c.args = append(c.args, args)
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	if c.rows == nil {
		return &fakeRows{}, nil
	}
	return c.rows, nil
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.queries = append(c.queries, sql)
	c.args = append(c.args, args)
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	return pgconn.NewCommandTag(c.execTag), nil
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) Close(context.Context) error {
	c.closed = true
	return c.closeErr
}

type fakeTx struct {
	pgx.Tx
	conn *fakeConn
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.conn.Query(ctx, sql, args...)
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.conn.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	if t.conn.commitErr != nil {
		return t.conn.commitErr
	}
	t.conn.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.conn.rolledBack = true
	return nil
}

type fakeOpener struct {
	conn  *fakeConn
	err   error
	opens int
}

func (o *fakeOpener) Open(context.Context) (Conn, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return o.conn, nil
}
