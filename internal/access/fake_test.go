package access

import (
	"context"

	"github.com/lootbox/lootbox-admin/internal/db"
)

type storeCall struct {
	method string
	sql    string
	args   []any
}

// fakeStore records every call and replays canned results.
type fakeStore struct {
	calls []storeCall

	records  []db.Record
	err      error
	affected int64
}

func (s *fakeStore) record(method, sql string, args []any) {
	s.calls = append(s.calls, storeCall{method: method, sql: sql, args: args})
}

func (s *fakeStore) Read(_ context.Context, sql string, args ...any) []db.Record {
	s.record("Read", sql, args)
	if s.err != nil || s.records == nil {
		return []db.Record{}
	}
	return s.records
}

func (s *fakeStore) Query(_ context.Context, sql string, args ...any) ([]db.Record, error) {
	s.record("Query", sql, args)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *fakeStore) Execute(_ context.Context, sql string, args ...any) int64 {
	s.record("Execute", sql, args)
	if s.err != nil {
		return 0
	}
	return s.affected
}

func (s *fakeStore) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	s.record("Exec", sql, args)
	if s.err != nil {
		return 0, s.err
	}
	return s.affected, nil
}

func (s *fakeStore) CallProcedure(_ context.Context, name string, args ...any) []db.Record {
	s.record("CallProcedure", name, args)
	if s.err != nil || s.records == nil {
		return []db.Record{}
	}
	return s.records
}

func (s *fakeStore) Call(_ context.Context, name string, args ...any) ([]db.Record, error) {
	s.record("Call", name, args)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func rec(cols []string, vals ...any) db.Record {
	return db.NewRecord(cols, vals)
}

func integrityErr() error {
	return &db.Error{Kind: db.KindIntegrity, Op: "execute", Err: errIntegrityCause}
}
