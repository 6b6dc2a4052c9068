//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package api

import (
	"errors"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/lootbox/lootbox-admin/internal/access"
	"github.com/lootbox/lootbox-admin/internal/db"
)

// query collects parameter errors so a handler can report them at once.
type query struct {
	r      *http.Request
	fields map[string]string
}

func newQuery(r *http.Request) *query {
	return &query{r: r, fields: map[string]string{}}
}

func (q *query) str(name string) string {
	return strings.TrimSpace(q.r.URL.Query().Get(name))
}

func (q *query) optionalID(name string) *int64 {
	id, err := access.ParseOptionalID(name, q.str(name))
	if err != nil {
		q.fields[name] = "must be a number"
		return nil
	}
	return id
}

func (q *query) requiredID(name string) int64 {
	id, err := access.ParseID(name, q.str(name))
	if err != nil {
		var ve *access.ValidationError
		if errors.As(err, &ve) {
			maps.Copy(q.fields, ve.Fields)
		}
		return 0
	}
	return id
}

func (q *query) integer(name string, def int) int {
	raw := q.str(name)
	if raw == "" {
		return def
	}
	n, err := access.ParseInt(raw)
	if err != nil {
		q.fields[name] = "must be a number"
		return def
	}
	return int(n)
}

func (q *query) boolean(name string) bool {
	raw := q.str(name)
	if raw == "" {
		return false
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		q.fields[name] = "must be a boolean"
		return false
	}
	return b
}

// date accepts any layout dateparse understands and keeps the calendar day.
func (q *query) date(name string) *time.Time {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		q.fields[name] = "must be a date"
		return nil
	}
	return &t
}

func (q *query) page() db.Page {
	return db.NewPage(q.integer("page", 0), q.integer("page_size", db.DefaultPageSize))
}

// err returns the collected parameter errors, if any.
func (q *query) err() error {
	if len(q.fields) == 0 {
		return nil
	}
	return &access.ValidationError{Fields: q.fields}
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	return access.ParseID("id", chi.URLParam(r, "id"))
}

// parseDate parses a body date field with dateparse.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &access.ValidationError{Fields: map[string]string{field: "is required"}}
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, &access.ValidationError{Fields: map[string]string{field: "must be a date"}}
	}
	return t, nil
}
