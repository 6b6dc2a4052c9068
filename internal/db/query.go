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
	"math"
	"strconv"
	"strings"
	"time"
)

// Paging defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a zero-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes a page request: negative pages become 0, sizes of 0
// or less become DefaultPageSize, sizes above MaxPageSize are capped.
// Number is capped so that the offset always fits in an int.
func NewPage(number, size int) Page {
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	number = min(max(number, 0), math.MaxInt/size)
	return Page{Number: number, Size: size}
}

// Limit returns the LIMIT for the page.
func (p Page) Limit() int {
	return NewPage(p.Number, p.Size).Size
}

// Offset returns the OFFSET for the page.
func (p Page) Offset() int {
	n := NewPage(p.Number, p.Size)
	return n.Number * n.Size
}

// Builder assembles a parameterized SELECT from a base statement and a
// closed set of predicates. Every predicate binds its value through a
// positional placeholder; values are never spliced into the SQL text.
type Builder struct {
	base    string
	conds   []string
	args    []any
	groupBy string
	orderBy string
	page    *Page
}

// Select starts a builder from a base statement without WHERE/ORDER/LIMIT.
func Select(base string) *Builder {
	return &Builder{base: strings.TrimSpace(base)}
}

// Where adds a raw condition. Each "?" in cond is replaced by the next
// placeholder and bound to the matching arg.
func (b *Builder) Where(cond string, args ...any) *Builder {
	var sb strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			b.args = append(b.args, args[i])
			sb.WriteString("$" + strconv.Itoa(len(b.args)))
			i++
			continue
		}
		sb.WriteRune(r)
	}
	b.conds = append(b.conds, sb.String())
	return b
}

// Contains adds a case-insensitive substring match. Empty values are ignored.
func (b *Builder) Contains(column, value string) *Builder {
	return b.ContainsAny(value, column)
}

// ContainsAny matches value as a substring of any of columns.
// Empty values are ignored.
func (b *Builder) ContainsAny(value string, columns ...string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" || len(columns) == 0 {
		return b
	}
	b.args = append(b.args, "%"+escapeLike(value)+"%")
	ph := "$" + strconv.Itoa(len(b.args))

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE " + ph
	}
	if len(parts) == 1 {
		b.conds = append(b.conds, parts[0])
	} else {
		b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	}
	return b
}

// Equal adds an exact match. Nil values, nil pointers and empty strings
// are ignored.
func (b *Builder) Equal(column string, value any) *Builder {
	switch v := value.(type) {
	case nil:
		return b
	case string:
		if v == "" {
			return b
		}
	case *string:
		if v == nil || *v == "" {
			return b
		}
		value = *v
	case *int64:
		if v == nil {
			return b
		}
		value = *v
	case *int:
		if v == nil {
			return b
		}
		value = *v
	case *bool:
		if v == nil {
			return b
		}
		value = *v
	}
	return b.Where(column+" = ?", value)
}

// EqualFold adds a case-insensitive equality match. Empty values are ignored.
func (b *Builder) EqualFold(column, value string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	return b.Where("lower("+column+") = lower(?)", value)
}

// DateFrom keeps rows whose calendar day is on or after from.
func (b *Builder) DateFrom(column string, from *time.Time) *Builder {
	if from == nil || from.IsZero() {
		return b
	}
	return b.Where(column+"::date >= ?::date", from.Format(time.DateOnly))
}

// DateTo keeps rows whose calendar day is on or before to.
func (b *Builder) DateTo(column string, to *time.Time) *Builder {
	if to == nil || to.IsZero() {
		return b
	}
	return b.Where(column+"::date <= ?::date", to.Format(time.DateOnly))
}

// GroupBy sets the GROUP BY clause.
func (b *Builder) GroupBy(clause string) *Builder {
	b.groupBy = clause
	return b
}

// OrderBy sets the ORDER BY clause.
func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

// Paginate adds LIMIT/OFFSET for p.
func (b *Builder) Paginate(p Page) *Builder {
	n := NewPage(p.Number, p.Size)
	b.page = &n
	return b
}

// Build returns the SQL text and its bound arguments.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)

	if len(b.conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(b.conds, "\n  AND "))
	}
	if b.groupBy != "" {
		sb.WriteString("\nGROUP BY ")
		sb.WriteString(b.groupBy)
	}
	if b.orderBy != "" {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(b.orderBy)
	}

	args := append([]any(nil), b.args...)
	if b.page != nil {
		args = append(args, b.page.Limit(), b.page.Offset())
		sb.WriteString("\nLIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args)))
	}

	return sb.String(), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
