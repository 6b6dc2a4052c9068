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
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lootbox/lootbox-admin/internal/db"
	"github.com/lootbox/lootbox-admin/internal/reporting"
)

type reportPage struct {
	Name     string      `json:"name"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Pages    int         `json:"pages"`
	Total    int         `json:"total"`
	Rows     []db.Record `json:"rows"`
}

type queryInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (h *handler) listViews(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, reporting.Views())
}

func (h *handler) listQueries(w http.ResponseWriter, _ *http.Request) {
	var out []queryInfo
	for _, q := range reporting.Queries() {
		out = append(out, queryInfo{Name: q.Name, Label: q.Label, Description: q.Description})
	}
	writeData(w, http.StatusOK, out)
}

func (h *handler) runView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := reporting.LookupView(name); !ok {
		writeNotFound(w, "view")
		return
	}
	h.writeReport(w, r, name, func() []db.Record {
		return h.reports.View(r.Context(), name)
	})
}

func (h *handler) runQuery(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := reporting.LookupQuery(name); !ok {
		writeNotFound(w, "query")
		return
	}
	q := newQuery(r)
	explain := q.boolean("explain")
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeReport(w, r, name, func() []db.Record {
		return h.reports.Query(r.Context(), name, explain)
	})
}

// writeReport pages the full result in memory.
func (h *handler) writeReport(w http.ResponseWriter, r *http.Request, name string, run func() []db.Record) {
	q := newQuery(r)
	page := q.page()
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}

	rows := run()
	writeData(w, http.StatusOK, reportPage{
		Name:     name,
		Page:     page.Number,
		PageSize: page.Size,
		Pages:    reporting.PageCount(len(rows), page.Size),
		Total:    len(rows),
		Rows:     reporting.Page(rows, page.Number, page.Size),
	})
}
