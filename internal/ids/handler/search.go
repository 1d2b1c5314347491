package handler

import (
	"net/http"
	"strconv"

	dErrors "idsforge/pkg/domain-errors"
)

func (h *Handler) handleSearchClasses(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		writeError(w, dErrors.New(dErrors.CodeUnavailable, "dictionary search is not configured"))
		return
	}
	query := r.URL.Query()

	classes, err := h.search.SearchClasses(r.Context(),
		query.Get("term"),
		query.Get("dictionary"),
		intParam(query.Get("limit"), 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (h *Handler) handleSearchProperties(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		writeError(w, dErrors.New(dErrors.CodeUnavailable, "dictionary search is not configured"))
		return
	}
	query := r.URL.Query()

	properties, err := h.search.ClassProperties(r.Context(),
		query.Get("class"),
		query.Get("property_set"),
		query.Get("filter"),
		intParam(query.Get("offset"), 0),
		intParam(query.Get("limit"), 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) handleCatalogEntities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	entities := h.catalog.MatchEntities(query.Get("term"), intParam(query.Get("limit"), 0))
	writeJSON(w, http.StatusOK, entities)
}

func (h *Handler) handleCatalogRelations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Relations())
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
