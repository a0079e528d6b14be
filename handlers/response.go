package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type ApiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PagedData is the list payload shape: the page slice plus paging totals.
type PagedData struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int         `json:"total"`
	Pages int         `json:"pages"`
}

func NewPagedData(items interface{}, page, limit, total int) PagedData {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PagedData{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}
}

func writeJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: msg})
}

func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusBadRequest, ApiResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// parsePagination reads page/limit query params with sane defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
