package handler

import (
	"encoding/json"
	"net/http"

	dErrors "idsforge/pkg/domain-errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain error codes to HTTP statuses; anything uncoded is a
// 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message, Code: string(code)})
}
