package serviceutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response body", "err", err)
	}
}

// RecoverPanic maps an unexpected panic in a handler to a 500 instead
// of tearing down the connection. expected failures never reach this,
// handlers model them explicitly.
func RecoverPanic(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", rec)
				WriteJSON(w, http.StatusInternalServerError, ErrorBody{
					Error:  "internal server error",
					Detail: fmt.Sprint(rec),
				})
			}
		}()
		next(w, r)
	}
}
