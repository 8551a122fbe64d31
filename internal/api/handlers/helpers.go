package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"freight-matching-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps a domain error to an HTTP response. Contract
// errors are the caller's fault and carry their message; everything
// else is logged and hidden behind a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}

func statusForError(err error) int {
	var unreachable *domain.UnreachableSegmentsError
	switch {
	case errors.As(err, &unreachable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrInsufficientWaypoints):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
