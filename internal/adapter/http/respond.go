package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"leaf-and-fork/internal/app/session"
	"leaf-and-fork/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the engine's error taxonomy onto HTTP statuses:
// validation 400, absence 404, optimistic-concurrency loss 409.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidCoupon):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStatusConflict):
		status = http.StatusConflict
	}
	respondJSON(w, status, ErrorResponse{Error: err.Error()})
}
