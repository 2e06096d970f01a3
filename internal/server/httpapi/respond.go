package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tuanis-rp/roleplay-api/internal/common"
)

// errorBody is the structured failure shape returned on every error: a
// stable kind plus a human-readable message. Internal details never leak.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	kindConflict        = "conflict"
	kindNotFound        = "not_found"
	kindUnauthenticated = "unauthenticated"
	kindUnavailable     = "unavailable"
	kindInvalidRequest  = "invalid_request"
	kindInternal        = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// writeServiceError maps sentinel errors from the service layer onto HTTP
// statuses and error kinds.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, kindConflict, "el recurso ya existe")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, kindNotFound, "no encontrado")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, kindUnauthenticated, "credenciales o token inválidos")
	case errors.Is(err, common.ErrorUnavailable):
		writeError(w, http.StatusServiceUnavailable, kindUnavailable, "servicio no disponible")
	default:
		writeError(w, http.StatusInternalServerError, kindInternal, "error interno")
	}
}
