package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/repository"
)

const msgInternal = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps err onto the API error contract. Unexpected errors are
// logged and reported as a bare 500.
func writeFailure(w http.ResponseWriter, log *zap.Logger, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// idParam parses the {id} path segment. A non-numeric or non-positive id is answered with 400.
func idParam(w http.ResponseWriter, r *http.Request, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, invalidMsg)
		return 0, false
	}
	return id, true
}

// decodeRequest reads a JSON body into dst, normalizes and validates it.
// It writes the 400 response itself and returns false on any failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			writeValidation(w, []FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be of type %s", jsonKind(typeErr.Type.Kind().String())),
			}})
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "Request body is required")
		default:
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
		}
		return false
	}

	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	if errs := validateStruct(dst); len(errs) > 0 {
		writeValidation(w, errs)
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Error: "Validation failed", Errors: errs})
}

type validationResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int64", "int32", "uint", "float64":
		return "number"
	case "bool":
		return "boolean"
	case "slice":
		return "array"
	case "struct", "map":
		return "object"
	}
	return goKind
}
