package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePathInt reads a chi URL parameter as an integer with a lower bound.
func ParsePathInt(r *http.Request, key string, min int) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter out of range").WithDetails(map[string]any{"field": key, "min": min})
	}
	return value, nil
}
