package httpapi

import (
	"bytes"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
)

// looseNumber accepts a JSON number or a numeric string. Anything else that
// is not null decodes to NaN, which the engines treat as absent or invalid.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = bytes.TrimSpace(data[1 : len(data)-1])
		if len(data) == 0 {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		v = math.NaN()
	}
	*n = looseNumber(v)
	return nil
}

func requiredQueryID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, apperr.Validation("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

func optionalQueryID(r *http.Request, name string) (*uuid.UUID, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	id, err := requiredQueryID(r, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}
