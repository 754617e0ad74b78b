package envelope

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "done", map[string]int{"n": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.NotContains(t, body, "error")
}

func TestError_Validation(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), "contacts.submit", apperr.Validation("email", apperr.ConstraintFormat))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "email", data["field"])
	assert.Equal(t, "format", data["constraint"])
}

func TestError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), "testimonials.toggle", apperr.NotFound("testimonial", "x"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Testimonial not found", decode(t, rec)["error"])
}

func TestError_StorageIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperr.Storage("contacts.insert", errors.New("server selection timeout on 10.0.0.3"))
	Error(rec, zap.NewNop(), "contacts.submit", err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, GenericError, decode(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

type patch struct {
	Count *int `json:"count"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		field      string
		constraint string
	}{
		{"ok", `{"count": 3}`, "", ""},
		{"empty", ``, "body", apperr.ConstraintRequired},
		{"malformed", `{"count":`, "body", apperr.ConstraintFormat},
		{"unknown key", `{"count": 1, "bogus": true}`, "bogus", apperr.ConstraintUnknownField},
		{"wrong type", `{"count": "three"}`, "count", apperr.ConstraintFormat},
		{"trailing data", `{"count": 1} {}`, "body", apperr.ConstraintFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PATCH", "/", strings.NewReader(tt.body))
			var p patch
			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.field == "" {
				require.NoError(t, err)
				require.NotNil(t, p.Count)
				assert.Equal(t, 3, *p.Count)
				return
			}
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.constraint, ve.Constraint)
		})
	}
}
