package stats_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/edumanage/schoolsite/internal/app/features/stats"
	"github.com/edumanage/schoolsite/internal/app/services/statssvc"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/edumanage/schoolsite/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(store *testutil.MemStats) http.Handler {
	h := stats.NewHandler(statssvc.New(store), nil, zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/api/stats", stats.Routes(h, nil))
	return r
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeStats(t *testing.T, rec *testutil.ResponseRecorder) (testutil.Envelope, models.SchoolStats) {
	t.Helper()
	env := rec.DecodeEnvelope(t)
	var st models.SchoolStats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	return env, st
}

func TestGet_MaterializesDefaults(t *testing.T) {
	store := &testutil.MemStats{}
	router := newRouter(store)

	rec := serve(router, testutil.NewRequest("GET", "/api/stats/"))
	rec.AssertStatus(t, http.StatusOK)

	_, st := decodeStats(t, rec)
	assert.Equal(t, int64(models.DefaultTotalSchools), st.TotalSchools)
	assert.Equal(t, models.DefaultAverageSatisfaction, st.AverageSatisfaction)
	require.NotNil(t, store.Doc)

	rec = serve(router, testutil.NewRequest("GET", "/api/stats"))
	rec.AssertStatus(t, http.StatusOK)
	_, again := decodeStats(t, rec)
	assert.True(t, st.LastUpdated.Equal(again.LastUpdated))
}

func TestUpdate(t *testing.T) {
	store := &testutil.MemStats{}
	router := newRouter(store)

	rec := serve(router, testutil.NewJSONRequest(t, "PATCH", "/api/stats/", map[string]any{
		"total_schools":        650,
		"average_satisfaction": 4.9,
	}))
	rec.AssertStatus(t, http.StatusOK)

	env, st := decodeStats(t, rec)
	assert.Equal(t, stats.UpdatedMessage, env.Message)
	assert.Equal(t, int64(650), st.TotalSchools)
	assert.Equal(t, 4.9, st.AverageSatisfaction)
	assert.Equal(t, int64(models.DefaultTotalTeachers), st.TotalTeachers)
}

func TestUpdate_EmptyObject(t *testing.T) {
	router := newRouter(&testutil.MemStats{})
	rec := serve(router, testutil.NewJSONRequest(t, "PATCH", "/api/stats/", `{}`))
	rec.AssertStatus(t, http.StatusOK)
}

func TestUpdate_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		field      string
		constraint string
	}{
		{"unknown key", map[string]any{"total_parents": 3}, "total_parents", "unknown_field"},
		{"immutable key", map[string]any{"id": "other"}, "id", "unknown_field"},
		{"negative count", map[string]any{"total_teachers": -1}, "total_teachers", "range"},
		{"satisfaction too high", map[string]any{"average_satisfaction": 7}, "average_satisfaction", "range"},
		{"fractional count", `{"total_schools": 1.5}`, "total_schools", "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutil.MemStats{}
			router := newRouter(store)

			rec := serve(router, testutil.NewJSONRequest(t, "PATCH", "/api/stats/", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)

			var fp envelope.FieldProblem
			require.NoError(t, json.Unmarshal(rec.DecodeEnvelope(t).Data, &fp))
			assert.Equal(t, tt.field, fp.Field)
			assert.Equal(t, tt.constraint, fp.Constraint)
			assert.Nil(t, store.Doc)
		})
	}
}

func TestGet_StorageFailure(t *testing.T) {
	router := newRouter(&testutil.MemStats{Err: errors.New("socket closed")})
	rec := serve(router, testutil.NewRequest("GET", "/api/stats/"))
	rec.AssertStatus(t, http.StatusInternalServerError)
	assert.Equal(t, envelope.GenericError, rec.DecodeEnvelope(t).Error)
}
