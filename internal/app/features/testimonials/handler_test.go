package testimonials_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/edumanage/schoolsite/internal/app/features/testimonials"
	"github.com/edumanage/schoolsite/internal/app/services/testimonialsvc"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/edumanage/schoolsite/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(store *testutil.MemTestimonials) http.Handler {
	h := testimonials.NewHandler(testimonialsvc.New(store), nil, zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/api/testimonials", testimonials.Routes(h, nil))
	return r
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seed(store *testutil.MemTestimonials, n int, active func(i int) bool) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		store.Items[id] = models.Testimonial{
			ID:        id,
			Text:      "Quoted praise for the platform.",
			Author:    "Author",
			Role:      "Teacher",
			School:    "School",
			Rating:    5,
			IsActive:  active(i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
}

func decodeList(t *testing.T, rec *testutil.ResponseRecorder) []models.Testimonial {
	t.Helper()
	var out []models.Testimonial
	require.NoError(t, json.Unmarshal(rec.DecodeEnvelope(t).Data, &out))
	return out
}

func TestList_DefaultsToActiveAndSix(t *testing.T) {
	store := testutil.NewMemTestimonials()
	seed(store, 10, func(i int) bool { return i != 9 })
	router := newRouter(store)

	rec := serve(router, testutil.NewRequest("GET", "/api/testimonials/"))
	rec.AssertStatus(t, http.StatusOK)

	items := decodeList(t, rec)
	require.Len(t, items, testimonialsvc.DefaultLimit)
	assert.Equal(t, "i", items[0].ID, "newest active first")
	for _, it := range items {
		assert.True(t, it.IsActive)
	}
}

func TestList_InactiveIncludedAndClamped(t *testing.T) {
	store := testutil.NewMemTestimonials()
	seed(store, 25, func(i int) bool { return i%2 == 0 })
	router := newRouter(store)

	rec := serve(router, testutil.NewRequest("GET", "/api/testimonials?active=false&limit=100"))
	rec.AssertStatus(t, http.StatusOK)
	assert.Len(t, decodeList(t, rec), testimonialsvc.MaxLimit)
}

func TestList_EmptyIsArray(t *testing.T) {
	router := newRouter(testutil.NewMemTestimonials())
	rec := serve(router, testutil.NewRequest("GET", "/api/testimonials/"))
	rec.AssertStatus(t, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestList_BadParams(t *testing.T) {
	router := newRouter(testutil.NewMemTestimonials())
	for _, target := range []string{
		"/api/testimonials/?limit=0",
		"/api/testimonials/?limit=x",
		"/api/testimonials/?active=maybe",
	} {
		serve(router, testutil.NewRequest("GET", target)).AssertStatus(t, http.StatusBadRequest)
	}
}

func TestCreate(t *testing.T) {
	store := testutil.NewMemTestimonials()
	router := newRouter(store)

	rec := serve(router, testutil.NewJSONRequest(t, "POST", "/api/testimonials/", map[string]any{
		"text":   "Parent-teacher messaging has never been easier.",
		"author": "Lisa Park",
		"role":   "Guidance Counselor",
		"school": "Maplewood Elementary",
	}))
	rec.AssertStatus(t, http.StatusOK)

	env := rec.DecodeEnvelope(t)
	assert.Equal(t, testimonials.CreatedMessage, env.Message)
	var got models.Testimonial
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 5, got.Rating)
	assert.True(t, got.IsActive)
	assert.Len(t, store.Items, 1)
}

func TestCreate_RatingOutOfRange(t *testing.T) {
	store := testutil.NewMemTestimonials()
	router := newRouter(store)

	rec := serve(router, testutil.NewJSONRequest(t, "POST", "/api/testimonials/", map[string]any{
		"text":   "Parent-teacher messaging has never been easier.",
		"author": "Lisa Park",
		"role":   "Guidance Counselor",
		"school": "Maplewood Elementary",
		"rating": 6,
	}))
	rec.AssertStatus(t, http.StatusBadRequest)

	var fp envelope.FieldProblem
	require.NoError(t, json.Unmarshal(rec.DecodeEnvelope(t).Data, &fp))
	assert.Equal(t, "rating", fp.Field)
	assert.Equal(t, "range", fp.Constraint)
	assert.Empty(t, store.Items)
}

func TestToggle(t *testing.T) {
	store := testutil.NewMemTestimonials()
	seed(store, 1, func(int) bool { return true })
	router := newRouter(store)

	rec := serve(router, testutil.NewRequest("PATCH", "/api/testimonials/a/toggle"))
	rec.AssertStatus(t, http.StatusOK)
	env := rec.DecodeEnvelope(t)
	assert.Equal(t, "Testimonial deactivated", env.Message)
	assert.JSONEq(t, `{"id":"a","is_active":false}`, string(env.Data))

	rec = serve(router, testutil.NewRequest("PATCH", "/api/testimonials/a/toggle"))
	rec.AssertStatus(t, http.StatusOK)
	assert.Equal(t, "Testimonial activated", rec.DecodeEnvelope(t).Message)
	assert.True(t, store.Items["a"].IsActive)
}

func TestToggle_NotFound(t *testing.T) {
	router := newRouter(testutil.NewMemTestimonials())
	rec := serve(router, testutil.NewRequest("PATCH", "/api/testimonials/missing/toggle"))
	rec.AssertStatus(t, http.StatusNotFound)
	assert.Equal(t, "Testimonial not found", rec.DecodeEnvelope(t).Error)
}
