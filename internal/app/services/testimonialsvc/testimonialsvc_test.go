package testimonialsvc

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeStore struct {
	items  map[string]models.Testimonial
	writes int
	// vanish deletes the record between read and write.
	vanish bool
	getErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]models.Testimonial{}}
}

func (f *fakeStore) Create(_ context.Context, t models.Testimonial) error {
	f.writes++
	f.items[t.ID] = t
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (models.Testimonial, error) {
	if f.getErr != nil {
		return models.Testimonial{}, f.getErr
	}
	t, ok := f.items[id]
	if !ok {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	if f.vanish {
		delete(f.items, id)
	}
	return t, nil
}

func (f *fakeStore) List(_ context.Context, activeOnly bool, limit int64) ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, t := range f.items {
		if !activeOnly || t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SetActive(_ context.Context, id string, active bool, at time.Time) (bool, error) {
	t, ok := f.items[id]
	if !ok {
		return false, nil
	}
	f.writes++
	t.IsActive = active
	t.UpdatedAt = at
	f.items[id] = t
	return true, nil
}

func intptr(n int) *int { return &n }

func validInput() Input {
	return Input{
		Text:   "The attendance module saved us ten hours a week.",
		Author: "Michael Chen",
		Role:   "Vice Principal",
		School: "Lincoln High School",
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := New(newFakeStore())

	got, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.DefaultTestimonialRating, got.Rating)
	assert.True(t, got.IsActive)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestCreate_Rating(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{5, false},
		{6, true},
	}
	for _, tt := range tests {
		store := newFakeStore()
		svc := New(store)
		in := validInput()
		in.Rating = intptr(tt.rating)

		got, err := svc.Create(context.Background(), in)
		if tt.wantErr {
			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve), "rating %d: err = %v", tt.rating, err)
			assert.Equal(t, "rating", ve.Field)
			assert.Equal(t, apperr.ConstraintRange, ve.Constraint)
			assert.Zero(t, store.writes)
			continue
		}
		require.NoError(t, err, "rating %d", tt.rating)
		assert.Equal(t, tt.rating, got.Rating)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Input)
		field      string
		constraint string
	}{
		{"short text", func(in *Input) { in.Text = "Too short" }, "text", apperr.ConstraintLength},
		{"missing author", func(in *Input) { in.Author = " " }, "author", apperr.ConstraintRequired},
		{"missing role", func(in *Input) { in.Role = "" }, "role", apperr.ConstraintRequired},
		{"markup school", func(in *Input) { in.School = "<p></p>" }, "school", apperr.ConstraintRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(newFakeStore())
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.constraint, ve.Constraint)
		})
	}
}

func seed(store *fakeStore) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, active := range []bool{true, false, true, true} {
		id := string(rune('a' + i))
		store.items[id] = models.Testimonial{
			ID:        id,
			IsActive:  active,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
}

func TestList(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := New(store)

	active, err := svc.List(context.Background(), ListParams{ActiveOnly: true, Limit: DefaultLimit})
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "d", active[0].ID)
	for _, tm := range active {
		assert.True(t, tm.IsActive)
	}

	all, err := svc.List(context.Background(), ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"d", "c"}, []string{all[0].ID, all[1].ID})

	clamped, err := svc.List(context.Background(), ListParams{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, clamped, 4)

	_, err = svc.List(context.Background(), ListParams{Limit: 0})
	assert.True(t, apperr.IsValidation(err))
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := New(newFakeStore())
	got, err := svc.List(context.Background(), ListParams{ActiveOnly: true, Limit: 6})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestToggleActive_TwiceRestores(t *testing.T) {
	store := newFakeStore()
	seed(store)
	svc := New(store)

	first, err := svc.ToggleActive(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, first)
	assert.False(t, store.items["a"].IsActive)

	second, err := svc.ToggleActive(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, second)
	assert.True(t, store.items["a"].IsActive)
}

func TestToggleActive_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	_, err := svc.ToggleActive(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
	assert.Zero(t, store.writes)
}

func TestToggleActive_VanishesBeforeWrite(t *testing.T) {
	store := newFakeStore()
	seed(store)
	store.vanish = true
	svc := New(store)

	_, err := svc.ToggleActive(context.Background(), "a")
	assert.True(t, apperr.IsNotFound(err))
}

func TestToggleActive_StorageError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("server selection timeout")
	svc := New(store)

	_, err := svc.ToggleActive(context.Background(), "a")
	assert.True(t, apperr.IsStorage(err))
}
