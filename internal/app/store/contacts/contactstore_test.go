package contactstore_test

import (
	"testing"
	"time"

	contactstore "github.com/edumanage/schoolsite/internal/app/store/contacts"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/edumanage/schoolsite/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	school := "Greenwood Elementary"
	c := models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		School:    &school,
		Message:   "We would like a demo for our district.",
		Status:    models.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != c.Email || got.Status != models.ContactStatusNew {
		t.Errorf("got %+v, want %+v", got, c)
	}
	if got.School == nil || *got.School != school {
		t.Errorf("School: got %v, want %q", got.School, school)
	}
	if got.Phone != nil {
		t.Errorf("Phone: got %v, want nil", *got.Phone)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, now)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, uuid.NewString())
	if err != mongo.ErrNoDocuments {
		t.Fatalf("err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	var emails []string
	for i := 0; i < 5; i++ {
		status := models.ContactStatusNew
		if i%2 == 1 {
			status = models.ContactStatusResolved
		}
		c := fx.CreateContact(ctx, uuid.NewString()+"@example.com", status, base.Add(time.Duration(i)*time.Minute))
		emails = append(emails, c.Email)
	}

	// Newest first: page 2 of size 2 holds the 3rd and 4th newest.
	page, err := store.List(ctx, "", 2, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len = %d, want 2", len(page))
	}
	if page[0].Email != emails[2] || page[1].Email != emails[1] {
		t.Errorf("page order: got %s,%s want %s,%s", page[0].Email, page[1].Email, emails[2], emails[1])
	}

	total, err := store.Count(ctx, "")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Count: got %d, want 5", total)
	}

	resolved, err := store.Count(ctx, models.ContactStatusResolved)
	if err != nil {
		t.Fatalf("Count(resolved) failed: %v", err)
	}
	if resolved != 2 {
		t.Errorf("Count(resolved): got %d, want 2", resolved)
	}

	onlyNew, err := store.List(ctx, models.ContactStatusNew, 0, 10)
	if err != nil {
		t.Fatalf("List(new) failed: %v", err)
	}
	if len(onlyNew) != 3 {
		t.Errorf("List(new): got %d, want 3", len(onlyNew))
	}
	for _, c := range onlyNew {
		if c.Status != models.ContactStatusNew {
			t.Errorf("unexpected status %q in filtered list", c.Status)
		}
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContact(ctx, "status@example.com", models.ContactStatusNew, time.Now().Add(-time.Minute))
	at := time.Now().UTC().Truncate(time.Millisecond)

	matched, err := store.UpdateStatus(ctx, c.ID, models.ContactStatusInProgress, at)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ContactStatusInProgress {
		t.Errorf("Status: got %q, want in_progress", got.Status)
	}
	if !got.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt: got %v, want %v", got.UpdatedAt, at)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, c.CreatedAt)
	}

	matched, err = store.UpdateStatus(ctx, uuid.NewString(), models.ContactStatusResolved, at)
	if err != nil {
		t.Fatalf("UpdateStatus(unknown) failed: %v", err)
	}
	if matched {
		t.Error("expected no match for unknown id")
	}
}
