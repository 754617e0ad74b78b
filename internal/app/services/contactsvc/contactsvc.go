// Package contactsvc accepts public contact-form submissions and lets the
// back office page through them and move them along the triage states.
package contactsvc

import (
	"context"
	"strings"
	"time"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/edumanage/schoolsite/internal/app/system/htmlsanitize"
	"github.com/edumanage/schoolsite/internal/app/system/inputval"
	"github.com/edumanage/schoolsite/internal/app/system/paging"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/google/uuid"
)

// List defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

const statusTag = "omitempty,oneof=new in_progress resolved"

// Store is the persistence the service needs; contactstore.Store satisfies it.
type Store interface {
	Create(ctx context.Context, c models.ContactSubmission) error
	List(ctx context.Context, status models.ContactStatus, skip, limit int64) ([]models.ContactSubmission, error)
	Count(ctx context.Context, status models.ContactStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus, at time.Time) (bool, error)
}

// Input is a contact form as submitted.
type Input struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,min=5,max=100,emailshape"`
	School  *string `json:"school" validate:"omitempty,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=20,phonedigits"`
	Message string  `json:"message" validate:"required,min=1,max=1000"`
}

// ListParams selects one page of submissions. An empty Status lists all.
type ListParams struct {
	Status string
	Page   int
	Limit  int
}

// ListResult is a page of submissions plus its pagination metadata.
type ListResult struct {
	Submissions []models.ContactSubmission `json:"submissions"`
	Pagination  paging.Pagination          `json:"pagination"`
}

// Service applies the contact submission rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// New returns a Service backed by store.
func New(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: uuid.NewString,
	}
}

// Submit cleans and validates in, then stores it as a new submission.
func (s *Service) Submit(ctx context.Context, in Input) (models.ContactSubmission, error) {
	in = clean(in)
	if err := inputval.Struct(in); err != nil {
		return models.ContactSubmission{}, err
	}

	now := s.now()
	c := models.ContactSubmission{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		School:    in.School,
		Phone:     in.Phone,
		Message:   in.Message,
		Status:    models.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return models.ContactSubmission{}, apperr.Storage("contacts.create", err)
	}
	return c, nil
}

// clean strips markup from free text, trims, lowercases the email, and drops
// blank optional fields. The phone is kept exactly as typed.
func clean(in Input) Input {
	in.Name = strings.TrimSpace(htmlsanitize.PlainText(in.Name))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(htmlsanitize.PlainText(in.Message))
	in.School = trimPtr(htmlsanitize.PlainTextPtr(inputval.BlankToNil(in.School)))
	in.Phone = inputval.BlankToNil(in.Phone)
	return in
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// List returns submissions newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	if err := inputval.Var("status", p.Status, statusTag); err != nil {
		return ListResult{}, err
	}
	pg, err := paging.Normalize(p.Page, p.Limit, MaxLimit)
	if err != nil {
		return ListResult{}, err
	}

	status := models.ContactStatus(p.Status)
	items, err := s.store.List(ctx, status, pg.Skip(), int64(pg.Limit))
	if err != nil {
		return ListResult{}, apperr.Storage("contacts.list", err)
	}
	total, err := s.store.Count(ctx, status)
	if err != nil {
		return ListResult{}, apperr.Storage("contacts.count", err)
	}
	if items == nil {
		items = []models.ContactSubmission{}
	}
	return ListResult{Submissions: items, Pagination: paging.NewPagination(pg, total)}, nil
}

// UpdateStatus moves the submission to status. The status is checked before
// anything is written.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if err := inputval.Var("status", status, "required,oneof=new in_progress resolved"); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.NotFound("contact submission", id)
	}

	matched, err := s.store.UpdateStatus(ctx, id, models.ContactStatus(status), s.now())
	if err != nil {
		return apperr.Storage("contacts.update_status", err)
	}
	if !matched {
		return apperr.NotFound("contact submission", id)
	}
	return nil
}
