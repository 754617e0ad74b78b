// internal/domain/models/contact.go
package models

import "time"

// ContactStatus is the triage state of a contact-form submission.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
)

// ContactStatuses lists every valid status in triage order.
var ContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusResolved,
}

// Valid reports whether s is one of the known statuses.
func (s ContactStatus) Valid() bool {
	for _, v := range ContactStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ContactSubmission is a public contact-form entry awaiting triage.
// Submissions are created by the public form and only ever mutated through
// a status transition; this service never deletes them.
type ContactSubmission struct {
	ID      string        `bson:"_id" json:"id"`
	Name    string        `bson:"name" json:"name"`
	Email   string        `bson:"email" json:"email"` // always lowercase
	School  *string       `bson:"school,omitempty" json:"school"`
	Phone   *string       `bson:"phone,omitempty" json:"phone"` // stored as typed
	Message string        `bson:"message" json:"message"`
	Status  ContactStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
