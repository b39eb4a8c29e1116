package post

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusValidated Status = "validated"
	StatusPosted    Status = "posted"
	StatusDeleted   Status = "deleted"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusValidated, StatusPosted, StatusDeleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusValidated, StatusPosted, StatusDeleted:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status: %q", raw)
	}
	return s, nil
}

// Post is a single social-media post record.
// Optional transition timestamps are zero until the transition happens.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ImageURL    string    `json:"imageUrl"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ValidatedAt time.Time `json:"validatedAt,omitzero"`
	PostedAt    time.Time `json:"postedAt,omitzero"`
	DeletedAt   time.Time `json:"deletedAt,omitzero"`
}

// Complete reports whether the post has everything needed to be validated.
func (p *Post) Complete() bool {
	return notBlank(p.Title) && notBlank(p.Text) && notBlank(p.ImageURL)
}

// Patch holds optional field edits. Nil fields are left unchanged.
type Patch struct {
	Title    *string
	Text     *string
	ImageURL *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Text == nil && p.ImageURL == nil
}

func (p Patch) apply(dst *Post) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Text != nil {
		dst.Text = *p.Text
	}
	if p.ImageURL != nil {
		dst.ImageURL = *p.ImageURL
	}
}
