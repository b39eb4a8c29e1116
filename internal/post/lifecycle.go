package post

import (
	"errors"
	"fmt"
	"strings"
)

// Policy controls whether the store enforces the transition table.
type Policy int

const (
	// PolicyStrict rejects transitions from a status outside the allowed set.
	PolicyStrict Policy = iota
	// PolicyPermissive applies every transition unconditionally.
	PolicyPermissive
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyPermissive:
		return "permissive"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a config value to a Policy. The empty string means strict.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "strict":
		return PolicyStrict, nil
	case "permissive":
		return PolicyPermissive, nil
	}
	return 0, fmt.Errorf("unknown lifecycle policy: %q", raw)
}

var (
	// ErrInvalidTransition is matched by every *TransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIncomplete is returned when validating a post with a blank
	// title, text or image URL under the strict policy.
	ErrIncomplete = errors.New("post is missing required fields")
)

// transitions maps a target status to the source statuses it may be reached from.
var transitions = map[Status][]Status{
	StatusValidated: {StatusDraft},
	StatusPosted:    {StatusValidated},
	StatusDeleted:   {StatusDraft},
}

// CanTransition reports whether the table allows moving from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// TransitionError describes a rejected lifecycle transition.
type TransitionError struct {
	ID   string
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("post %s: cannot move from %s to %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// check returns an error if the policy forbids moving p to the target status.
func (pol Policy) check(p *Post, to Status) error {
	if pol == PolicyPermissive {
		return nil
	}
	if !CanTransition(p.Status, to) {
		return &TransitionError{ID: p.ID, From: p.Status, To: to}
	}
	if to == StatusValidated && !p.Complete() {
		return fmt.Errorf("post %s: %w", p.ID, ErrIncomplete)
	}
	return nil
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
