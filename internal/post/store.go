package post

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingID is returned when a post without an id is submitted for storage.
	ErrMissingID = errors.New("post has no id")

	// ErrInvalidStatus is returned when a post with an empty or unknown status
	// is submitted for storage. Such records would be skipped on the next read.
	ErrInvalidStatus = errors.New("post has an invalid status")
)

// Store is the single source of truth for post records.
// Every operation reads the whole collection from the slot and every
// mutation writes it back; nothing is cached between calls.
// Store is not safe for concurrent writers.
type Store struct {
	slot   Slot
	clock  Clock
	logger Logger
	policy Policy
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPolicy sets the lifecycle policy. The default is PolicyStrict.
func WithPolicy(p Policy) StoreOption {
	return func(s *Store) { s.policy = p }
}

// NewStore creates a Store backed by slot.
func NewStore(slot Slot, clock Clock, logger Logger, opts ...StoreOption) *Store {
	s := &Store{
		slot:   slot,
		clock:  clock,
		logger: logger,
		policy: PolicyStrict,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the lifecycle policy in effect.
func (s *Store) Policy() Policy { return s.policy }

// All returns the full collection in stored order.
func (s *Store) All() []Post {
	return s.query()
}

// Get looks up a post by id.
func (s *Store) Get(id string) (Post, bool) {
	posts := s.query()
	if i := indexOf(posts, id); i >= 0 {
		return posts[i], true
	}
	return Post{}, false
}

// ByStatus returns the posts with the given status, preserving stored order.
func (s *Store) ByStatus(status Status) []Post {
	var out []Post
	for _, p := range s.query() {
		if p.Status == status {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []Post{}
	}
	return out
}

// AddDraft stores p as a draft. The status is forced to draft, CreatedAt is
// set only if zero, and UpdatedAt is refreshed. New ids are inserted at the
// front; existing ids are overwritten.
func (s *Store) AddDraft(p Post) (Post, error) {
	now := s.now()
	p.Status = StatusDraft
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.upsert(p); err != nil {
		return Post{}, err
	}
	s.logger.Info("draft added", "id", p.ID)
	return p, nil
}

// Update refreshes UpdatedAt and upserts p. The incoming status is kept as is,
// but it must be one of the known statuses.
func (s *Store) Update(p Post) (Post, error) {
	p.UpdatedAt = s.now()
	if err := s.upsert(p); err != nil {
		return Post{}, err
	}
	s.logger.Info("post updated", "id", p.ID, "status", p.Status)
	return p, nil
}

// Edit applies patch to the stored post with the given id.
// It returns nil, nil if no such post exists.
func (s *Store) Edit(id string, patch Patch) (*Post, error) {
	posts, err := s.read()
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, id)
	if i < 0 {
		s.logger.Debug("edit skipped, post not found", "id", id)
		return nil, nil
	}
	p := &posts[i]
	if patch.Empty() {
		out := *p
		return &out, nil
	}

	patch.apply(p)
	p.UpdatedAt = s.now()
	if err := s.write(posts); err != nil {
		return nil, err
	}
	s.logger.Info("post edited", "id", id)
	out := *p
	return &out, nil
}

// Validate moves the post to validated and stamps ValidatedAt.
// It returns nil, nil if no such post exists.
func (s *Store) Validate(id string) (*Post, error) {
	return s.transition(id, StatusValidated, func(p *Post, t time.Time) { p.ValidatedAt = t })
}

// Publish moves the post to posted and stamps PostedAt.
// It returns nil, nil if no such post exists.
func (s *Store) Publish(id string) (*Post, error) {
	return s.transition(id, StatusPosted, func(p *Post, t time.Time) { p.PostedAt = t })
}

// Remove soft-deletes the post: the record stays in storage with status
// deleted and DeletedAt stamped. It returns nil, nil if no such post exists.
func (s *Store) Remove(id string) (*Post, error) {
	return s.transition(id, StatusDeleted, func(p *Post, t time.Time) { p.DeletedAt = t })
}

func (s *Store) transition(id string, to Status, stamp func(*Post, time.Time)) (*Post, error) {
	posts, err := s.read()
	if err != nil {
		return nil, err
	}
	i := indexOf(posts, id)
	if i < 0 {
		s.logger.Debug("transition skipped, post not found", "id", id, "to", to)
		return nil, nil
	}
	p := &posts[i]
	if err := s.policy.check(p, to); err != nil {
		s.logger.Warn("transition rejected", "id", id, "from", p.Status, "to", to, "error", err)
		return nil, err
	}

	from := p.Status
	now := s.now()
	p.Status = to
	stamp(p, now)
	p.UpdatedAt = now

	if err := s.write(posts); err != nil {
		return nil, err
	}
	s.logger.Info("post transitioned", "id", id, "from", from, "to", to)
	out := *p
	return &out, nil
}

func (s *Store) upsert(p Post) error {
	if p.ID == "" {
		return ErrMissingID
	}
	if !p.Status.Valid() {
		return fmt.Errorf("post %s: %w: %q", p.ID, ErrInvalidStatus, p.Status)
	}
	posts, err := s.read()
	if err != nil {
		return err
	}
	if i := indexOf(posts, p.ID); i >= 0 {
		posts[i] = p
	} else {
		posts = append([]Post{p}, posts...)
	}
	return s.write(posts)
}

// query loads the collection for read-only use. Slot failures are logged
// and masked as an empty collection.
func (s *Store) query() []Post {
	posts, err := s.read()
	if err != nil {
		s.logger.Error("reading posts failed, using empty collection", "error", err)
		return []Post{}
	}
	return posts
}

// read loads and decodes the collection. Only slot errors are returned;
// malformed content decodes to an empty or partial collection.
func (s *Store) read() ([]Post, error) {
	data, err := s.slot.Load()
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	return s.decode(data), nil
}

func (s *Store) decode(data []byte) []Post {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Post{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("stored posts are not a JSON array, using empty collection", "error", err)
		return []Post{}
	}

	posts := make([]Post, 0, len(items))
	for i, item := range items {
		var p Post
		if err := json.Unmarshal(item, &p); err != nil {
			s.logger.Warn("skipping malformed post", "index", i, "error", err)
			continue
		}
		if p.ID == "" || !p.Status.Valid() {
			s.logger.Warn("skipping invalid post", "index", i, "id", p.ID, "status", p.Status)
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

func (s *Store) write(posts []Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}
	if err := s.slot.Save(data); err != nil {
		return fmt.Errorf("saving posts: %w", err)
	}
	s.logger.Debug("posts saved", "count", len(posts), "bytes", len(data))
	return nil
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

func indexOf(posts []Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
