package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"postgen/internal/config"
	"postgen/internal/encryption"
	"postgen/internal/post"
	"postgen/internal/slot"
)

// ErrNotFound is returned by operations addressing an id that is not stored.
var ErrNotFound = errors.New("post not found")

// Options carries per-invocation inputs that do not live in the config file.
// Zero values select the production defaults.
type Options struct {
	Passphrase string    // unlocks the age private key when encryption is enabled
	Seed       int64     // overrides the configured generator seed when non-zero
	Stderr     io.Writer // receives a copy of the log; nil logs to the file only

	Clock post.Clock
	IDs   post.IDGenerator
	Rand  post.Rand
}

// PostgenApp is the application layer between the CLI and the post store.
// It constructs all dependencies from config, exposes the operations the CLI
// runs, and records the outcome of the invocation on Close.
type PostgenApp struct {
	cfg       *config.Config
	slot      post.Slot
	store     *post.Store
	generator *post.Generator
	clock     post.Clock
	logger    post.Logger
	op        *Operation
	logFile   *os.File
}

// NewPostgenApp creates a fully wired PostgenApp from the given config.
// operation identifies the CLI command being run (e.g. "Generate", "Publish").
// The caller must call Close when done.
func NewPostgenApp(cfg *config.Config, operation string, opts Options) (*PostgenApp, error) {
	clock := opts.Clock
	if clock == nil {
		clock = post.RealClock{}
	}
	ids := opts.IDs
	if ids == nil {
		ids = post.UUIDGenerator{}
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	policy, err := post.ParsePolicy(cfg.Lifecycle.Policy)
	if err != nil {
		return nil, err
	}

	op := NewOperation(operation, clock.Now())
	l, logFile, err := newLogger(cfg.LogDir, op.ID(), level, opts.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: l}

	s, err := openSlot(cfg, opts.Passphrase)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		seed := cfg.Generator.Seed
		if opts.Seed != 0 {
			seed = opts.Seed
		}
		rng = post.NewSeededRand(seed)
	}

	logger.Debug("operation started", "operation", operation, "slot", cfg.Slot.Type, "policy", policy)

	return &PostgenApp{
		cfg:   cfg,
		slot:  s,
		store: post.NewStore(s, clock, logger, post.WithPolicy(policy)),
		generator: post.NewGenerator(rng, ids, clock,
			post.WithImageSize(cfg.Generator.ImageWidth, cfg.Generator.ImageHeight)),
		clock:   clock,
		logger:  logger,
		op:      op,
		logFile: logFile,
	}, nil
}

// openSlot creates the configured backend and layers compression and
// encryption over it.
func openSlot(cfg *config.Config, passphrase string) (post.Slot, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	var dec post.DecryptionContext
	if enc != nil {
		if !enc.IsConfigured() {
			return nil, fmt.Errorf("encryption is enabled but not initialized: run 'postgen config encryption init'")
		}
		dec, err = enc.Unlock(passphrase)
		if err != nil {
			return nil, fmt.Errorf("unlocking encryption key: %w", err)
		}
	}

	backend, err := slot.NewSlotFromConfig(cfg.Slot)
	if err != nil {
		return nil, fmt.Errorf("creating slot: %w", err)
	}

	s, err := slot.Decorate(backend, cfg.Slot.Compress, enc, dec)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("decorating slot: %w", err)
	}
	return s, nil
}

// InitEncryption generates the key pair for the configured encryption type.
func InitEncryption(cfg *config.Config, passphrase string) error {
	if !cfg.Encryption.Enabled() {
		return fmt.Errorf("encryption is disabled in config: set encryption.type to \"age\"")
	}
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up encryption: %w", err)
	}
	return nil
}

// Generate creates count drafts and stores them. Drafts are returned in
// generation order; the store lists the newest first.
func (a *PostgenApp) Generate(count int) ([]post.Post, error) {
	if count < 1 {
		return nil, a.track(fmt.Errorf("count must be at least 1, got %d", count))
	}
	out := make([]post.Post, 0, count)
	for i := 0; i < count; i++ {
		p, err := a.store.AddDraft(a.generator.Draft())
		if err != nil {
			return out, a.track(fmt.Errorf("storing draft: %w", err))
		}
		out = append(out, p)
	}
	return out, nil
}

// List returns the stored posts with the given status. An empty status or
// "all" returns the whole collection.
func (a *PostgenApp) List(status string) ([]post.Post, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "all":
		return a.store.All(), nil
	}
	s, err := post.ParseStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return nil, a.track(err)
	}
	return a.store.ByStatus(s), nil
}

// Show returns the post with the given id.
func (a *PostgenApp) Show(id string) (post.Post, error) {
	p, ok := a.store.Get(id)
	if !ok {
		return post.Post{}, a.track(fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	return p, nil
}

// Edit applies patch to the post with the given id.
func (a *PostgenApp) Edit(id string, patch post.Patch) (post.Post, error) {
	return a.found(id)(a.store.Edit(id, patch))
}

// RegenerateImage replaces the image URL with one derived from the current title.
func (a *PostgenApp) RegenerateImage(id string) (post.Post, error) {
	p, err := a.Show(id)
	if err != nil {
		return post.Post{}, err
	}
	url := a.generator.Image(p.Title)
	return a.Edit(id, post.Patch{ImageURL: &url})
}

// RegenerateText replaces the text with a fresh body for the current title.
func (a *PostgenApp) RegenerateText(id string) (post.Post, error) {
	p, err := a.Show(id)
	if err != nil {
		return post.Post{}, err
	}
	text := a.generator.Text(p.Title)
	return a.Edit(id, post.Patch{Text: &text})
}

// Validate moves a draft to validated.
func (a *PostgenApp) Validate(id string) (post.Post, error) {
	return a.found(id)(a.store.Validate(id))
}

// Publish moves a validated post to posted.
func (a *PostgenApp) Publish(id string) (post.Post, error) {
	return a.found(id)(a.store.Publish(id))
}

// Delete soft-deletes a draft.
func (a *PostgenApp) Delete(id string) (post.Post, error) {
	return a.found(id)(a.store.Remove(id))
}

// found converts the store's nil result for a missing id into ErrNotFound.
func (a *PostgenApp) found(id string) func(*post.Post, error) (post.Post, error) {
	return func(p *post.Post, err error) (post.Post, error) {
		if err != nil {
			return post.Post{}, a.track(err)
		}
		if p == nil {
			return post.Post{}, a.track(fmt.Errorf("%w: %s", ErrNotFound, id))
		}
		return *p, nil
	}
}

func (a *PostgenApp) track(err error) error {
	a.op.Fail(err)
	return err
}

// Close logs the outcome of the operation and closes the slot and log file.
func (a *PostgenApp) Close() error {
	var firstErr error

	duration := a.op.Duration(a.clock.Now()).Truncate(time.Millisecond)
	if a.op.Failed() {
		a.logger.Error("operation finished", "operation", a.op.Name, "status", a.op.Status, "duration", duration, "error", a.op.Err)
	} else {
		a.logger.Info("operation finished", "operation", a.op.Name, "status", a.op.Status, "duration", duration)
	}

	if err := a.slot.Close(); err != nil {
		firstErr = fmt.Errorf("closing slot: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
