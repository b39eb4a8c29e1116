package post_test

import (
	"errors"
	"testing"

	"postgen/internal/post"
	"postgen/internal/testutil"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to post.Status
		want     bool
	}{
		{from: post.StatusDraft, to: post.StatusValidated, want: true},
		{from: post.StatusValidated, to: post.StatusPosted, want: true},
		{from: post.StatusDraft, to: post.StatusDeleted, want: true},
		{from: post.StatusDraft, to: post.StatusPosted, want: false},
		{from: post.StatusValidated, to: post.StatusDeleted, want: false},
		{from: post.StatusPosted, to: post.StatusDeleted, want: false},
		{from: post.StatusDeleted, to: post.StatusDraft, want: false},
		{from: post.StatusPosted, to: post.StatusValidated, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := post.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		raw     string
		want    post.Policy
		wantErr bool
	}{
		{raw: "", want: post.PolicyStrict},
		{raw: "strict", want: post.PolicyStrict},
		{raw: " Permissive ", want: post.PolicyPermissive},
		{raw: "lenient", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := post.ParsePolicy(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStrictPolicy_RejectsOutOfOrderTransitions(t *testing.T) {
	store, slot, _ := testutil.NewTestStore()
	if _, err := store.AddDraft(completeDraft("a")); err != nil {
		t.Fatalf("AddDraft() error = %v", err)
	}
	saves := slot.Saves()

	_, err := store.Publish("a")
	if !errors.Is(err, post.ErrInvalidTransition) {
		t.Fatalf("Publish() on draft error = %v, want ErrInvalidTransition", err)
	}
	var terr *post.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("Publish() error %T is not a *TransitionError", err)
	}
	if terr.ID != "a" || terr.From != post.StatusDraft || terr.To != post.StatusPosted {
		t.Errorf("TransitionError = %+v", terr)
	}
	if slot.Saves() != saves {
		t.Error("rejected transition wrote to the slot")
	}

	got, _ := store.Get("a")
	if got.Status != post.StatusDraft || !got.PostedAt.IsZero() {
		t.Errorf("rejected transition changed the post: %+v", got)
	}
}

func TestStrictPolicy_TerminalStatuses(t *testing.T) {
	store, _, _ := testutil.NewTestStore()
	store.AddDraft(completeDraft("a"))
	if _, err := store.Remove("a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	for name, op := range map[string]func(string) (*post.Post, error){
		"validate": store.Validate,
		"publish":  store.Publish,
		"remove":   store.Remove,
	} {
		if _, err := op("a"); !errors.Is(err, post.ErrInvalidTransition) {
			t.Errorf("%s on deleted post error = %v, want ErrInvalidTransition", name, err)
		}
	}
}

func TestStrictPolicy_ValidateRequiresCompletePost(t *testing.T) {
	store, _, _ := testutil.NewTestStore()
	p := completeDraft("a")
	p.ImageURL = ""
	store.AddDraft(p)

	if _, err := store.Validate("a"); !errors.Is(err, post.ErrIncomplete) {
		t.Fatalf("Validate() error = %v, want ErrIncomplete", err)
	}

	image := "https://picsum.photos/seed/x-lg/800/450"
	if _, err := store.Edit("a", post.Patch{ImageURL: &image}); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	got, err := store.Validate("a")
	if err != nil {
		t.Fatalf("Validate() after completing post error = %v", err)
	}
	if got.Status != post.StatusValidated {
		t.Errorf("Status = %s, want validated", got.Status)
	}
}

func TestPermissivePolicy_AppliesAnyTransition(t *testing.T) {
	store, _, _ := testutil.NewTestStore(post.WithPolicy(post.PolicyPermissive))
	if store.Policy() != post.PolicyPermissive {
		t.Fatalf("Policy() = %v, want permissive", store.Policy())
	}

	p := completeDraft("a")
	p.Text = ""
	store.AddDraft(p)

	published, err := store.Publish("a")
	if err != nil {
		t.Fatalf("Publish() on draft error = %v", err)
	}
	if published.Status != post.StatusPosted {
		t.Errorf("Status = %s, want posted", published.Status)
	}

	removed, err := store.Remove("a")
	if err != nil {
		t.Fatalf("Remove() on posted error = %v", err)
	}
	if removed.Status != post.StatusDeleted || removed.PostedAt.IsZero() {
		t.Errorf("Remove() = %+v, want deleted with PostedAt kept", removed)
	}

	if _, err := store.Validate("a"); err != nil {
		t.Errorf("Validate() incomplete deleted post error = %v", err)
	}
}

func completeDraft(id string) post.Post {
	return post.Post{
		ID:       id,
		Title:    "Thoughts on Testing",
		Text:     "Quick tip on Testing",
		ImageURL: "https://picsum.photos/seed/thoughts-on-testing-lg/800/450",
	}
}
