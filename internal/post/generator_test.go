package post_test

import (
	"strings"
	"testing"
	"time"

	"postgen/internal/post"
	"postgen/internal/testutil"
)

func TestGenerator_DraftProperties(t *testing.T) {
	clock := testutil.FixedClock()
	ids := testutil.NewStubIDGenerator()
	gen := post.NewGenerator(post.NewSeededRand(42), ids, clock)

	var drafted []string
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		d := gen.Draft()
		if d.Status != post.StatusDraft {
			t.Errorf("Status = %s, want draft", d.Status)
		}
		if d.Title == "" || d.Text == "" || d.ImageURL == "" {
			t.Errorf("draft has empty fields: %+v", d)
		}
		if !d.CreatedAt.Equal(d.UpdatedAt) {
			t.Errorf("CreatedAt %v != UpdatedAt %v", d.CreatedAt, d.UpdatedAt)
		}
		if !d.Complete() {
			t.Errorf("generated draft is not complete: %+v", d)
		}
		if seen[d.ID] {
			t.Errorf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
		drafted = append(drafted, d.ID)
	}

	issued := ids.Issued()
	if len(issued) != len(drafted) {
		t.Fatalf("generator drew %d ids for %d drafts", len(issued), len(drafted))
	}
	for i := range issued {
		if issued[i] != drafted[i] {
			t.Errorf("draft %d has id %q, want %q", i, drafted[i], issued[i])
		}
	}
}

func TestGenerator_ThoughtsOnTesting(t *testing.T) {
	// format 0, topic 9 ("Testing"), body template 0
	gen := post.NewGenerator(testutil.NewSequenceRand(0, 9, 0), testutil.NewStubIDGenerator(), testutil.FixedClock())
	d := gen.Draft()

	if d.Title != "Thoughts on Testing" {
		t.Fatalf("Title = %q, want %q", d.Title, "Thoughts on Testing")
	}
	if !strings.Contains(d.Text, "Thoughts on Testing") {
		t.Errorf("Text = %q, want it to reference the topic", d.Text)
	}
	if !strings.HasSuffix(d.Text, "#ThoughtsonTesting") {
		t.Errorf("Text = %q, want hashtag #ThoughtsonTesting", d.Text)
	}
	want := "https://picsum.photos/seed/thoughts-on-testing-lg/800/450"
	if d.ImageURL != want {
		t.Errorf("ImageURL = %q, want %q", d.ImageURL, want)
	}
	if d.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", d.ID)
	}
}

func TestGenerator_TextUsesClockYear(t *testing.T) {
	clock := testutil.FixedClock()
	gen := post.NewGenerator(testutil.NewSequenceRand(2), testutil.NewStubIDGenerator(), clock)
	got := gen.Text("Security: what works for us")
	if !strings.Contains(got, "Why Security matters in 2025") {
		t.Errorf("Text() = %q", got)
	}

	clock.Set(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := gen.Text("Security"); !strings.Contains(got, "in 2031") {
		t.Errorf("Text() after Set(2031) = %q", got)
	}
}

func TestGenerator_TextWithoutTitle(t *testing.T) {
	// topic 3 ("Career growth"), body template 1
	gen := post.NewGenerator(testutil.NewSequenceRand(3, 1), testutil.NewStubIDGenerator(), testutil.FixedClock())
	got := gen.Text("")
	if !strings.Contains(got, "around Career growth") {
		t.Errorf("Text(\"\") = %q, want a random topic", got)
	}
}

func TestTopicFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Thoughts on Testing", want: "Thoughts on Testing"},
		{title: "Testing in practice", want: "Testing"},
		{title: "Security: what works for us", want: "Security"},
		{title: "Making the most of Remote work", want: "Making the most of Remote work"},
		{title: "Investing in people", want: "Investing"},
		{title: "Insights", want: "Insights"},
		{title: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := post.TopicFromTitle(tt.title); got != tt.want {
				t.Errorf("TopicFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Thoughts on Testing", want: "thoughts-on-testing"},
		{in: "  Hello, World!  ", want: "hello-world"},
		{in: "AI productivity", want: "ai-productivity"},
		{in: "Making the most of Design systems", want: "making-the-most-of-desig"},
		{in: "abcdefghijklmnopqrstuvw x", want: "abcdefghijklmnopqrstuvw"},
		{in: "", want: "post"},
		{in: "!!!", want: "post"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := post.Keyword(tt.in)
			if got != tt.want {
				t.Errorf("Keyword(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if len(got) > 24 {
				t.Errorf("Keyword(%q) has length %d, want <= 24", tt.in, len(got))
			}
		})
	}
}

func TestGenerator_Image(t *testing.T) {
	gen := post.NewGenerator(testutil.NewSequenceRand(0), testutil.NewStubIDGenerator(), testutil.FixedClock(),
		post.WithImageSize(1200, 0))

	a := gen.Image("Team culture")
	b := gen.Image("team   CULTURE!")
	if a != b {
		t.Errorf("Image() differs for equal keywords: %q vs %q", a, b)
	}
	if want := "https://picsum.photos/seed/team-culture-lg/1200/450"; a != want {
		t.Errorf("Image() = %q, want %q", a, want)
	}

	if got := gen.Image(""); got != "https://picsum.photos/seed/ai-productivity-lg/1200/450" {
		t.Errorf("Image(\"\") = %q, want random topic keyword", got)
	}
}
