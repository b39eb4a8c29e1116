package post

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var topics = []string{
	"AI productivity", "Remote work", "Leadership", "Career growth", "Developer tools", "Open source",
	"Design systems", "Product strategy", "Team culture", "Testing", "Performance", "Security",
}

var titleFormats = []string{
	"Thoughts on %s",
	"%s in practice",
	"Making the most of %s",
	"%s: what works for us",
}

var bodyTemplates = []func(topic string, year int) string{
	func(topic string, _ int) string {
		return fmt.Sprintf("Quick tip on %s: start small, measure impact, iterate fast. Consistency beats intensity. #%s",
			topic, whitespace.ReplaceAllString(topic, ""))
	},
	func(topic string, _ int) string {
		return fmt.Sprintf("Lessons learned shipping a feature around %s:\n- Define success clearly\n- Align early with stakeholders\n- Ship in slices\nWhat would you add?", topic)
	},
	func(topic string, year int) string {
		return fmt.Sprintf("Why %s matters in %d: it helps teams focus on outcomes, not output. The best teams are ruthlessly simple.", topic, year)
	},
}

const (
	imageBaseURL       = "https://picsum.photos/seed/"
	fallbackKeyword    = "post"
	maxKeywordLen      = 24
	defaultImageWidth  = 800
	defaultImageHeight = 450
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	qualifier   = regexp.MustCompile(`\s+in\b.*`)
	nonAlphanum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Generator produces placeholder draft posts from fixed topic and template lists.
// It is not safe for concurrent use.
type Generator struct {
	rng    Rand
	idgen  IDGenerator
	clock  Clock
	width  int
	height int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithImageSize sets the dimensions used in generated image URLs.
// Non-positive values keep the default.
func WithImageSize(width, height int) GeneratorOption {
	return func(g *Generator) {
		if width > 0 {
			g.width = width
		}
		if height > 0 {
			g.height = height
		}
	}
}

// NewGenerator creates a Generator using the given sources of randomness, ids and time.
func NewGenerator(rng Rand, idgen IDGenerator, clock Clock, opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng:    rng,
		idgen:  idgen,
		clock:  clock,
		width:  defaultImageWidth,
		height: defaultImageHeight,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Title returns a random topic phrased with a random title format.
func (g *Generator) Title() string {
	return fmt.Sprintf(pick(g.rng, titleFormats), g.topic())
}

// Text returns a body for the given title. The topic is the title cut at the
// first colon with any trailing "in ..." clause removed; a random topic is
// used when nothing remains.
func (g *Generator) Text(title string) string {
	topic := TopicFromTitle(title)
	if topic == "" {
		topic = g.topic()
	}
	return pick(g.rng, bodyTemplates)(topic, g.clock.Now().Year())
}

// Image returns a placeholder image URL for seed. The URL depends only on
// the keyword derived from seed; an empty seed uses a random topic.
func (g *Generator) Image(seed string) string {
	if strings.TrimSpace(seed) == "" {
		seed = g.topic()
	}
	k := Keyword(seed)
	return fmt.Sprintf("%s%s/%d/%d", imageBaseURL, url.PathEscape(k+"-lg"), g.width, g.height)
}

// Draft returns a new draft post with a fresh id. Text and image are derived
// from the generated title.
func (g *Generator) Draft() Post {
	title := g.Title()
	now := g.clock.Now().UTC()
	return Post{
		ID:        g.idgen.New(),
		Title:     title,
		Text:      g.Text(title),
		ImageURL:  g.Image(title),
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Generator) topic() string {
	return pick(g.rng, topics)
}

// TopicFromTitle extracts the topic token from a post title.
func TopicFromTitle(title string) string {
	topic, _, _ := strings.Cut(title, ":")
	topic = qualifier.ReplaceAllString(topic, "")
	return strings.TrimSpace(topic)
}

// Keyword normalizes s for use in an image URL: lowercased, runs of
// characters outside [a-z0-9] collapsed to "-", at most 24 bytes long.
// It never returns an empty string.
func Keyword(s string) string {
	k := nonAlphanum.ReplaceAllString(strings.ToLower(s), "-")
	k = strings.Trim(k, "-")
	if len(k) > maxKeywordLen {
		k = strings.TrimRight(k[:maxKeywordLen], "-")
	}
	if k == "" {
		return fallbackKeyword
	}
	return k
}

func pick[T any](rng Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
