// Package render formats posts for terminal output.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"postgen/internal/post"
)

var statusColors = map[post.Status]lipgloss.Color{
	post.StatusDraft:     lipgloss.Color("244"),
	post.StatusValidated: lipgloss.Color("33"),
	post.StatusPosted:    lipgloss.Color("35"),
	post.StatusDeleted:   lipgloss.Color("160"),
}

var (
	badgeStyle = lipgloss.NewStyle().Bold(true).Width(9)
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	titleStyle = lipgloss.NewStyle().Bold(true)
	bodyStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

const timeLayout = "2006-01-02 15:04:05"

// Badge renders the status as a fixed-width colored label.
func Badge(s post.Status) string {
	style := badgeStyle
	if c, ok := statusColors[s]; ok {
		style = style.Foreground(c)
	}
	return style.Render(strings.ToUpper(s.String()))
}

// Summary renders a post as a single line: status, id and title.
func Summary(p post.Post) string {
	return fmt.Sprintf("%s %s  %s", Badge(p.Status), idStyle.Render(p.ID), p.Title)
}

// List renders one summary line per post, or a notice when there are none.
func List(posts []post.Post) string {
	if len(posts) == 0 {
		return "No posts found."
	}
	lines := make([]string, len(posts))
	for i, p := range posts {
		lines[i] = Summary(p)
	}
	return strings.Join(lines, "\n")
}

// Detail renders every field of a post. Unset transition times are omitted.
func Detail(p post.Post) string {
	rows := []string{
		titleStyle.Render(p.Title),
		field("id", idStyle.Render(p.ID)),
		field("status", Badge(p.Status)),
		field("image", p.ImageURL),
		field("created", formatTime(p.CreatedAt)),
		field("updated", formatTime(p.UpdatedAt)),
	}
	for _, t := range []struct {
		label string
		at    time.Time
	}{
		{"validated", p.ValidatedAt},
		{"posted", p.PostedAt},
		{"deleted", p.DeletedAt},
	} {
		if !t.at.IsZero() {
			rows = append(rows, field(t.label, formatTime(t.at)))
		}
	}
	rows = append(rows, bodyStyle.Render(p.Text))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func field(label, value string) string {
	return labelStyle.Render(label) + value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
