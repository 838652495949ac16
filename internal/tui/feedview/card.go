package feedview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindflow/internal/notes"
	"mindflow/internal/tui/theme"
)

const timeLayout = "2006-01-02 15:04"

// cardInnerWidth is the text width inside a card's border and padding
func cardInnerWidth(width int) int {
	w := width - 4
	if w < 10 {
		w = 10
	}
	return w
}

// moodBar renders a 10-slot gauge, e.g. ●●●●●○○○○○ 5/10
func moodBar(score int) string {
	if score < notes.MinMoodScore {
		score = notes.MinMoodScore
	}
	if score > notes.MaxMoodScore {
		score = notes.MaxMoodScore
	}
	return strings.Repeat("●", score) + strings.Repeat("○", notes.MaxMoodScore-score) +
		fmt.Sprintf(" %d/%d", score, notes.MaxMoodScore)
}

// renderCard renders one record. narrative renders the companion reply,
// typically as markdown. With showJSON the parsed payload is appended as
// indented JSON.
func renderCard(r notes.FeedRecord, width int, narrative func(string) string, showJSON bool) string {
	p := r.Payload
	inner := cardInnerWidth(width)
	wrap := lipgloss.NewStyle().Width(inner)

	var sections []string

	header := theme.Badge(p.Classification) + "  " +
		theme.Muted.Render(r.CreatedAt.Format(timeLayout)) + "  " +
		lipgloss.NewStyle().Foreground(theme.ClassificationColor(p.Classification)).Render(moodBar(p.MoodScore))
	sections = append(sections, header)

	sections = append(sections, theme.Bold.Render(wrap.Render(p.Title)))
	if p.Summary != "" {
		sections = append(sections, wrap.Render(p.Summary))
	}

	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = theme.Tag.Render("#" + t)
		}
		sections = append(sections, wrap.Render(strings.Join(tags, " ")))
	}

	if len(p.ActionItems) > 0 {
		var items []string
		for _, item := range p.ActionItems {
			if item.IsDone {
				items = append(items, theme.Done.Render("☑ "+item.Task))
			} else {
				items = append(items, "☐ "+item.Task)
			}
		}
		sections = append(sections, strings.Join(items, "\n"))
	}

	if p.RelatedContext != "" {
		sections = append(sections, theme.Muted.Render(wrap.Render("↳ "+p.RelatedContext)))
	}

	if p.AIComment != "" {
		sections = append(sections, theme.Comment.Render(wrap.Render("“"+p.AIComment+"”")))
	}

	if r.Narrative != "" {
		sections = append(sections, narrative(r.Narrative))
	}

	if len(r.Sources) > 0 {
		lines := []string{theme.Subtitle.Render("Sources")}
		for i, s := range r.Sources {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, theme.Link.Render(s.DisplayTitle())))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if showJSON {
		sections = append(sections, renderPayloadJSON(p, inner))
	}

	return theme.Card.
		BorderForeground(theme.ClassificationColor(p.Classification)).
		Width(width - 2).
		Render(strings.Join(sections, "\n\n"))
}

func renderPayloadJSON(p notes.StructuredNote, width int) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return theme.Error.Render("payload: " + err.Error())
	}
	return theme.Subtitle.Render("Payload") + "\n" + theme.Code.Width(width).Render(string(data))
}
