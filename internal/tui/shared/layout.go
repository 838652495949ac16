package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CenterContent renders content vertically and horizontally centered in a
// width x height box.
func CenterContent(content string, width, height int) string {
	content = strings.TrimRight(content, "\n")
	if height <= 0 || width <= 0 {
		return content
	}
	if lipgloss.Height(content) >= height {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// FitHeight pads or cuts content to exactly height lines.
func FitHeight(content string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
