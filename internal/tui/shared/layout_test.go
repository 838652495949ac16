package shared

import (
	"strings"
	"testing"
)

func TestFitHeight(t *testing.T) {
	tests := []struct {
		name    string
		content string
		height  int
		want    string
	}{
		{"pads short content", "a\nb", 4, "a\nb\n\n"},
		{"cuts long content", "a\nb\nc\n", 2, "a\nb"},
		{"exact", "a\nb", 2, "a\nb"},
		{"zero height", "a", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitHeight(tt.content, tt.height); got != tt.want {
				t.Errorf("FitHeight(%q, %d) = %q, want %q", tt.content, tt.height, got, tt.want)
			}
		})
	}
}

func TestCenterContent_FillsBox(t *testing.T) {
	out := CenterContent("hi", 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "hi") {
		t.Errorf("expected content on the middle line, got %q", lines[2])
	}
}
