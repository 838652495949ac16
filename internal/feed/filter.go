package feed

import (
	"fmt"
	"strings"

	"mindflow/internal/notes"
)

// Filter selects which records a feed view shows
type Filter string

const (
	FilterAll Filter = "all"
	// FilterInsight has no analytics behind it yet and shows everything.
	FilterInsight Filter = "insight"
)

// Filters lists every filter in sidebar order
var Filters = []Filter{
	FilterAll,
	FilterInsight,
	Filter(notes.Task),
	Filter(notes.Idea),
	Filter(notes.Journal),
	Filter(notes.Resource),
	Filter(notes.Memo),
}

// ParseFilter accepts "all", "insight" or a classification name.
// Matching is case-insensitive.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// ShowsAll reports whether the filter returns every record unfiltered
func (f Filter) ShowsAll() bool {
	return f == FilterAll || f == FilterInsight || f == ""
}

// Matches reports whether a record belongs in the filtered view
func (f Filter) Matches(r notes.FeedRecord) bool {
	if f.ShowsAll() {
		return true
	}
	return string(r.Payload.Classification) == string(f)
}

// Label returns the sidebar label for the filter
func (f Filter) Label() string {
	switch f {
	case FilterAll, "":
		return "All notes"
	case FilterInsight:
		return "Insights"
	case Filter(notes.Task):
		return "Tasks"
	case Filter(notes.Idea):
		return "Ideas"
	case Filter(notes.Journal):
		return "Journal"
	case Filter(notes.Resource):
		return "Resources"
	case Filter(notes.Memo):
		return "Memos"
	}
	return string(f)
}
