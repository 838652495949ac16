package notes

import "time"

// Classification is the single category the model assigns to a note
type Classification string

const (
	Task     Classification = "Task"
	Idea     Classification = "Idea"
	Journal  Classification = "Journal"
	Resource Classification = "Resource"
	Memo     Classification = "Memo"
)

// Classifications lists every classification in sidebar order
var Classifications = []Classification{Task, Idea, Journal, Resource, Memo}

// Valid reports whether c is one of the five known classifications
func (c Classification) Valid() bool {
	for _, known := range Classifications {
		if c == known {
			return true
		}
	}
	return false
}

// ActionItem is a concrete follow-up extracted from the note
type ActionItem struct {
	Task   string `json:"task" yaml:"task"`
	IsDone bool   `json:"is_done" yaml:"is_done"`
}

// StructuredNote is the machine-readable half of a model reply
type StructuredNote struct {
	Classification  Classification `json:"classification" yaml:"classification"`
	Title           string         `json:"title" yaml:"title"`
	Summary         string         `json:"summary" yaml:"summary"`
	OriginalContent string         `json:"original_content" yaml:"original_content"`
	Tags            []string       `json:"tags" yaml:"tags"`
	MoodScore       int            `json:"mood_score" yaml:"mood_score"`
	AIComment       string         `json:"ai_comment" yaml:"ai_comment"`
	ActionItems     []ActionItem   `json:"action_items" yaml:"action_items"`
	RelatedContext  string         `json:"related_context" yaml:"related_context"`
}

// WebSource is a web citation attached to a reply by search grounding
type WebSource struct {
	URI   string `json:"uri" yaml:"uri"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DisplayTitle returns the title, or the URI when the model gave none
func (s WebSource) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.URI
}

// GroundingChunk is one citation record returned next to a model reply.
// Web is nil for chunks that do not reference a web page.
type GroundingChunk struct {
	Web *WebChunk
}

// WebChunk is the web part of a grounding chunk
type WebChunk struct {
	URI   string
	Title string
}

// FeedRecord is one processed note in the feed. Records are never mutated
// after creation.
type FeedRecord struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Narrative string         `json:"narrative"`
	Payload   StructuredNote `json:"payload"`
	Sources   []WebSource    `json:"sources"`
}

// PendingActions returns the action items that are not done yet
func (r FeedRecord) PendingActions() []ActionItem {
	var pending []ActionItem
	for _, item := range r.Payload.ActionItems {
		if !item.IsDone {
			pending = append(pending, item)
		}
	}
	return pending
}
