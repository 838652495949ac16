package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mindflow/internal/notes"
)

const milkBlock = `{"classification":"Task","title":"Buy milk","summary":"Reminder to buy milk.","original_content":"Buy milk tomorrow","tags":["errand"],"mood_score":5,"ai_comment":"Got it!","action_items":[{"task":"Buy milk","is_done":false}],"related_context":"groceries"}`

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestNormalizer(t *testing.T) (*Normalizer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	n := New(zap.New(core),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "rec-1" }),
	)
	return n, logs
}

func fenced(body string) string {
	return "```json\n" + body + "\n```"
}

func TestNormalize_SingleBlock(t *testing.T) {
	n, _ := newTestNormalizer(t)

	raw := "Got it! I'll add that to your list.\n\n" + fenced(milkBlock)
	rec, err := n.Normalize(raw, nil)
	require.NoError(t, err)

	want := notes.StructuredNote{
		Classification:  notes.Task,
		Title:           "Buy milk",
		Summary:         "Reminder to buy milk.",
		OriginalContent: "Buy milk tomorrow",
		Tags:            []string{"errand"},
		MoodScore:       5,
		AIComment:       "Got it!",
		ActionItems:     []notes.ActionItem{{Task: "Buy milk", IsDone: false}},
		RelatedContext:  "groceries",
	}
	if diff := cmp.Diff(want, rec.Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Got it! I'll add that to your list.", rec.Narrative)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, fixedTime, rec.CreatedAt)
	assert.Empty(t, rec.Sources)
}

func TestNormalize_NarrativeAroundBlock(t *testing.T) {
	n, _ := newTestNormalizer(t)

	raw := "  Before.\n" + fenced(milkBlock) + "\nAfter.  \n"
	rec, err := n.Normalize(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Before.\n\nAfter.", rec.Narrative)
}

func TestNormalize_InlineFence(t *testing.T) {
	n, _ := newTestNormalizer(t)

	rec, err := n.Normalize("Noted. ```json "+milkBlock+" ```", nil)
	require.NoError(t, err)
	assert.Equal(t, "Noted.", rec.Narrative)
	assert.Equal(t, notes.Task, rec.Payload.Classification)
}

func TestNormalize_NoBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain text", "Sure, here you go!"},
		{"bare json", milkBlock},
		{"untagged fence", "```\n" + milkBlock + "\n```"},
		{"other language", "```yaml\ntitle: x\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := newTestNormalizer(t)
			rec, err := n.Normalize(tt.raw, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, notes.ErrMalformedResponse), "got %v", err)
			assert.Equal(t, notes.FeedRecord{}, rec)
			assert.Equal(t, 1, logs.FilterMessage("reply has no json block").Len())
		})
	}
}

func TestNormalize_MultipleBlocksUsesFirst(t *testing.T) {
	n, logs := newTestNormalizer(t)

	second := strings.Replace(milkBlock, `"Task"`, `"Idea"`, 1)
	raw := "Intro\n" + fenced(milkBlock) + "\nMiddle\n" + fenced(second)
	rec, err := n.Normalize(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, notes.Task, rec.Payload.Classification)
	assert.True(t, strings.HasPrefix(rec.Narrative, "Intro\n"))
	assert.Contains(t, rec.Narrative, "Middle")

	warnings := logs.FilterMessage("reply has more than one json block; using the first")
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, int64(2), warnings.All()[0].ContextMap()["blocks"])
}

func TestNormalize_ParseError(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"syntax", `{"classification": "Task",`},
		{"wrong type", `{"classification":"Task","title":"x","tags":"errand","mood_score":5,"ai_comment":"ok"}`},
		{"string mood", `{"classification":"Task","title":"x","mood_score":"5","ai_comment":"ok"}`},
		{"trailing object", `{"classification":"Task"} {"title":"x"}`},
		{"array", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := newTestNormalizer(t)
			_, err := n.Normalize("hi\n"+fenced(tt.block), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, notes.ErrPayloadParse), "got %v", err)

			var perr *notes.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.block, perr.Raw)

			entries := logs.FilterMessage("structured block is not valid json").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.block, entries[0].ContextMap()["raw_block"])
		})
	}
}

func TestNormalize_SchemaValidation(t *testing.T) {
	tests := []struct {
		name  string
		block string
		field string
	}{
		{"unknown classification", strings.Replace(milkBlock, `"Task"`, `"Chore"`, 1), "classification"},
		{"missing classification", strings.Replace(milkBlock, `"classification":"Task",`, "", 1), "classification"},
		{"mood zero", strings.Replace(milkBlock, `"mood_score":5`, `"mood_score":0`, 1), "mood_score"},
		{"mood eleven", strings.Replace(milkBlock, `"mood_score":5`, `"mood_score":11`, 1), "mood_score"},
		{"mood fractional", strings.Replace(milkBlock, `"mood_score":5`, `"mood_score":5.5`, 1), "mood_score"},
		{"mood missing", strings.Replace(milkBlock, `"mood_score":5,`, "", 1), "mood_score"},
		{"blank title", strings.Replace(milkBlock, `"title":"Buy milk"`, `"title":"  "`, 1), "title"},
		{"blank comment", strings.Replace(milkBlock, `"ai_comment":"Got it!"`, `"ai_comment":""`, 1), "ai_comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, logs := newTestNormalizer(t)
			rec, err := n.Normalize(fenced(tt.block), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, notes.ErrSchemaValidation), "got %v", err)
			assert.Equal(t, notes.FeedRecord{}, rec)

			var verr *notes.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			entries := logs.FilterMessage("structured block failed validation").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.field, entries[0].ContextMap()["field"])
		})
	}
}

func TestNormalize_MoodScoreWholeFloat(t *testing.T) {
	n, _ := newTestNormalizer(t)
	block := strings.Replace(milkBlock, `"mood_score":5`, `"mood_score":7.0`, 1)
	rec, err := n.Normalize(fenced(block), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Payload.MoodScore)
}

func TestNormalize_AttachesSources(t *testing.T) {
	n, _ := newTestNormalizer(t)
	chunks := []notes.GroundingChunk{
		{Web: &notes.WebChunk{URI: "https://milk.example", Title: "Milk"}},
	}
	rec, err := n.Normalize(fenced(milkBlock), chunks)
	require.NoError(t, err)
	assert.Equal(t, []notes.WebSource{{URI: "https://milk.example", Title: "Milk"}}, rec.Sources)
}

func TestExtractSources(t *testing.T) {
	chunks := []notes.GroundingChunk{
		{Web: &notes.WebChunk{URI: "https://a.example", Title: "A"}},
		{},
		{Web: &notes.WebChunk{URI: "", Title: "no uri"}},
		{Web: &notes.WebChunk{URI: "https://b.example"}},
		{Web: &notes.WebChunk{URI: "   ", Title: "blank"}},
		{Web: &notes.WebChunk{URI: "https://c.example", Title: "C"}},
	}

	got := ExtractSources(chunks)
	want := []notes.WebSource{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example"},
		{URI: "https://c.example", Title: "C"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, ExtractSources(nil))
}

func TestNew_DefaultsGenerateUniqueIDs(t *testing.T) {
	n := New(nil)
	a, err := n.Normalize(fenced(milkBlock), nil)
	require.NoError(t, err)
	b, err := n.Normalize(fenced(milkBlock), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}
