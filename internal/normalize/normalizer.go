// Package normalize turns a raw model reply into a validated feed record.
//
// A reply has two parts: free text for the user, followed by one fenced
// ```json block holding the structured note. Only the first block is used;
// the text around it becomes the record's narrative.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mindflow/internal/notes"
)

var jsonBlockPattern = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// Normalizer converts model replies into feed records. The zero value is not
// usable; call New.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithIDGenerator overrides the record id source
func WithIDGenerator(newID func() string) Option {
	return func(n *Normalizer) { n.newID = newID }
}

// New creates a Normalizer that logs diagnostics to logger.
func New(logger *zap.Logger, opts ...Option) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Normalizer{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize splits rawText into narrative and payload, validates the payload
// and attaches web sources from chunks. It has no side effects besides
// logging.
func (n *Normalizer) Normalize(rawText string, chunks []notes.GroundingChunk) (notes.FeedRecord, error) {
	narrative, block, err := n.ExtractBlock(rawText)
	if err != nil {
		return notes.FeedRecord{}, err
	}

	payload, err := n.ParsePayload(block)
	if err != nil {
		return notes.FeedRecord{}, err
	}

	if err := payload.Validate(); err != nil {
		var verr *notes.ValidationError
		if errors.As(err, &verr) {
			n.logger.Warn("structured block failed validation",
				zap.String("field", verr.Field),
				zap.String("reason", verr.Reason))
		}
		return notes.FeedRecord{}, err
	}

	return notes.FeedRecord{
		ID:        n.newID(),
		CreatedAt: n.now(),
		Narrative: narrative,
		Payload:   payload,
		Sources:   ExtractSources(chunks),
	}, nil
}

// ExtractBlock returns the trimmed text outside the first ```json block and
// the block's contents.
func (n *Normalizer) ExtractBlock(rawText string) (narrative, block string, err error) {
	matches := jsonBlockPattern.FindAllStringSubmatchIndex(rawText, -1)
	if len(matches) == 0 {
		n.logger.Warn("reply has no json block", zap.Int("reply_len", len(rawText)))
		return "", "", errors.WithStack(notes.ErrMalformedResponse)
	}
	if len(matches) > 1 {
		n.logger.Warn("reply has more than one json block; using the first",
			zap.Int("blocks", len(matches)))
	}

	first := matches[0]
	block = rawText[first[2]:first[3]]
	narrative = strings.TrimSpace(rawText[:first[0]] + rawText[first[1]:])
	return narrative, block, nil
}

// wireNote mirrors notes.StructuredNote but keeps mood_score raw so that a
// fractional or missing score is reported as a schema problem, not a syntax
// one.
type wireNote struct {
	Classification  notes.Classification `json:"classification"`
	Title           string               `json:"title"`
	Summary         string               `json:"summary"`
	OriginalContent string               `json:"original_content"`
	Tags            []string             `json:"tags"`
	MoodScore       json.RawMessage      `json:"mood_score"`
	AIComment       string               `json:"ai_comment"`
	ActionItems     []notes.ActionItem   `json:"action_items"`
	RelatedContext  string               `json:"related_context"`
}

// ParsePayload decodes the block into a StructuredNote. Syntax and type
// errors yield a *notes.ParseError; a missing or non-integral mood score
// yields a *notes.ValidationError.
func (n *Normalizer) ParsePayload(block string) (notes.StructuredNote, error) {
	var w wireNote
	dec := json.NewDecoder(strings.NewReader(block))
	if err := dec.Decode(&w); err != nil {
		return notes.StructuredNote{}, n.parseError(block, err)
	}
	if dec.More() {
		return notes.StructuredNote{}, n.parseError(block, errors.New("trailing data after json object"))
	}

	mood, err := moodScore(w.MoodScore)
	if err != nil {
		var verr *notes.ValidationError
		if !errors.As(err, &verr) {
			return notes.StructuredNote{}, n.parseError(block, err)
		}
		n.logger.Warn("structured block failed validation",
			zap.String("field", verr.Field),
			zap.String("reason", verr.Reason))
		return notes.StructuredNote{}, err
	}

	return notes.StructuredNote{
		Classification:  w.Classification,
		Title:           w.Title,
		Summary:         w.Summary,
		OriginalContent: w.OriginalContent,
		Tags:            w.Tags,
		MoodScore:       mood,
		AIComment:       w.AIComment,
		ActionItems:     w.ActionItems,
		RelatedContext:  w.RelatedContext,
	}, nil
}

func (n *Normalizer) parseError(block string, err error) error {
	n.logger.Warn("structured block is not valid json",
		zap.Error(err),
		zap.String("raw_block", block))
	return &notes.ParseError{Raw: block, Err: err}
}

// moodScore accepts only a JSON number. Anything else is a type error.
func moodScore(raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return 0, &notes.ValidationError{Field: "mood_score", Reason: "is required"}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, errors.Wrap(err, "mood_score")
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, errors.Errorf("mood_score: expected a number, got %s", trimmed)
	}

	f, err := num.Float64()
	if err != nil || math.Trunc(f) != f {
		return 0, &notes.ValidationError{Field: "mood_score", Reason: "must be an integer (got " + num.String() + ")"}
	}
	if f < notes.MinMoodScore || f > notes.MaxMoodScore {
		return 0, &notes.ValidationError{Field: "mood_score", Reason: "must be between 1 and 10 (got " + num.String() + ")"}
	}
	return int(f), nil
}

// ExtractSources keeps, in order, every chunk that points at a web page with
// a non-empty URI.
func ExtractSources(chunks []notes.GroundingChunk) []notes.WebSource {
	var sources []notes.WebSource
	for _, chunk := range chunks {
		if chunk.Web == nil || strings.TrimSpace(chunk.Web.URI) == "" {
			continue
		}
		sources = append(sources, notes.WebSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}
