package service

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"mindflow/internal/feed"
	"mindflow/internal/model"
	"mindflow/internal/normalize"
	"mindflow/internal/notes"
)

// ErrSubmissionInFlight is returned when Submit is called while another
// submission is still running. The call is a no-op, not a queued request.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// FeedService defines the operations the presentation layer uses.
type FeedService interface {
	Submit(ctx context.Context, text string) (notes.FeedRecord, error)
	List(filter feed.Filter) []notes.FeedRecord
	Counts() map[feed.Filter]int
	Busy() bool
}

type feedServiceImpl struct {
	generator  model.Generator
	normalizer *normalize.Normalizer
	store      *feed.Store
	prompt     string
	options    model.Options
	inflight   *semaphore.Weighted
	busy       atomic.Bool
	logger     *zap.Logger
}

// Config holds the collaborators of a FeedService
type Config struct {
	Generator  model.Generator
	Normalizer *normalize.Normalizer
	Store      *feed.Store
	Logger     *zap.Logger
}

// NewFeedService creates the single submission handler for a session.
func NewFeedService(cfg Config) FeedService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = normalize.New(logger)
	}
	store := cfg.Store
	if store == nil {
		store = feed.NewStore()
	}
	return &feedServiceImpl{
		generator:  cfg.Generator,
		normalizer: normalizer,
		store:      store,
		prompt:     model.SystemPrompt,
		options:    model.DefaultOptions(),
		inflight:   semaphore.NewWeighted(1),
		logger:     logger,
	}
}

// Submit sends text to the model and prepends the normalized record to the
// feed. On any failure the feed is left unchanged.
func (s *feedServiceImpl) Submit(ctx context.Context, text string) (notes.FeedRecord, error) {
	if strings.TrimSpace(text) == "" {
		return notes.FeedRecord{}, errors.WithStack(notes.ErrEmptyInput)
	}

	if !s.inflight.TryAcquire(1) {
		s.logger.Debug("submission ignored, another one is in flight")
		return notes.FeedRecord{}, ErrSubmissionInFlight
	}
	s.busy.Store(true)
	defer func() {
		s.busy.Store(false)
		s.inflight.Release(1)
	}()

	s.logger.Info("processing note", zap.Int("input_len", len(text)))

	reply, err := s.generator.Generate(ctx, s.prompt, text, s.options)
	if err != nil {
		if !errors.Is(err, notes.ErrModelUnavailable) {
			err = &notes.ModelError{Cause: err}
		}
		s.logger.Error("model call failed", zap.Error(err))
		return notes.FeedRecord{}, err
	}

	record, err := s.normalizer.Normalize(reply.Text, reply.GroundingChunks)
	if err != nil {
		s.logger.Error("reply could not be normalized", zap.Error(err))
		return notes.FeedRecord{}, err
	}

	s.store.Append(record)
	s.logger.Info("note added to feed",
		zap.String("id", record.ID),
		zap.String("classification", string(record.Payload.Classification)),
		zap.Int("sources", len(record.Sources)))

	return record, nil
}

func (s *feedServiceImpl) List(filter feed.Filter) []notes.FeedRecord {
	return s.store.List(filter)
}

func (s *feedServiceImpl) Counts() map[feed.Filter]int {
	return s.store.Counts()
}

// Busy reports whether a submission is in flight
func (s *feedServiceImpl) Busy() bool {
	return s.busy.Load()
}
