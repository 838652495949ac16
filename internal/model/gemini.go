package model

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"mindflow/internal/notes"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the part of genai.Models the generator needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator calls the Gemini API through google.golang.org/genai
type GeminiGenerator struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// GeminiConfig holds the settings for NewGeminiGenerator
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	return newGeminiGenerator(client.Models, cfg), nil
}

func newGeminiGenerator(models contentGenerator, cfg GeminiConfig) *GeminiGenerator {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiGenerator{
		models:  models,
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger.Named("gemini"),
	}
}

// Model returns the model name requests are sent to
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate sends one GenerateContent request. Any failure is reported as
// notes.ErrModelUnavailable.
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userInput string, opts Options) (Reply, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(userInput), buildConfig(systemPrompt, opts))
	if err != nil {
		g.logger.Error("generate content failed",
			zap.String("model", g.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Reply{}, errors.WithStack(&notes.ModelError{Cause: err})
	}

	reply, err := replyFromResponse(resp)
	if err != nil {
		g.logger.Error("unusable response", zap.String("model", g.model), zap.Error(err))
		return Reply{}, err
	}

	g.logger.Info("generate content completed",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(reply.Text)),
		zap.Int("grounding_chunks", len(reply.GroundingChunks)))

	return reply, nil
}

func buildConfig(systemPrompt string, opts Options) *genai.GenerateContentConfig {
	temperature := opts.Temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temperature,
	}
	if opts.EnableWebGrounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func replyFromResponse(resp *genai.GenerateContentResponse) (Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Reply{}, errors.Wrap(notes.ErrModelUnavailable, "response has no candidates")
	}

	reply := Reply{Text: resp.Text()}

	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil {
				continue
			}
			gc := notes.GroundingChunk{}
			if chunk.Web != nil {
				gc.Web = &notes.WebChunk{URI: chunk.Web.URI, Title: chunk.Web.Title}
			}
			reply.GroundingChunks = append(reply.GroundingChunks, gc)
		}
	}

	return reply, nil
}
