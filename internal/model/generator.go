// Package model wraps the single generative-language call made for each
// submitted note.
package model

import (
	"context"
	_ "embed"

	"mindflow/internal/notes"
)

// PromptVersion identifies the instruction document sent with every request
const PromptVersion = "2.0"

// SystemPrompt is the fixed instruction document: persona, taxonomy and the
// two-part output contract.
//
//go:embed prompt.md
var SystemPrompt string

// DefaultTemperature balances the persona's tone against a stable JSON shape
const DefaultTemperature float32 = 0.7

// Options tune a single generation request
type Options struct {
	Temperature        float32
	EnableWebGrounding bool
}

// DefaultOptions returns the options every submission uses
func DefaultOptions() Options {
	return Options{
		Temperature:        DefaultTemperature,
		EnableWebGrounding: true,
	}
}

// Reply is the raw model output for one request
type Reply struct {
	Text            string
	GroundingChunks []notes.GroundingChunk
}

// Generator produces a raw reply for a system prompt and a user input.
// Implementations wrap every failure in notes.ErrModelUnavailable and never
// retry.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userInput string, opts Options) (Reply, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, systemPrompt, userInput string, opts Options) (Reply, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userInput string, opts Options) (Reply, error) {
	return f(ctx, systemPrompt, userInput, opts)
}
