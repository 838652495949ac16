// Package cli holds the mindflow command tree. Running mindflow without a
// subcommand starts the interactive feed.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindflow/internal/config"
	"mindflow/internal/export"
	"mindflow/internal/feed"
	"mindflow/internal/feed/service"
	"mindflow/internal/logs"
	"mindflow/internal/model"
	"mindflow/internal/tui"
)

// runtime holds the collaborators commands build at run time. Tests swap
// the generator and the program runner.
type runtime struct {
	flags        config.CLIFlags
	newGenerator func(ctx context.Context, cfg *config.Config) (model.Generator, error)
	runProgram   func(ctx context.Context, m tea.Model) error
}

func defaultRuntime() *runtime {
	return &runtime{
		newGenerator: func(ctx context.Context, cfg *config.Config) (model.Generator, error) {
			return model.NewGeminiGenerator(ctx, model.GeminiConfig{
				APIKey:  cfg.APIKey,
				Model:   cfg.Model,
				Timeout: cfg.Timeout,
				Logger:  logs.Logger,
			})
		},
		runProgram: func(ctx context.Context, m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

// Execute runs the command tree and returns the process exit code
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the mindflow command tree
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, defaultRuntime())
}

func newRootCommand(version string, rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "mindflow",
		Short: "A note-taking companion that organizes whatever you write",
		Long: `MindFlow sends each note to a Gemini model, which classifies it,
extracts action items and replies in a friendly tone. Notes are kept in a
newest-first feed for the current session only.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runInteractive(cmd, version)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logs.Close()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&rt.flags.APIKey, "api-key", "", "Gemini API key (default $GEMINI_API_KEY)")
	f.StringVar(&rt.flags.Model, "model", "", "model name (default "+config.DefaultModel+")")
	f.DurationVar(&rt.flags.Timeout, "timeout", 0, "per-request timeout (default "+config.DefaultTimeout.String()+")")
	f.StringVar(&rt.flags.DefaultFilter, "filter", "", "initial feed filter: all, insight, Task, Idea, Journal, Resource, Memo")
	f.StringVar(&rt.flags.ExportDir, "export-dir", "", "directory for exported notes")
	f.BoolVar(&rt.flags.Debug, "debug", false, "write debug-level logs")

	root.AddCommand(
		newNoteCommand(rt),
		newPromptCommand(),
		newVersionCommand(version),
	)
	return root
}

// setup loads configuration and points the logger at the log directory
func (rt *runtime) setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rt.flags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create config file: %v\n", err)
	}

	if err := logs.Initialize(cfg.LogDir, cfg.Debug); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}

	return cfg, nil
}

// newService validates the config and builds the session's feed service
func (rt *runtime) newService(ctx context.Context, cfg *config.Config) (service.FeedService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := rt.newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return service.NewFeedService(service.Config{
		Generator: gen,
		Logger:    logs.Logger,
	}), nil
}

func (rt *runtime) runInteractive(cmd *cobra.Command, version string) error {
	cfg, err := rt.setup(cmd)
	if err != nil {
		return err
	}

	filter, err := feed.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, err := rt.newService(ctx, cfg)
	if err != nil {
		return err
	}

	logs.Logger.Info("starting interactive feed",
		zap.String("model", cfg.Model),
		zap.String("filter", string(filter)))

	app := tui.NewAppModel(ctx, svc, export.NewExporter(cfg.ExportDir, logs.Logger), tui.Options{
		Version:       version,
		DefaultFilter: filter,
		RichText:      true,
	})
	return rt.runProgram(ctx, app)
}
