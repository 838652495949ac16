package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindflow/internal/export"
	"mindflow/internal/logs"
	"mindflow/internal/notes"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func newNoteCommand(rt *runtime) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "note [text...]",
		Short: "Organize a single note and print the result",
		Long: `Send one note to the model and print the organized result.
With no arguments the note is read from standard input.`,
		Example: `  mindflow note "Buy milk tomorrow"
  echo "Read the Go memory model" | mindflow note --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatJSON, formatMarkdown:
			default:
				return errors.Errorf("unknown format %q: use text, json or markdown", format)
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read note from stdin")
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return errors.New(notes.UserMessage(notes.ErrEmptyInput))
			}

			cfg, err := rt.setup(cmd)
			if err != nil {
				return err
			}
			svc, err := rt.newService(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			record, err := svc.Submit(cmd.Context(), text)
			if err != nil {
				logs.Logger.Warn("note command failed", zap.Error(err))
				return errors.New(notes.UserMessage(err))
			}

			return writeRecord(cmd.OutOrStdout(), record, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or markdown")
	return cmd
}

func writeRecord(w io.Writer, r notes.FeedRecord, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatMarkdown:
		data, err := export.RenderMarkdown(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	p := r.Payload
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s  (mood %d/%d)\n", p.Classification, p.Title, p.MoodScore, notes.MaxMoodScore)
	if p.Summary != "" {
		fmt.Fprintf(&b, "%s\n", p.Summary)
	}
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "#" + t
		}
		fmt.Fprintf(&b, "%s\n", strings.Join(tags, " "))
	}
	for _, item := range p.ActionItems {
		mark := " "
		if item.IsDone {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", mark, item.Task)
	}
	if p.RelatedContext != "" {
		fmt.Fprintf(&b, "context: %s\n", p.RelatedContext)
	}
	if p.AIComment != "" {
		fmt.Fprintf(&b, "\n%s\n", p.AIComment)
	}
	if r.Narrative != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Narrative)
	}
	if len(r.Sources) > 0 {
		b.WriteString("\nSources:\n")
		for i, s := range r.Sources {
			fmt.Fprintf(&b, "  %d. %s <%s>\n", i+1, s.DisplayTitle(), s.URI)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
