// Package export writes feed records to disk as markdown notes with YAML
// frontmatter, or as standalone HTML pages.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mindflow/internal/notes"
)

// Format selects the exported file type
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Extension returns the file extension for the format
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

var (
	slugStrip   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	frontDelim  = []byte("---")
	maxSlugSize = 60
)

// noteFrontmatter is the YAML header of an exported note
type noteFrontmatter struct {
	ID              string               `yaml:"id"`
	Date            string               `yaml:"date"`
	CreatedAt       time.Time            `yaml:"created_at"`
	Classification  notes.Classification `yaml:"classification"`
	Title           string               `yaml:"title"`
	Tags            []string             `yaml:"tags,omitempty"`
	MoodScore       int                  `yaml:"mood_score"`
	RelatedContext  string               `yaml:"related_context,omitempty"`
	OriginalContent string               `yaml:"original_content"`
	Sources         []notes.WebSource    `yaml:"sources,omitempty"`
}

// Exporter writes records into a directory
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// NewExporter creates an exporter writing into dir
func NewExporter(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Dir returns the export directory
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes one file per record and returns the written paths.
// Existing files with the same name are overwritten.
func (e *Exporter) Export(records []notes.FeedRecord, format Format) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create export dir")
	}

	var paths []string
	for _, r := range records {
		var data []byte
		var err error
		switch format {
		case FormatHTML:
			data, err = RenderHTML(r)
		case FormatMarkdown, "":
			data, err = RenderMarkdown(r)
		default:
			return paths, errors.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return paths, errors.Wrapf(err, "render %s", r.ID)
		}

		path := filepath.Join(e.dir, Filename(r, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, errors.Wrapf(err, "write %s", path)
		}
		paths = append(paths, path)
	}

	e.logger.Info("exported feed",
		zap.String("dir", e.dir),
		zap.String("format", string(format)),
		zap.Int("records", len(paths)))

	return paths, nil
}

// Filename builds a date-prefixed file name, e.g. 2026-02-14-buy-milk-1a2b3c4d.md.
// The id suffix keeps names unique when titles repeat.
func Filename(r notes.FeedRecord, format Format) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(r.Payload.Title), "-"), "-")
	if runes := []rune(slug); len(runes) > maxSlugSize {
		slug = strings.TrimRight(string(runes[:maxSlugSize]), "-")
	}
	if slug == "" {
		slug = "note"
	}

	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}

	name := r.CreatedAt.Format("2006-01-02") + "-" + slug
	if id != "" {
		name += "-" + id
	}
	return name + format.Extension()
}

// RenderMarkdown renders a record as a markdown note with YAML frontmatter.
func RenderMarkdown(r notes.FeedRecord) ([]byte, error) {
	p := r.Payload
	fm := noteFrontmatter{
		ID:              r.ID,
		Date:            r.CreatedAt.Format("2006-01-02"),
		CreatedAt:       r.CreatedAt,
		Classification:  p.Classification,
		Title:           p.Title,
		Tags:            p.Tags,
		MoodScore:       p.MoodScore,
		RelatedContext:  p.RelatedContext,
		OriginalContent: p.OriginalContent,
		Sources:         r.Sources,
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, errors.Wrap(err, "marshal frontmatter")
	}

	var buf bytes.Buffer
	buf.Write(frontDelim)
	buf.WriteString("\n")
	buf.Write(header)
	buf.Write(frontDelim)
	buf.WriteString("\n\n")
	buf.WriteString(renderBody(r))

	return buf.Bytes(), nil
}

func renderBody(r notes.FeedRecord) string {
	p := r.Payload
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Summary)
	}
	if p.AIComment != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.AIComment)
	}

	if len(p.ActionItems) > 0 {
		b.WriteString("## Action items\n\n")
		for _, item := range p.ActionItems {
			box := " "
			if item.IsDone {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, item.Task)
		}
		b.WriteString("\n")
	}

	if r.Narrative != "" {
		fmt.Fprintf(&b, "## Reply\n\n%s\n\n", r.Narrative)
	}

	if len(r.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for i, s := range r.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, s.DisplayTitle(), s.URI)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// splitFrontmatter separates a leading --- delimited YAML header from the
// body. ok is false when the content has no frontmatter.
func splitFrontmatter(content []byte) (header, body []byte, ok bool) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), frontDelim) {
		return nil, content, false
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontDelim) {
			fmEnd = i
			break
		}
	}

	if fmEnd == 0 {
		return nil, content, false
	}

	header = bytes.Join(lines[1:fmEnd], []byte("\n"))
	body = bytes.TrimLeft(bytes.Join(lines[fmEnd+1:], []byte("\n")), "\n")
	return header, body, true
}
