package export

import (
	"bytes"
	"html/template"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mindflow/internal/notes"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.TaskList, extension.Linkify))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="classification" content="{{.Classification}}">
</head>
<body>
{{.Body}}</body>
</html>
`))

type page struct {
	Title          string
	Classification string
	Body           template.HTML
}

// RenderHTML renders a record as a standalone HTML page. The markdown note is
// rendered first and its body converted, so both formats carry the same
// content.
func RenderHTML(r notes.FeedRecord) ([]byte, error) {
	md, err := RenderMarkdown(r)
	if err != nil {
		return nil, err
	}
	_, body, _ := splitFrontmatter(md)

	var content bytes.Buffer
	if err := markdown.Convert(body, &content); err != nil {
		return nil, errors.Wrap(err, "convert markdown")
	}

	var out bytes.Buffer
	err = pageTemplate.Execute(&out, page{
		Title:          r.Payload.Title,
		Classification: string(r.Payload.Classification),
		// goldmark omits raw HTML unless built with html.WithUnsafe
		Body: template.HTML(content.String()),
	})
	if err != nil {
		return nil, errors.Wrap(err, "render page")
	}
	return out.Bytes(), nil
}
