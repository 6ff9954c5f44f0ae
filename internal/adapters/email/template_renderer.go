package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"collegeevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using the embedded templates folder.
// Each template <name> consists of <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses every embedded template once. It panics if an embedded
// template is malformed, which can only happen at build time.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
