package render

import (
	"bytes"
	"text/template"

	templatedomain "github.com/zerorisk/claimledger/internal/template/domain"
)

// Renderer expands message-template placeholders against one bill's context.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render parses and executes both subject and body. Templates are stored
// as user input, so parse errors surface as ErrInvalidBody rather than
// panics.
func (r *Renderer) Render(tmpl templatedomain.MessageTemplate, rc templatedomain.RenderContext) (templatedomain.RenderedMessage, error) {
	subject, err := expand("subject", tmpl.Subject, rc)
	if err != nil {
		return templatedomain.RenderedMessage{}, templatedomain.ErrInvalidBody
	}
	body, err := expand("body", tmpl.Body, rc)
	if err != nil {
		return templatedomain.RenderedMessage{}, templatedomain.ErrInvalidBody
	}
	return templatedomain.RenderedMessage{Subject: subject, Body: body}, nil
}

func expand(name, text string, rc templatedomain.RenderContext) (string, error) {
	if text == "" {
		return "", nil
	}
	parsed, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, rc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
