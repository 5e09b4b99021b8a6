// Package templates renders settlement notifications.
package templates

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var files embed.FS

// Message is a rendered notification body.
type Message struct {
	HTML string
	Text string
}

// Renderer executes the embedded HTML and plain text templates.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(files, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render executes both variants of the named template. Every template ships
// with a text variant, so a missing one is an error.
func (r *Renderer) Render(name string, data any) (Message, error) {
	var msg Message
	var buf strings.Builder

	if err := r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return msg, fmt.Errorf("render %s.html: %w", name, err)
	}
	msg.HTML = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, name+".txt", data); err != nil {
		return msg, fmt.Errorf("render %s.txt: %w", name, err)
	}
	msg.Text = buf.String()

	return msg, nil
}
