// Package web renders the browser-facing pages of the companion server.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Page names.
const (
	PagePricing         = "pricing"
	PagePaymentSuccess  = "payment_success"
	PagePaymentCanceled = "payment_canceled"
)

//go:embed templates/*.html
var files embed.FS

// Renderer holds the parsed pages. It is safe for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PagePricing, PagePaymentSuccess, PagePaymentCanceled} {
		tmpl, err := template.New(name).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes page into w. The page is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render page %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
