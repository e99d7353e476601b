package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names known to every Cache.
const (
	TemplatePage    = "page.html"
	TemplateMessage = "message.html"
)

// Cache holds parsed page templates keyed by name.
// Build one at startup with NewCache and share it; it is safe for concurrent use.
type Cache struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewCache parses the built-in templates.
func NewCache() (*Cache, error) {
	c := &Cache{templates: make(map[string]*template.Template)}
	for _, name := range []string{TemplatePage, TemplateMessage} {
		t, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		c.templates[name] = t
	}
	return c, nil
}

// Register parses text and stores it under name, replacing any previous template.
func (c *Cache) Register(name, text string) error {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[name] = t
	return nil
}

// Lookup returns the template registered under name.
func (c *Cache) Lookup(name string) (*template.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[name]
	return t, ok
}

// Execute renders the named template with data into w.
func (c *Cache) Execute(w io.Writer, name string, data any) error {
	t, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("template %s is not registered", name)
	}
	return t.Execute(w, data)
}

// Page is the data of the page shell.
type Page struct {
	Title     string
	Action    string
	SessionID string
	Field     string
	Notice    string
	Body      template.HTML
}

// Message is the data of a plain message page.
type Message struct {
	Title   string
	Message string
}

// HTML renders a primitive stream as an HTML fragment.
// Widgets submit their answer under the "value" parameter.
func HTML(ops []domain.Op) template.HTML {
	var b strings.Builder
	esc := template.HTMLEscapeString
	for _, op := range ops {
		switch op.Kind {
		case domain.OpOpenGroup:
			b.WriteString("<fieldset>")
			if op.Text != "" {
				b.WriteString("<legend>" + esc(op.Text) + "</legend>")
			}
		case domain.OpCloseGroup:
			b.WriteString("</fieldset>")
		case domain.OpOpenList:
			b.WriteString("<ul>")
		case domain.OpCloseList:
			b.WriteString("</ul>")
		case domain.OpOpenItem:
			b.WriteString("<li>")
		case domain.OpCloseItem:
			b.WriteString("</li>")
		case domain.OpText:
			b.WriteString("<p>" + esc(op.Text) + "</p>")
		case domain.OpChoice:
			fmt.Fprintf(&b, `<label for="%[1]s">%[1]s</label><select id="%[1]s" name="value">`, esc(op.Field))
			for _, o := range op.Options {
				fmt.Fprintf(&b, `<option value="%s">%s</option>`, esc(o.Code), esc(o.Label))
			}
			b.WriteString("</select>")
		case domain.OpEntry:
			fmt.Fprintf(&b, `<label for="%[1]s">%[1]s</label><input type="text" id="%[1]s" name="value" />`, esc(op.Field))
		}
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

// RenderPage wraps ops in the page shell.
func RenderPage(c *Cache, w io.Writer, page Page, ops []domain.Op) error {
	page.Body = HTML(ops)
	var buf bytes.Buffer
	if err := c.Execute(&buf, TemplatePage, page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
