package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"gallery_admin/internal/domain/models"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var viewsFS embed.FS

//go:embed assets/placeholder-image.svg
var placeholderImage []byte

// Renderer renders the embedded console pages.
type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"characterName": models.CharacterName,
	"imageSrc":      ImageSrc,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"add": func(a, b int) int { return a + b },
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	const op = "http.NewRenderer"

	pages := []string{"login.html", "gallery.html", "confirm.html"}
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(viewsFS, "views/layout.html", "views/"+page)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.templates[page] = t
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout", data)
}

// ImageSrc is the console URL an image reference is served from.
func ImageSrc(ref string) string {
	return "/images/" + strings.TrimLeft(ref, "/")
}
