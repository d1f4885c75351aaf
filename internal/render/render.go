// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the space and the
// public pages. Every page is rendered with the request's theme cascade in
// the document head, ahead of any item, so items resolve over it.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"privatespace/internal/carousel"
	"privatespace/internal/design"
	"privatespace/internal/markdown"
	"privatespace/internal/middleware"
	"privatespace/internal/models"
	"privatespace/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string        // Page title for <title> tag
	Section   string        // Active sidebar section (e.g., "journal", "blog")
	User      *session.Data // Current session (nil on public pages)
	CSRFToken string        // CSRF token for forms
	ThemeCSS  template.CSS  // :root rule of the applied theme
	Query     url.Values    // Request query, read by carousels
	Data      map[string]any
	Flashes   []Flash
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates render as full documents without the layout.
var standaloneTemplates = map[string]bool{
	"login": true,
}

// sharedTemplates are parsed into every page.
var sharedTemplates = map[string]bool{
	"layout.html":   true,
	"partials.html": true,
}

// New parses every template from the embedded filesystem. Each page is
// paired with the layout and the shared partials.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap:   funcMap(),
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || sharedTemplates[name] || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		files := []string{"templates/partials.html", "templates/" + name}
		root := name
		if !standaloneTemplates[tmplName] {
			files = append([]string{"templates/layout.html"}, files...)
			root = "layout.html"
		}

		tmpl, err := template.New(root).Funcs(r.funcMap).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a page for an authenticated or anonymous request. The CSRF
// token, the session and the theme cascade are taken from the context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	ctx := r.Context()
	data.CSRFToken = middleware.CSRFTokenFromCtx(ctx)
	if data.User == nil {
		if id := middleware.IdentityFromCtx(ctx); id != nil {
			data.User = id.Session
		}
	}
	data.ThemeCSS = template.CSS(middleware.ThemeFromCtx(ctx).CSS())
	if data.Query == nil {
		data.Query = r.URL.Query()
	}

	var buf bytes.Buffer
	if err := rn.execute(&buf, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Bytes renders a page outside of any request, with no user and no theme.
// Used for public pages that are cached and shared between visitors.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	if data.Query == nil {
		data.Query = url.Values{}
	}
	var buf bytes.Buffer
	if err := rn.execute(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (rn *Renderer) execute(w io.Writer, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	root := "layout.html"
	if standaloneTemplates[name] {
		root = name + ".html"
	}
	return tmpl.ExecuteTemplate(w, root, data)
}

// CarouselData is a carousel view that knows how to link to its own
// neighbours while keeping the rest of the page query.
type CarouselData struct {
	carousel.View
	query url.Values
}

// Href returns the link that shows media index i.
func (c CarouselData) Href(i int) string {
	q := url.Values{}
	for k, v := range c.query {
		q[k] = v
	}
	q.Set(c.Param, strconv.Itoa(i))
	return "?" + q.Encode()
}

// ItemCarousel builds the carousel of an item from the page query.
func ItemCarousel(itemID string, media models.Gallery, query url.Values, height string) CarouselData {
	idx, _ := strconv.Atoi(query.Get(carousel.Param(itemID)))
	return CarouselData{
		View:  carousel.NewView(itemID, media, idx, height),
		query: query,
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "nav-link active"
			}
			return "nav-link"
		},
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefInt": func(n *int) int {
			if n == nil {
				return 0
			}
			return *n
		},
		// style resolves an item's design for a surface.
		"style": func(opts *design.Options, surface string) design.Style {
			return design.Resolve(opts, design.Surface(surface))
		},
		// css marks an already-sanitized declaration list as safe for a
		// style attribute.
		"css": func(st design.Style) template.CSS {
			return template.CSS(st.CSS())
		},
		"designForm": func(opts *design.Options, surface string) DesignForm {
			return NewDesignForm(opts, design.Surface(surface))
		},
		"themeForm": NewThemeForm,
		"inc":       func(i int) int { return i + 1 },
		"fmtFloat": func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		},
		"carousel":  ItemCarousel,
		"markdown":  markdown.Render,
		"humanSize": models.HumanSize,
		"fonts":     func() []design.Font { return design.Fonts },
		"shadows":   func() []design.ShadowPreset { return design.Shadows },
		"radii":     func() []float64 { return design.Radii },
		"animations": func() []string {
			return design.Animations
		},
	}
}
