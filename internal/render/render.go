// Package render turns view-models into HTML pages using embedded templates.
package render

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strings"

	"fyyur/internal/format"
)

// Page names accepted by Render.
const (
	Home          = "pages/home"
	Venues        = "pages/venues"
	Artists       = "pages/artists"
	Shows         = "pages/shows"
	SearchVenues  = "pages/search_venues"
	SearchArtists = "pages/search_artists"
	ShowVenue     = "pages/show_venue"
	ShowArtist    = "pages/show_artist"
	NewVenue      = "forms/new_venue"
	NewArtist     = "forms/new_artist"
	NewShow       = "forms/new_show"
	EditVenue     = "forms/edit_venue"
	EditArtist    = "forms/edit_artist"
	BadRequest    = "errors/400"
	NotFound      = "errors/404"
	ServerError   = "errors/500"
)

var pages = []string{
	Home, Venues, Artists, Shows, SearchVenues, SearchArtists, ShowVenue, ShowArtist,
	NewVenue, NewArtist, NewShow, EditVenue, EditArtist, BadRequest, NotFound, ServerError,
}

// ErrUnknownPage is returned when Render is asked for a page it does not have.
var ErrUnknownPage = errors.New("unknown page")

//go:embed templates
var files embed.FS

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout and partials.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": datetime,
		"join":     strings.Join,
		"has":      slices.Contains[[]string],
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layouts/*.html",
			"templates/partials/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page with data into w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

// datetime is the template filter: {{ datetime .StartTime }} or {{ datetime .StartTime "full" }}.
func datetime(value string, style ...string) (string, error) {
	s := format.StyleMedium
	if len(style) > 0 {
		s = style[0]
	}
	return format.DateTime(value, s)
}
