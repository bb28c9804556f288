package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fyyur/internal/csrf"
	"fyyur/internal/logging"
	"fyyur/internal/render"
	"fyyur/internal/store"
)

// VenueService coordinates venue workflows.
type VenueService interface {
	ByArea(ctx context.Context) ([]store.Area, error)
	Search(ctx context.Context, term string) (store.SearchResult, error)
	Get(ctx context.Context, id int64) (store.Venue, error)
	Shows(ctx context.Context, id int64) (store.ShowSplit, error)
	Create(ctx context.Context, v store.Venue) (int64, error)
	Update(ctx context.Context, id int64, patch store.VenuePatch) (store.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService coordinates artist workflows.
type ArtistService interface {
	List(ctx context.Context) ([]store.Artist, error)
	Search(ctx context.Context, term string) (store.SearchResult, error)
	Get(ctx context.Context, id int64) (store.Artist, error)
	Shows(ctx context.Context, id int64) (store.ShowSplit, error)
	Create(ctx context.Context, a store.Artist) (int64, error)
	Update(ctx context.Context, id int64, patch store.ArtistPatch) (store.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// ShowService coordinates show workflows.
type ShowService interface {
	List(ctx context.Context) ([]store.ShowDetails, error)
	Create(ctx context.Context, show store.Show) (int64, error)
}

// Renderer writes a named page.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// Tokens issues and verifies the anti-forgery token carried by forms.
type Tokens interface {
	Issue() (string, error)
	Verify(token string) error
}

// MutationRecorder counts create, update and delete attempts.
type MutationRecorder interface {
	RecordMutation(entity, action string, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordMutation(string, string, error) {}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues   VenueService
	artists  ArtistService
	shows    ShowService
	renderer Renderer
	tokens   Tokens
	recorder MutationRecorder
}

// New configures a Server. recorder may be nil.
func New(
	venues VenueService,
	artists ArtistService,
	shows ShowService,
	renderer Renderer,
	tokens Tokens,
	recorder MutationRecorder,
) *Server {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Server{
		venues:   venues,
		artists:  artists,
		shows:    shows,
		renderer: renderer,
		tokens:   tokens,
		recorder: recorder,
	}
}

// Routes exposes the HTML pages and form endpoints.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	// Venue routes
	router.HandleFunc("/venues", s.handleListVenues).Methods(http.MethodGet)
	router.HandleFunc("/venues/search", s.handleSearchVenues).Methods(http.MethodPost)
	router.HandleFunc("/venues/create", s.handleNewVenueForm).Methods(http.MethodGet)
	router.HandleFunc("/venues/create", s.handleCreateVenue).Methods(http.MethodPost)
	router.HandleFunc("/venues/{id:[0-9]+}", s.handleShowVenue).Methods(http.MethodGet)
	router.HandleFunc("/venues/{id:[0-9]+}", s.handleDeleteVenue).Methods(http.MethodDelete)
	router.HandleFunc("/venues/{id:[0-9]+}/edit", s.handleEditVenueForm).Methods(http.MethodGet)
	router.HandleFunc("/venues/{id:[0-9]+}/edit", s.handleUpdateVenue).Methods(http.MethodPost)

	// Artist routes
	router.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	router.HandleFunc("/artists/search", s.handleSearchArtists).Methods(http.MethodPost)
	router.HandleFunc("/artists/create", s.handleNewArtistForm).Methods(http.MethodGet)
	router.HandleFunc("/artists/create", s.handleCreateArtist).Methods(http.MethodPost)
	router.HandleFunc("/artists/{id:[0-9]+}", s.handleShowArtist).Methods(http.MethodGet)
	router.HandleFunc("/artists/{id:[0-9]+}", s.handleDeleteArtist).Methods(http.MethodDelete)
	router.HandleFunc("/artists/{id:[0-9]+}/edit", s.handleEditArtistForm).Methods(http.MethodGet)
	router.HandleFunc("/artists/{id:[0-9]+}/edit", s.handleUpdateArtist).Methods(http.MethodPost)

	// Show routes
	router.HandleFunc("/shows", s.handleListShows).Methods(http.MethodGet)
	router.HandleFunc("/shows/create", s.handleNewShowForm).Methods(http.MethodGet)
	router.HandleFunc("/shows/create", s.handleCreateShow).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
	})

	return router
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusOK, render.Home, nil, flashesFrom(w, r)...)
}

// pageData is what every template receives.
type pageData struct {
	Flashes   []string
	CSRFToken string
	Data      any
}

// renderStatus buffers the page so a template failure can still become a clean 500.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, page string, data any, flashes ...string) {
	token, err := s.tokens.Issue()
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("issue csrf token")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page, pageData{Flashes: flashes, CSRFToken: token, Data: data}); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Str("page", page).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError maps err onto the matching error page. Unexpected errors are logged.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusNotFound:
		s.renderStatus(w, r, status, render.NotFound, nil)
	case http.StatusBadRequest:
		s.renderStatus(w, r, status, render.BadRequest, nil)
	default:
		logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.renderStatus(w, r, http.StatusInternalServerError, render.ServerError, nil)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalid), errors.Is(err, csrf.ErrInvalidToken):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrConstraint):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseForm reads the posted form and checks its csrf token. On failure it
// has already written the 400 page.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		s.renderStatus(w, r, http.StatusBadRequest, render.BadRequest, "Malformed form submission.")
		return false
	}
	if err := s.tokens.Verify(r.PostForm.Get("csrf_token")); err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("rejected csrf token")
		s.renderStatus(w, r, http.StatusBadRequest, render.BadRequest, "The form expired, please try again.")
		return false
	}
	return true
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
