package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"fyyur/internal/flash"
	"fyyur/internal/logging"
	"fyyur/internal/render"
	"fyyur/internal/store"
)

const entityVenue = "Venue"

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.ByArea(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.Venues, areas, flashesFrom(w, r)...)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	term := r.PostForm.Get("search_term")

	results, err := s.venues.Search(r.Context(), term)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.SearchVenues, searchView{
		SearchTerm: term,
		Base:       "/venues",
		Results:    results,
	})
}

func (s *Server) handleShowVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	split, err := s.venues.Shows(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderStatus(w, r, http.StatusOK, render.ShowVenue, newVenueDetail(venue, split), flashesFrom(w, r)...)
}

func (s *Server) handleNewVenueForm(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusOK, render.NewVenue, venueFormView{})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	form := parseVenueForm(r.PostForm)

	errs, err := check(form)
	if err == nil && errs != nil {
		err = errs
	}
	if err == nil {
		_, err = s.venues.Create(r.Context(), form.venue())
	}

	outcome := flash.Outcome{Entity: entityVenue, Action: flash.ActionCreate, Name: form.Name, Err: err}
	s.recorder.RecordMutation("venue", "create", err)
	if err != nil {
		s.renderFormFailure(w, r, err, render.NewVenue, venueFormView{Form: form, Errors: errs}, outcome)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.Home, nil, outcome.String())
}

func (s *Server) handleEditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.EditVenue, venueFormView{ID: id, Form: venueFormFrom(venue)})
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}
	if !s.parseForm(w, r) {
		return
	}
	form := parseVenueForm(r.PostForm)

	errs, err := check(form)
	if err == nil && errs != nil {
		err = errs
	}
	if err == nil {
		_, err = s.venues.Update(r.Context(), id, form.patch(r.PostForm))
	}

	outcome := flash.Outcome{Entity: entityVenue, Action: flash.ActionUpdate, Name: form.Name, Err: err}
	s.recorder.RecordMutation("venue", "update", err)
	if errors.Is(err, store.ErrNotFound) {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}
	if err != nil {
		s.renderFormFailure(w, r, err, render.EditVenue, venueFormView{ID: id, Form: form, Errors: errs}, outcome)
		return
	}

	flash.Set(w, outcome)
	http.Redirect(w, r, "/venues/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err = s.venues.Delete(r.Context(), id)
	s.recorder.RecordMutation("venue", "delete", err)
	s.writeDeleteStatus(w, r, flash.Outcome{Entity: entityVenue, Action: flash.ActionDelete, Err: err})
}

// renderFormFailure re-renders a form with the failure flash and the status matching err.
func (s *Server) renderFormFailure(w http.ResponseWriter, r *http.Request, err error, page string, data any, outcome flash.Outcome) {
	if !outcome.Failed() {
		outcome.Err = err
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error().Err(err).Str("entity", outcome.Entity).Msg("mutation failed")
	}
	s.renderStatus(w, r, status, page, data, outcome.String())
}

// writeDeleteStatus answers a script-driven delete. Success leaves a flash for
// the page the client navigates to next.
func (s *Server) writeDeleteStatus(w http.ResponseWriter, r *http.Request, outcome flash.Outcome) {
	logger := logging.FromContext(r.Context())
	switch {
	case !outcome.Failed():
		logger.Info().Str("entity", outcome.Entity).Str("path", r.URL.Path).Msg(outcome.String())
		flash.Set(w, outcome)
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(outcome.Err, store.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		logger.Error().Err(outcome.Err).Str("entity", outcome.Entity).Str("path", r.URL.Path).Msg(outcome.String())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
