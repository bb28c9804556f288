package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"fyyur/internal/flash"
	"fyyur/internal/render"
	"fyyur/internal/store"
)

const entityArtist = "Artist"

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	summaries := make([]artistSummary, 0, len(artists))
	for _, a := range artists {
		summaries = append(summaries, artistSummary{ID: a.ID, Name: a.Name})
	}
	s.renderStatus(w, r, http.StatusOK, render.Artists, summaries, flashesFrom(w, r)...)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	term := r.PostForm.Get("search_term")

	results, err := s.artists.Search(r.Context(), term)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.SearchArtists, searchView{
		SearchTerm: term,
		Base:       "/artists",
		Results:    results,
	})
}

func (s *Server) handleShowArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	split, err := s.artists.Shows(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.renderStatus(w, r, http.StatusOK, render.ShowArtist, newArtistDetail(artist, split), flashesFrom(w, r)...)
}

func (s *Server) handleNewArtistForm(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusOK, render.NewArtist, artistFormView{})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	form := parseArtistForm(r.PostForm)

	errs, err := check(form)
	if err == nil && errs != nil {
		err = errs
	}
	if err == nil {
		_, err = s.artists.Create(r.Context(), form.artist())
	}

	outcome := flash.Outcome{Entity: entityArtist, Action: flash.ActionCreate, Name: form.Name, Err: err}
	s.recorder.RecordMutation("artist", "create", err)
	if err != nil {
		s.renderFormFailure(w, r, err, render.NewArtist, artistFormView{Form: form, Errors: errs}, outcome)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.Home, nil, outcome.String())
}

func (s *Server) handleEditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.EditArtist, artistFormView{ID: id, Form: artistFormFrom(artist)})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}
	if !s.parseForm(w, r) {
		return
	}
	form := parseArtistForm(r.PostForm)

	errs, err := check(form)
	if err == nil && errs != nil {
		err = errs
	}
	if err == nil {
		_, err = s.artists.Update(r.Context(), id, form.patch(r.PostForm))
	}

	outcome := flash.Outcome{Entity: entityArtist, Action: flash.ActionUpdate, Name: form.Name, Err: err}
	s.recorder.RecordMutation("artist", "update", err)
	if errors.Is(err, store.ErrNotFound) {
		s.renderStatus(w, r, http.StatusNotFound, render.NotFound, nil)
		return
	}
	if err != nil {
		s.renderFormFailure(w, r, err, render.EditArtist, artistFormView{ID: id, Form: form, Errors: errs}, outcome)
		return
	}

	flash.Set(w, outcome)
	http.Redirect(w, r, "/artists/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err = s.artists.Delete(r.Context(), id)
	s.recorder.RecordMutation("artist", "delete", err)
	s.writeDeleteStatus(w, r, flash.Outcome{Entity: entityArtist, Action: flash.ActionDelete, Err: err})
}
