package httpapi

import (
	"net/http"
	"time"

	"fyyur/internal/flash"
	"fyyur/internal/render"
)

const entityShow = "Show"

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.Shows, newShowRows(shows), flashesFrom(w, r)...)
}

func (s *Server) handleNewShowForm(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusOK, render.NewShow, showFormView{Form: newShowForm(time.Now().UTC())})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	form := parseShowForm(r.PostForm)

	errs, err := check(form)
	if err == nil && errs == nil {
		show, convErrs := form.show()
		if convErrs != nil {
			errs = convErrs
		} else {
			_, err = s.shows.Create(r.Context(), show)
		}
	}
	if err == nil && errs != nil {
		err = errs
	}

	outcome := flash.Outcome{Entity: entityShow, Action: flash.ActionCreate, Err: err}
	s.recorder.RecordMutation("show", "create", err)
	if err != nil {
		s.renderFormFailure(w, r, err, render.NewShow, showFormView{Form: form, Errors: errs}, outcome)
		return
	}
	s.renderStatus(w, r, http.StatusOK, render.Home, nil, outcome.String())
}
