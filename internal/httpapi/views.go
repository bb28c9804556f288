package httpapi

import (
	"net/http"
	"time"

	"fyyur/internal/flash"
	"fyyur/internal/store"
)

// View-models handed to the templates. JSON tags name the keys each page reads.

type artistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type showRow struct {
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type searchView struct {
	SearchTerm string             `json:"search_term"`
	Base       string             `json:"-"`
	Results    store.SearchResult `json:"results"`
}

type artistShow struct {
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

type venueDetail struct {
	store.Venue
	PastShows          []artistShow `json:"past_shows"`
	UpcomingShows      []artistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

type venueShow struct {
	VenueID        int64  `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

type artistDetail struct {
	store.Artist
	PastShows          []venueShow `json:"past_shows"`
	UpcomingShows      []venueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type selectView struct {
	Choices []string
	Value   string
}

type venueFormView struct {
	ID     int64
	Form   venueForm
	Errors fieldErrors
}

func (v venueFormView) StateSelect() selectView {
	return selectView{Choices: stateChoices, Value: v.Form.State}
}

type artistFormView struct {
	ID     int64
	Form   artistForm
	Errors fieldErrors
}

func (v artistFormView) StateSelect() selectView {
	return selectView{Choices: stateChoices, Value: v.Form.State}
}

func (artistFormView) GenreChoices() []string {
	return genreChoices
}

type showFormView struct {
	Form   showForm
	Errors fieldErrors
}

func newVenueDetail(v store.Venue, split store.ShowSplit) venueDetail {
	convert := func(entries []store.ShowEntry) []artistShow {
		out := make([]artistShow, 0, len(entries))
		for _, e := range entries {
			out = append(out, artistShow{
				ArtistID:        e.ID,
				ArtistName:      e.Name,
				ArtistImageLink: e.ImageLink,
				StartTime:       e.StartTime,
			})
		}
		return out
	}
	return venueDetail{
		Venue:              v,
		PastShows:          convert(split.PastShows),
		UpcomingShows:      convert(split.UpcomingShows),
		PastShowsCount:     split.PastShowsCount,
		UpcomingShowsCount: split.UpcomingShowsCount,
	}
}

func newArtistDetail(a store.Artist, split store.ShowSplit) artistDetail {
	convert := func(entries []store.ShowEntry) []venueShow {
		out := make([]venueShow, 0, len(entries))
		for _, e := range entries {
			out = append(out, venueShow{
				VenueID:        e.ID,
				VenueName:      e.Name,
				VenueImageLink: e.ImageLink,
				StartTime:      e.StartTime,
			})
		}
		return out
	}
	return artistDetail{
		Artist:             a,
		PastShows:          convert(split.PastShows),
		UpcomingShows:      convert(split.UpcomingShows),
		PastShowsCount:     split.PastShowsCount,
		UpcomingShowsCount: split.UpcomingShowsCount,
	}
}

func newShowRows(shows []store.ShowDetails) []showRow {
	rows := make([]showRow, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, showRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func flashesFrom(w http.ResponseWriter, r *http.Request) []string {
	return flash.Take(w, r)
}
