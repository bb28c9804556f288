package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type page struct {
	Flashes   []string
	CSRFToken string
	Data      any
}

type selectField struct {
	Choices []string
	Value   string
}

type venueForm struct {
	ID     int64
	Form   map[string]any
	Errors map[string]string
}

func (v venueForm) StateSelect() selectField {
	return selectField{Choices: []string{"CA", "NY"}, Value: "CA"}
}

func (venueForm) GenreChoices() []string {
	return []string{"Jazz", "Reggae"}
}

func renderPage(t *testing.T, r *Renderer, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, name, page{CSRFToken: "tok", Data: data}); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestRenderEveryPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	show := map[string]any{
		"ArtistID": 4, "ArtistName": "Guns N Petals", "ArtistImageLink": "",
		"VenueID": 1, "VenueName": "The Fillmore", "VenueImageLink": "",
		"StartTime": "05/21/19, 21:30",
	}
	detail := map[string]any{
		"ID": 1, "Name": "The Fillmore", "Address": "1805 Geary Blvd", "City": "San Francisco", "State": "CA",
		"Phone": "", "WebsiteLink": "", "FacebookLink": "", "ImageLink": "", "Genres": []string{"Jazz"},
		"SeekingTalent": true, "SeekingVenue": false, "SeekingDescription": "Weekend acts",
		"PastShows": []map[string]any{show}, "UpcomingShows": []map[string]any{},
		"PastShowsCount": 1, "UpcomingShowsCount": 0,
	}
	form := venueForm{
		ID: 1,
		Form: map[string]any{
			"Name": "The Fillmore", "City": "", "Address": "", "Phone": "", "ImageLink": "",
			"FacebookLink": "", "WebsiteLink": "", "SeekingTalent": false, "SeekingVenue": true,
			"SeekingDescription": "", "Genres": []string{"Jazz"},
			"ArtistID": "4", "VenueID": "", "StartTime": "2035-04-01 20:00",
		},
		Errors: map[string]string{"city": "city is required"},
	}
	search := map[string]any{
		"SearchTerm": "Music",
		"Base":       "/venues",
		"Results": map[string]any{
			"Count": 1,
			"Data":  []map[string]any{{"ID": 3, "Name": "Park Square Live Music & Coffee", "NumUpcomingShows": 1}},
		},
	}

	tests := []struct {
		page string
		data any
		want string
	}{
		{Home, nil, "Post a venue"},
		{Venues, []map[string]any{{"City": "San Francisco", "State": "CA", "Venues": []map[string]any{{"ID": 1, "Name": "The Fillmore", "NumUpcomingShows": 0}}}}, "San Francisco, CA"},
		{Artists, []map[string]any{{"ID": 4, "Name": "Guns N Petals"}}, `href="/artists/4"`},
		{Shows, []map[string]any{{"ArtistID": 4, "ArtistName": "Guns N Petals", "ArtistImageLink": "", "VenueID": 1, "VenueName": "The Fillmore", "StartTime": "2019-05-21T21:30:00Z"}}, "Tuesday May, 21, 2019 at 9:30PM"},
		{SearchVenues, search, `href="/venues/3"`},
		{SearchArtists, search, `Number of search results for "Music": 1`},
		{ShowVenue, detail, "Guns N Petals"},
		{ShowArtist, detail, "The Fillmore"},
		{NewVenue, form, "city is required"},
		{EditVenue, form, `action="/venues/1/edit"`},
		{NewArtist, form, `<option value="Jazz" selected>`},
		{EditArtist, form, `action="/artists/1/edit"`},
		{NewShow, form, `value="2035-04-01 20:00"`},
		{BadRequest, "The form expired.", "The form expired."},
		{NotFound, nil, "404"},
		{ServerError, nil, "500"},
	}

	for _, tc := range tests {
		t.Run(tc.page, func(t *testing.T) {
			out := renderPage(t, r, tc.page, tc.data)
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in output:\n%s", tc.want, out)
			}
			if !strings.Contains(out, `name="csrf_token" value="tok"`) {
				t.Fatalf("expected csrf token in layout")
			}
		})
	}
}

func TestRenderFlashesAreEscaped(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	err = r.Render(&buf, Home, page{Flashes: []string{"Venue <b>X</b> was successfully listed!"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Venue &lt;b&gt;X&lt;/b&gt; was successfully listed!") {
		t.Fatalf("expected escaped flash, got:\n%s", buf.String())
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "pages/missing", nil); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestDatetimeFilter(t *testing.T) {
	got, err := datetime("2019-05-21T21:30:00.000Z")
	if err != nil || got != "Tue May, 21, 2019 9:30PM" {
		t.Fatalf("unexpected medium output %q (%v)", got, err)
	}
	if _, err := datetime("2019-05-21", "short"); err == nil {
		t.Fatalf("expected unknown style error")
	}
}
