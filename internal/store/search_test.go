package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"":          "%%",
		"Band":      "%Band%",
		"  hop  ":   "%hop%",
		"100%":      `%100\%%`,
		"snake_":    `%snake\_%`,
		`back\path`: `%back\\path%`,
	}
	for term, want := range tests {
		if got := containsPattern(term); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", term, got, want)
		}
	}
}

func TestSearchArtistsBindsTerm(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.name ILIKE $1`)).
		WithArgs("%band%", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(int64(6), "The Wild Sax Band", 2))

	result, err := s.SearchArtists(context.Background(), "band")
	if err != nil {
		t.Fatalf("SearchArtists error: %v", err)
	}
	if result.Count != 1 || result.Data[0] != (SearchHit{ID: 6, Name: "The Wild Sax Band", NumUpcomingShows: 2}) {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestSearchVenuesEmptyTermMatchesAll(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE v.name ILIKE $1`)).
		WithArgs("%%", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(int64(1), "The Fillmore", 0).
			AddRow(int64(2), "The Dueling Pianos Bar", 0).
			AddRow(int64(3), "Park Square Live Music & Coffee", 1))

	result, err := s.SearchVenues(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}
	if result.Count != 3 || len(result.Data) != 3 {
		t.Fatalf("expected every venue, got %#v", result)
	}
}

func TestSearchVenuesNoMatches(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE v.name ILIKE $1`)).
		WithArgs("%zzz%", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}))

	result, err := s.SearchVenues(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("SearchVenues error: %v", err)
	}
	if result.Count != 0 || result.Data == nil {
		t.Fatalf("expected empty non-nil data, got %#v", result)
	}
}
