package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var listingColumns = []string{"show_id", "id", "name", "image_link", "start_time"}

func TestVenueShowsSplitsAroundNow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM venues WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.venue_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(listingColumns).
			AddRow(int64(10), int64(4), "Guns N Petals", "gnp.jpg", fixedNow.Add(-48*time.Hour)).
			AddRow(int64(11), int64(5), "Matt Quevedo", "mq.jpg", fixedNow.Add(-time.Hour)).
			AddRow(int64(12), int64(6), "The Wild Sax Band", "wsb.jpg", fixedNow).
			AddRow(int64(13), int64(6), "The Wild Sax Band", "wsb.jpg", fixedNow.Add(24*time.Hour)))

	split, err := s.VenueShows(context.Background(), 1)
	if err != nil {
		t.Fatalf("VenueShows error: %v", err)
	}

	if split.PastShowsCount != 2 || split.UpcomingShowsCount != 2 {
		t.Fatalf("unexpected counts: past=%d upcoming=%d", split.PastShowsCount, split.UpcomingShowsCount)
	}
	if split.PastShows[0].Name != "Matt Quevedo" {
		t.Fatalf("expected most recent past show first, got %#v", split.PastShows)
	}
	if split.UpcomingShows[0].StartTime != "03/01/25, 18:00" {
		t.Fatalf("expected show starting now to be upcoming, got %#v", split.UpcomingShows)
	}
	want := ShowEntry{ID: 6, Name: "The Wild Sax Band", ImageLink: "wsb.jpg", StartTime: "03/02/25, 18:00"}
	if split.UpcomingShows[1] != want {
		t.Fatalf("unexpected upcoming entry: %#v", split.UpcomingShows[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArtistShowsOneHourAhead(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM artists WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.artist_id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(listingColumns).
			AddRow(int64(1), int64(1), "The Fillmore", "fillmore.jpg", fixedNow.Add(time.Hour)))

	split, err := s.ArtistShows(context.Background(), 4)
	if err != nil {
		t.Fatalf("ArtistShows error: %v", err)
	}
	if split.UpcomingShowsCount != 1 || split.PastShowsCount != 0 {
		t.Fatalf("unexpected split: %#v", split)
	}
	if len(split.PastShows) != 0 || split.PastShows == nil {
		t.Fatalf("expected empty past list, got %#v", split.PastShows)
	}
}

func TestArtistShowsUnknownArtist(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM artists WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.ArtistShows(context.Background(), 99)
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
}

func TestShowsForVenueIsLazyAndRestartable(t *testing.T) {
	s, mock := newMockStore(t)

	seq := s.ShowsForVenue(context.Background(), 1)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("query ran before ranging: %v", err)
	}

	for range 2 {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.venue_id = $1`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(listingColumns).
				AddRow(int64(1), int64(4), "Guns N Petals", "", fixedNow).
				AddRow(int64(2), int64(5), "Matt Quevedo", "", fixedNow))
	}

	for pass := range 2 {
		var names []string
		for l, err := range seq {
			if err != nil {
				t.Fatalf("pass %d: %v", pass, err)
			}
			names = append(names, l.Name)
		}
		if len(names) != 2 {
			t.Fatalf("pass %d: expected 2 listings, got %v", pass, names)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowUnknownVenue(t *testing.T) {
	s, mock := newMockStore(t)
	start := fixedNow.Add(72 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shows (artist_id, venue_id, start_time)`)).
		WithArgs(int64(4), int64(404), start).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := s.CreateShow(context.Background(), Show{ArtistID: 4, VenueID: 404, StartTime: start})
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowValidation(t *testing.T) {
	s, mock := newMockStore(t)

	_, err := s.CreateShow(context.Background(), Show{ArtistID: 4, VenueID: 1})
	if !errors.Is(err, ErrInvalidShow) {
		t.Fatalf("expected ErrInvalidShow, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("storage was touched: %v", err)
	}
}

func TestListShowsAfterVenueDelete(t *testing.T) {
	s, mock := newMockStore(t)
	columns := []string{"id", "venue_id", "venue_name", "artist_id", "artist_name", "artist_image_link", "start_time"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows s`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(1), "The Fillmore", int64(4), "Guns N Petals", "", fixedNow).
			AddRow(int64(2), int64(1), "The Fillmore", int64(5), "Matt Quevedo", "", fixedNow).
			AddRow(int64(3), int64(3), "Park Square", int64(6), "The Wild Sax Band", "", fixedNow))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM shows WHERE venue_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM venues WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM shows s`)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), int64(3), "Park Square", int64(6), "The Wild Sax Band", "", fixedNow))

	before, err := s.ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows error: %v", err)
	}
	if err := s.DeleteVenue(context.Background(), 1); err != nil {
		t.Fatalf("DeleteVenue error: %v", err)
	}
	after, err := s.ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows error: %v", err)
	}

	if len(before)-len(after) != 2 {
		t.Fatalf("expected 2 shows removed, before=%d after=%d", len(before), len(after))
	}
	for _, show := range after {
		if show.VenueID == 1 {
			t.Fatalf("show %d still references deleted venue", show.ID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
