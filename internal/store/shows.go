package store

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"slices"
	"time"

	"fyyur/internal/format"
)

var ErrInvalidShow error = &kindError{"invalid show", ErrInvalid}

// Show books an artist at a venue for a start time.
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artist_id"`
	VenueID   int64     `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowDetails is a show joined with the names needed to list it.
type ShowDetails struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowListing is one show seen from a venue or an artist. ID, Name and ImageLink
// describe the other side of the booking: the artist for a venue, the venue for an artist.
type ShowListing struct {
	ShowID    int64
	ID        int64
	Name      string
	ImageLink string
	StartTime time.Time
}

// ShowEntry is a ShowListing with its start time formatted for display.
type ShowEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImageLink string `json:"image_link"`
	StartTime string `json:"start_time"`
}

// ShowSplit partitions an entity's shows around the current time.
type ShowSplit struct {
	PastShows          []ShowEntry `json:"past_shows"`
	UpcomingShows      []ShowEntry `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ListShows returns every show with its venue and artist names, earliest first.
func (s *Store) ListShows(ctx context.Context) ([]ShowDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
		FROM shows s
		INNER JOIN venues v ON s.venue_id = v.id
		INNER JOIN artists a ON s.artist_id = a.id
		ORDER BY s.start_time, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	shows := []ShowDetails{}
	for rows.Next() {
		var d ShowDetails
		if err := rows.Scan(&d.ID, &d.VenueID, &d.VenueName, &d.ArtistID, &d.ArtistName,
			&d.ArtistImageLink, &d.StartTime); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	return shows, nil
}

// CreateShow validates and inserts a show, returning its new id. Unknown artist or
// venue ids surface as ErrConstraint.
func (s *Store) CreateShow(ctx context.Context, show Show) (int64, error) {
	if err := validateShow(show); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO shows (artist_id, venue_id, start_time)
			VALUES ($1, $2, $3)
			RETURNING id
		`, show.ArtistID, show.VenueID, show.StartTime.UTC()).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert show: %w", err)
	}
	return id, nil
}

// ShowsForVenue lazily yields the venue's shows with the booked artist, earliest first.
// The query runs each time the sequence is ranged over.
func (s *Store) ShowsForVenue(ctx context.Context, venueID int64) iter.Seq2[ShowListing, error] {
	return s.showListings(ctx, `
		SELECT s.id, a.id, a.name, a.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		WHERE s.venue_id = $1
		ORDER BY s.start_time, s.id
	`, venueID)
}

// ShowsForArtist lazily yields the artist's shows with the hosting venue, earliest first.
func (s *Store) ShowsForArtist(ctx context.Context, artistID int64) iter.Seq2[ShowListing, error] {
	return s.showListings(ctx, `
		SELECT s.id, v.id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.artist_id = $1
		ORDER BY s.start_time, s.id
	`, artistID)
}

// VenueShows splits a venue's shows into past and upcoming.
func (s *Store) VenueShows(ctx context.Context, venueID int64) (ShowSplit, error) {
	if err := s.venueExists(ctx, venueID); err != nil {
		return ShowSplit{}, err
	}
	return s.splitShows(s.ShowsForVenue(ctx, venueID))
}

// ArtistShows splits an artist's shows into past and upcoming.
func (s *Store) ArtistShows(ctx context.Context, artistID int64) (ShowSplit, error) {
	if err := s.artistExists(ctx, artistID); err != nil {
		return ShowSplit{}, err
	}
	return s.splitShows(s.ShowsForArtist(ctx, artistID))
}

func (s *Store) showListings(ctx context.Context, query string, id int64) iter.Seq2[ShowListing, error] {
	return func(yield func(ShowListing, error) bool) {
		rows, err := s.db.QueryContext(ctx, query, id)
		if err != nil {
			yield(ShowListing{}, fmt.Errorf("query shows: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var l ShowListing
			if err := rows.Scan(&l.ShowID, &l.ID, &l.Name, &l.ImageLink, &l.StartTime); err != nil {
				yield(ShowListing{}, fmt.Errorf("scan show: %w", err))
				return
			}
			if !yield(l, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(ShowListing{}, fmt.Errorf("iterate shows: %w", err))
		}
	}
}

// splitShows partitions listings ordered by start time. A show starting exactly now is upcoming.
func (s *Store) splitShows(listings iter.Seq2[ShowListing, error]) (ShowSplit, error) {
	now := s.now()
	split := ShowSplit{PastShows: []ShowEntry{}, UpcomingShows: []ShowEntry{}}
	for l, err := range listings {
		if err != nil {
			return ShowSplit{}, err
		}
		entry := ShowEntry{
			ID:        l.ID,
			Name:      l.Name,
			ImageLink: l.ImageLink,
			StartTime: format.ShowTime(l.StartTime),
		}
		if l.StartTime.Before(now) {
			split.PastShows = append(split.PastShows, entry)
		} else {
			split.UpcomingShows = append(split.UpcomingShows, entry)
		}
	}
	slices.Reverse(split.PastShows)
	split.PastShowsCount = len(split.PastShows)
	split.UpcomingShowsCount = len(split.UpcomingShows)
	return split, nil
}

func validateShow(show Show) error {
	switch {
	case show.ArtistID <= 0:
		return fmt.Errorf("%w: artist_id is required", ErrInvalidShow)
	case show.VenueID <= 0:
		return fmt.Errorf("%w: venue_id is required", ErrInvalidShow)
	case show.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrInvalidShow)
	}
	return nil
}
