package shows

import (
	"context"
	"errors"
	"fmt"

	"fyyur/internal/store"
)

// Store defines persistence operations for shows
type Store interface {
	ListShows(ctx context.Context) ([]store.ShowDetails, error)
	CreateShow(ctx context.Context, show store.Show) (int64, error)
}

// VenueService allows validating that venues exist before booking shows
type VenueService interface {
	Get(ctx context.Context, id int64) (store.Venue, error)
}

// ArtistService allows validating that artists exist before booking shows
type ArtistService interface {
	Get(ctx context.Context, id int64) (store.Artist, error)
}

// Service coordinates show-related operations
type Service interface {
	List(ctx context.Context) ([]store.ShowDetails, error)
	Create(ctx context.Context, show store.Show) (int64, error)
}

type service struct {
	store   Store
	venues  VenueService
	artists ArtistService
}

// New constructs a shows Service. venues and artists may be nil, leaving
// reference checks to the database constraints.
func New(store Store, venues VenueService, artists ArtistService) Service {
	return &service{
		store:   store,
		venues:  venues,
		artists: artists,
	}
}

func (s *service) List(ctx context.Context) ([]store.ShowDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx)
}

func (s *service) Create(ctx context.Context, show store.Show) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if s.artists != nil && show.ArtistID > 0 {
		if _, err := s.artists.Get(ctx, show.ArtistID); err != nil {
			return 0, missingReference("artist", show.ArtistID, err)
		}
	}
	if s.venues != nil && show.VenueID > 0 {
		if _, err := s.venues.Get(ctx, show.VenueID); err != nil {
			return 0, missingReference("venue", show.VenueID, err)
		}
	}

	return s.store.CreateShow(ctx, show)
}

func missingReference(kind string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", store.ErrConstraint, kind, id)
	}
	return err
}
