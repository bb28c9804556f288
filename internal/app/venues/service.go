package venues

import (
	"context"

	"fyyur/internal/store"
)

// Store defines persistence operations for venues
type Store interface {
	ListVenues(ctx context.Context) ([]store.Venue, error)
	VenuesByArea(ctx context.Context) ([]store.Area, error)
	SearchVenues(ctx context.Context, term string) (store.SearchResult, error)
	GetVenue(ctx context.Context, id int64) (store.Venue, error)
	VenueShows(ctx context.Context, id int64) (store.ShowSplit, error)
	CreateVenue(ctx context.Context, v store.Venue) (int64, error)
	UpdateVenue(ctx context.Context, id int64, patch store.VenuePatch) (store.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
}

// Service coordinates venue-related operations
type Service interface {
	List(ctx context.Context) ([]store.Venue, error)
	ByArea(ctx context.Context) ([]store.Area, error)
	Search(ctx context.Context, term string) (store.SearchResult, error)
	Get(ctx context.Context, id int64) (store.Venue, error)
	Shows(ctx context.Context, id int64) (store.ShowSplit, error)
	Create(ctx context.Context, v store.Venue) (int64, error)
	Update(ctx context.Context, id int64, patch store.VenuePatch) (store.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a venues Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]store.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx)
}

func (s *service) ByArea(ctx context.Context) ([]store.Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.VenuesByArea(ctx)
}

func (s *service) Search(ctx context.Context, term string) (store.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return store.SearchResult{}, err
	}
	return s.store.SearchVenues(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (store.Venue, error) {
	if err := ctx.Err(); err != nil {
		return store.Venue{}, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Shows(ctx context.Context, id int64) (store.ShowSplit, error) {
	if err := ctx.Err(); err != nil {
		return store.ShowSplit{}, err
	}
	return s.store.VenueShows(ctx, id)
}

func (s *service) Create(ctx context.Context, v store.Venue) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateVenue(ctx, v)
}

func (s *service) Update(ctx context.Context, id int64, patch store.VenuePatch) (store.Venue, error) {
	if err := ctx.Err(); err != nil {
		return store.Venue{}, err
	}
	return s.store.UpdateVenue(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}
