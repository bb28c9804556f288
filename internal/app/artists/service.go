package artists

import (
	"context"

	"fyyur/internal/store"
)

// Store defines persistence operations for artists
type Store interface {
	ListArtists(ctx context.Context) ([]store.Artist, error)
	SearchArtists(ctx context.Context, term string) (store.SearchResult, error)
	GetArtist(ctx context.Context, id int64) (store.Artist, error)
	ArtistShows(ctx context.Context, id int64) (store.ShowSplit, error)
	CreateArtist(ctx context.Context, a store.Artist) (int64, error)
	UpdateArtist(ctx context.Context, id int64, patch store.ArtistPatch) (store.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// Service coordinates artist-related operations
type Service interface {
	List(ctx context.Context) ([]store.Artist, error)
	Search(ctx context.Context, term string) (store.SearchResult, error)
	Get(ctx context.Context, id int64) (store.Artist, error)
	Shows(ctx context.Context, id int64) (store.ShowSplit, error)
	Create(ctx context.Context, a store.Artist) (int64, error)
	Update(ctx context.Context, id int64, patch store.ArtistPatch) (store.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs an artists Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) (store.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return store.SearchResult{}, err
	}
	return s.store.SearchArtists(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Shows(ctx context.Context, id int64) (store.ShowSplit, error) {
	if err := ctx.Err(); err != nil {
		return store.ShowSplit{}, err
	}
	return s.store.ArtistShows(ctx, id)
}

func (s *service) Create(ctx context.Context, a store.Artist) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateArtist(ctx, a)
}

func (s *service) Update(ctx context.Context, id int64, patch store.ArtistPatch) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	return s.store.UpdateArtist(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}
