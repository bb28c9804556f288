package shows

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyyur/internal/store"
)

type stubStore struct {
	created []store.Show
}

func (s *stubStore) ListShows(context.Context) ([]store.ShowDetails, error) {
	return nil, nil
}

func (s *stubStore) CreateShow(_ context.Context, show store.Show) (int64, error) {
	s.created = append(s.created, show)
	return int64(len(s.created)), nil
}

type stubVenues struct{ known map[int64]bool }

func (s stubVenues) Get(_ context.Context, id int64) (store.Venue, error) {
	if !s.known[id] {
		return store.Venue{}, store.ErrVenueNotFound
	}
	return store.Venue{ID: id}, nil
}

type stubArtists struct{ known map[int64]bool }

func (s stubArtists) Get(_ context.Context, id int64) (store.Artist, error) {
	if !s.known[id] {
		return store.Artist{}, store.ErrArtistNotFound
	}
	return store.Artist{ID: id}, nil
}

func TestCreateChecksReferences(t *testing.T) {
	start := time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		show    store.Show
		wantErr error
	}{
		{name: "both exist", show: store.Show{ArtistID: 4, VenueID: 1, StartTime: start}},
		{name: "unknown artist", show: store.Show{ArtistID: 9, VenueID: 1, StartTime: start}, wantErr: store.ErrConstraint},
		{name: "unknown venue", show: store.Show{ArtistID: 4, VenueID: 9, StartTime: start}, wantErr: store.ErrConstraint},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &stubStore{}
			svc := New(st,
				stubVenues{known: map[int64]bool{1: true}},
				stubArtists{known: map[int64]bool{4: true}},
			)

			id, err := svc.Create(context.Background(), tc.show)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(st.created) != 0 {
					t.Fatalf("expected no insert, got %#v", st.created)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create error: %v", err)
			}
			if id != 1 {
				t.Fatalf("expected id 1, got %d", id)
			}
		})
	}
}

func TestCreateHonoursCancelledContext(t *testing.T) {
	st := &stubStore{}
	svc := New(st, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Create(ctx, store.Show{ArtistID: 1, VenueID: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(st.created) != 0 {
		t.Fatalf("expected no insert")
	}
}
