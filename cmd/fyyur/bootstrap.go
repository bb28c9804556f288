package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type seedVenue struct {
	Name, City, State, Address, Phone string
	ImageLink, FacebookLink, Website  string
	SeekingTalent                     bool
	SeekingDescription                string
}

type seedArtist struct {
	Name, City, State, Phone         string
	Genres                           []string
	ImageLink, FacebookLink, Website string
	SeekingVenue                     bool
	SeekingDescription               string
}

type seedShow struct {
	Venue, Artist string
	StartTime     time.Time
}

var demoVenues = []seedVenue{
	{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		Website:            "https://www.themusicalhop.com",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
	},
	{
		Name:         "The Dueling Pianos Bar",
		City:         "New York",
		State:        "NY",
		Address:      "335 Delancey Street",
		Phone:        "914-003-1132",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		Website:      "https://www.theduelingpianos.com",
	},
	{
		Name:         "Park Square Live Music & Coffee",
		City:         "San Francisco",
		State:        "CA",
		Address:      "34 Whiskey Moore Ave",
		Phone:        "415-000-1234",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		Website:      "https://www.parksquarelivemusicandcoffee.com",
	},
}

var demoArtists = []seedArtist{
	{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             []string{"Rock n Roll"},
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		Website:            "https://www.gunsnpetalsband.com",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	},
	{
		Name:         "Matt Quevedo",
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		Genres:       []string{"Jazz"},
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
	},
	{
		Name:      "The Wild Sax Band",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		Genres:    []string{"Jazz", "Classical"},
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61",
	},
}

var demoShows = []seedShow{
	{Venue: "The Musical Hop", Artist: "Guns N Petals", StartTime: time.Date(2019, time.May, 21, 21, 30, 0, 0, time.UTC)},
	{Venue: "Park Square Live Music & Coffee", Artist: "Matt Quevedo", StartTime: time.Date(2019, time.June, 15, 23, 0, 0, 0, time.UTC)},
	{Venue: "Park Square Live Music & Coffee", Artist: "The Wild Sax Band", StartTime: time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)},
	{Venue: "Park Square Live Music & Coffee", Artist: "The Wild Sax Band", StartTime: time.Date(2035, time.April, 8, 20, 0, 0, 0, time.UTC)},
	{Venue: "Park Square Live Music & Coffee", Artist: "The Wild Sax Band", StartTime: time.Date(2035, time.April, 15, 20, 0, 0, 0, time.UTC)},
}

// bootstrapDemoData fills an empty database with a handful of venues, artists
// and shows. It does nothing once any venue exists.
func bootstrapDemoData(ctx context.Context, db *sql.DB) error {
	venuesTableExists, err := tableExists(ctx, db, "venues")
	if err != nil {
		return fmt.Errorf("check venues table: %w", err)
	}
	if !venuesTableExists {
		log.Warn().Msg("venues table missing, run migrations before seeding")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	venueIDs := make(map[string]int64, len(demoVenues))
	for _, v := range demoVenues {
		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, website_link, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription).Scan(&id); err != nil {
			return fmt.Errorf("insert demo venue %q: %w", v.Name, err)
		}
		venueIDs[v.Name] = id
	}

	artistIDs := make(map[string]int64, len(demoArtists))
	for _, a := range demoArtists {
		genresJSON, err := json.Marshal(a.Genres)
		if err != nil {
			return fmt.Errorf("marshal genres for %q: %w", a.Name, err)
		}

		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link, website_link, seeking_venue, seeking_description)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)
			RETURNING id
		`, a.Name, a.City, a.State, a.Phone, string(genresJSON), a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription).Scan(&id); err != nil {
			return fmt.Errorf("insert demo artist %q: %w", a.Name, err)
		}
		artistIDs[a.Name] = id
	}

	for _, s := range demoShows {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shows (artist_id, venue_id, start_time)
			VALUES ($1, $2, $3)
		`, artistIDs[s.Artist], venueIDs[s.Venue], s.StartTime); err != nil {
			return fmt.Errorf("insert demo show for %q at %q: %w", s.Artist, s.Venue, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().
		Int("venues", len(demoVenues)).
		Int("artists", len(demoArtists)).
		Int("shows", len(demoShows)).
		Msg("seeded demo data")
	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
