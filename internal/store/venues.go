package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVenueNotFound error = &kindError{"venue not found", ErrNotFound}
	ErrInvalidVenue  error = &kindError{"invalid venue", ErrInvalid}
)

// Venue is a place that hosts shows.
type Venue struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	ImageLink          string `json:"image_link"`
	FacebookLink       string `json:"facebook_link"`
	WebsiteLink        string `json:"website_link"`
	SeekingTalent      bool   `json:"seeking_talent"`
	SeekingDescription string `json:"seeking_description"`
}

// VenuePatch lists the venue fields an edit changes. Nil fields are left untouched.
type VenuePatch struct {
	Name               *string
	City               *string
	State              *string
	Address            *string
	Phone              *string
	ImageLink          *string
	FacebookLink       *string
	WebsiteLink        *string
	SeekingTalent      *bool
	SeekingDescription *string
}

// Area groups the venues sharing a city and state.
type Area struct {
	City   string      `json:"city"`
	State  string      `json:"state"`
	Venues []AreaVenue `json:"venues"`
}

// AreaVenue is a venue entry inside an Area.
type AreaVenue struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website_link, seeking_talent, seeking_description`

// ListVenues returns every venue ordered by id.
func (s *Store) ListVenues(ctx context.Context) ([]Venue, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	venues := []Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}

// VenuesByArea groups venues by (city, state) with their upcoming show counts.
func (s *Store) VenuesByArea(ctx context.Context) ([]Area, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		GROUP BY v.id, v.name, v.city, v.state
		ORDER BY v.state, v.city, v.id
	`, s.now())
	if err != nil {
		return nil, fmt.Errorf("list venue areas: %w", err)
	}
	defer rows.Close()

	type areaKey struct{ city, state string }
	areas := []Area{}
	index := make(map[areaKey]int)
	for rows.Next() {
		var (
			entry       AreaVenue
			city, state string
		)
		if err := rows.Scan(&entry.ID, &entry.Name, &city, &state, &entry.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue area: %w", err)
		}
		key := areaKey{city, state}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: city, State: state, Venues: []AreaVenue{}})
		}
		areas[i].Venues = append(areas[i].Venues, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venue areas: %w", err)
	}
	return areas, nil
}

// SearchVenues matches venue names case-insensitively against term.
func (s *Store) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	return s.searchByName(ctx, `
		SELECT v.id, v.name, COUNT(s.id) FILTER (WHERE s.start_time >= $2)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE $1
		GROUP BY v.id, v.name
		ORDER BY v.id
	`, term)
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id int64) (Venue, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return Venue{}, err
	}
	return v, nil
}

// CreateVenue validates and inserts a venue, returning its new id.
func (s *Store) CreateVenue(ctx context.Context, v Venue) (int64, error) {
	if err := validateVenue(v); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
			                    website_link, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			v.WebsiteLink, v.SeekingTalent, v.SeekingDescription).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert venue: %w", err)
	}
	return id, nil
}

// UpdateVenue applies patch to the venue and returns the stored result.
func (s *Store) UpdateVenue(ctx context.Context, id int64, patch VenuePatch) (Venue, error) {
	if err := validateVenuePatch(patch); err != nil {
		return Venue{}, err
	}

	var set assignments
	setField(&set, "name", patch.Name)
	setField(&set, "city", patch.City)
	setField(&set, "state", patch.State)
	setField(&set, "address", patch.Address)
	setField(&set, "phone", patch.Phone)
	setField(&set, "image_link", patch.ImageLink)
	setField(&set, "facebook_link", patch.FacebookLink)
	setField(&set, "website_link", patch.WebsiteLink)
	setField(&set, "seeking_talent", patch.SeekingTalent)
	setField(&set, "seeking_description", patch.SeekingDescription)
	if set.empty() {
		return s.GetVenue(ctx, id)
	}

	var updated Venue
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`UPDATE venues SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(set.cols, ", "), len(set.args)+1, venueColumns)
		v, err := scanVenue(tx.QueryRowContext(ctx, query, append(set.args, id)...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		if err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return Venue{}, fmt.Errorf("update venue %d: %w", id, err)
	}
	return updated, nil
}

// DeleteVenue removes the venue and every show booked there.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = $1`, id); err != nil {
			return fmt.Errorf("delete venue shows: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	return nil
}

// venueExists reports ErrVenueNotFound when id names no venue.
func (s *Store) venueExists(ctx context.Context, id int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVenueNotFound
	}
	return err
}

func validateVenue(v Venue) error {
	switch {
	case strings.TrimSpace(v.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidVenue)
	case strings.TrimSpace(v.City) == "":
		return fmt.Errorf("%w: city is required", ErrInvalidVenue)
	case strings.TrimSpace(v.State) == "":
		return fmt.Errorf("%w: state is required", ErrInvalidVenue)
	case strings.TrimSpace(v.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidVenue)
	}
	return nil
}

func validateVenuePatch(p VenuePatch) error {
	return requireNonBlank(ErrInvalidVenue,
		requiredField{"name", p.Name},
		requiredField{"city", p.City},
		requiredField{"state", p.State},
		requiredField{"address", p.Address},
	)
}

func scanVenue(scanner rowScanner) (Venue, error) {
	var v Venue
	err := scanner.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent, &v.SeekingDescription)
	return v, err
}
