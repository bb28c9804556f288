package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrArtistNotFound error = &kindError{"artist not found", ErrNotFound}
	ErrInvalidArtist  error = &kindError{"invalid artist", ErrInvalid}
)

// Artist is a performer that plays shows at venues.
type Artist struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"` // empty, never nil, once read back
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	WebsiteLink        string   `json:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// ArtistPatch lists the artist fields an edit changes. Nil fields are left untouched.
type ArtistPatch struct {
	Name               *string
	City               *string
	State              *string
	Phone              *string
	Genres             *[]string
	ImageLink          *string
	FacebookLink       *string
	WebsiteLink        *string
	SeekingVenue       *bool
	SeekingDescription *string
}

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link,
	website_link, seeking_venue, seeking_description`

// ListArtists returns every artist ordered by id.
func (s *Store) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := []Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// SearchArtists matches artist names case-insensitively against term.
func (s *Store) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	return s.searchByName(ctx, `
		SELECT a.id, a.name, COUNT(s.id) FILTER (WHERE s.start_time >= $2)
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE a.name ILIKE $1
		GROUP BY a.id, a.name
		ORDER BY a.id
	`, term)
}

// GetArtist retrieves a single artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (Artist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id)
	a, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return Artist{}, err
	}
	return a, nil
}

// CreateArtist validates and inserts an artist, returning its new id.
func (s *Store) CreateArtist(ctx context.Context, a Artist) (int64, error) {
	if err := validateArtist(a); err != nil {
		return 0, err
	}

	genresJSON, err := encodeGenres(a.Genres)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
			                     website_link, seeking_venue, seeking_description)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)
			RETURNING id
		`, a.Name, a.City, a.State, a.Phone, genresJSON, a.ImageLink, a.FacebookLink,
			a.WebsiteLink, a.SeekingVenue, a.SeekingDescription).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert artist: %w", err)
	}
	return id, nil
}

// UpdateArtist applies patch to the artist and returns the stored result.
func (s *Store) UpdateArtist(ctx context.Context, id int64, patch ArtistPatch) (Artist, error) {
	if err := requireNonBlank(ErrInvalidArtist,
		requiredField{"name", patch.Name},
		requiredField{"city", patch.City},
		requiredField{"state", patch.State},
	); err != nil {
		return Artist{}, err
	}

	var set assignments
	setField(&set, "name", patch.Name)
	setField(&set, "city", patch.City)
	setField(&set, "state", patch.State)
	setField(&set, "phone", patch.Phone)
	if patch.Genres != nil {
		genresJSON, err := encodeGenres(*patch.Genres)
		if err != nil {
			return Artist{}, err
		}
		set.addCast("genres", genresJSON, "jsonb")
	}
	setField(&set, "image_link", patch.ImageLink)
	setField(&set, "facebook_link", patch.FacebookLink)
	setField(&set, "website_link", patch.WebsiteLink)
	setField(&set, "seeking_venue", patch.SeekingVenue)
	setField(&set, "seeking_description", patch.SeekingDescription)
	if set.empty() {
		return s.GetArtist(ctx, id)
	}

	var updated Artist
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`UPDATE artists SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(set.cols, ", "), len(set.args)+1, artistColumns)
		a, err := scanArtist(tx.QueryRowContext(ctx, query, append(set.args, id)...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return Artist{}, fmt.Errorf("update artist %d: %w", id, err)
	}
	return updated, nil
}

// DeleteArtist removes the artist and every show they were booked for.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = $1`, id); err != nil {
			return fmt.Errorf("delete artist shows: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete artist %d: %w", id, err)
	}
	return nil
}

func (s *Store) artistExists(ctx context.Context, id int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrArtistNotFound
	}
	return err
}

func validateArtist(a Artist) error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidArtist)
	case strings.TrimSpace(a.City) == "":
		return fmt.Errorf("%w: city is required", ErrInvalidArtist)
	case strings.TrimSpace(a.State) == "":
		return fmt.Errorf("%w: state is required", ErrInvalidArtist)
	}
	for _, genre := range a.Genres {
		if strings.TrimSpace(genre) == "" {
			return fmt.Errorf("%w: genres cannot contain blank entries", ErrInvalidArtist)
		}
	}
	return nil
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("prepare genres payload: %w", err)
	}
	return string(data), nil
}

func scanArtist(scanner rowScanner) (Artist, error) {
	var (
		a          Artist
		genresJSON []byte
	)
	if err := scanner.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genresJSON, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return Artist{}, err
	}
	if len(genresJSON) > 0 {
		if err := json.Unmarshal(genresJSON, &a.Genres); err != nil {
			return Artist{}, fmt.Errorf("decode genres: %w", err)
		}
	}
	if a.Genres == nil {
		a.Genres = []string{}
	}
	return a, nil
}
