package store

import (
	"context"
	"fmt"
	"strings"
)

// SearchResult is the response shape for name searches.
type SearchResult struct {
	Count int         `json:"count"`
	Data  []SearchHit `json:"data"`
}

// SearchHit is one row matched by a name search.
type SearchHit struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an ILIKE pattern matching it as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// searchByName runs a query taking ($1 pattern, $2 now) and returning (id, name, upcoming count).
func (s *Store) searchByName(ctx context.Context, query, term string) (SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, query, containsPattern(term), s.now())
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	result := SearchResult{Data: []SearchHit{}}
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.ID, &hit.Name, &hit.NumUpcomingShows); err != nil {
			return SearchResult{}, fmt.Errorf("scan search hit: %w", err)
		}
		result.Data = append(result.Data, hit)
	}
	if err := rows.Err(); err != nil {
		return SearchResult{}, fmt.Errorf("iterate search hits: %w", err)
	}

	result.Count = len(result.Data)
	return result, nil
}
