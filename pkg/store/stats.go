package store

import (
	"context"
	"fmt"
)

// Stats holds row counts for the corpus tables.
type Stats struct {
	Events      int // The number of lexical events
	Words       int // The number of words across all events
	Definitions int // The number of definitions across all words
	Keys        int // The number of lookup keys across all languages
	Settings    int // The number of release settings rows
}

// GetStats returns a snapshot of the corpus size.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	counts := []struct {
		table string
		dst   *int
	}{
		{"lexical_events", &stats.Events},
		{"words", &stats.Words},
		{"definitions", &stats.Definitions},
		{"lookup_keys", &stats.Keys},
		{"settings", &stats.Settings},
	}
	for _, c := range counts {
		// Table names come from the fixed list above.
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("could not count %s: %w", c.table, err)
		}
	}
	return &stats, nil
}
