package place

import "context"

// Repository is the read side of the place table plus catalog upserts.
type Repository interface {
	// SearchPrefix returns every record whose name starts with prefix, case-insensitively, in table order.
	SearchPrefix(ctx context.Context, prefix string) ([]Record, error)

	// FindByName returns the first record with exactly this name, or ErrPlaceNotFound.
	FindByName(ctx context.Context, name string) (*Record, error)

	// Upsert inserts a record or replaces the coordinates of an existing one with the same name.
	Upsert(ctx context.Context, rec Record) error
}

// SearchCache memoizes prefix searches.
type SearchCache interface {
	Get(ctx context.Context, query string) ([]Candidate, bool, error)
	Set(ctx context.Context, query string, candidates []Candidate) error
	Flush(ctx context.Context) error
}
