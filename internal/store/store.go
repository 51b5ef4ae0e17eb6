package store

import (
	"context"
	"fmt"

	"moviecat/internal/catalog"
	"moviecat/internal/config"
	"moviecat/internal/services"
)

const component = "store"

// Store is the persistence capability the catalog service depends on.
// Title arguments are matched case-insensitively.
type Store interface {
	List(ctx context.Context) ([]catalog.Movie, error)
	Exists(ctx context.Context, title string) (bool, error)
	Get(ctx context.Context, title string) (catalog.Movie, error)
	Insert(ctx context.Context, movie catalog.Movie) error
	Delete(ctx context.Context, title string) error
	UpdateRating(ctx context.Context, title string, rating float64) error
	Close() error
}

// Open creates the directories the configuration names and opens the
// configured backend.
func Open(cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "open", "configuration is required", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite, "":
		s, err := OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendJSON:
		s, err := OpenJSON(cfg.Storage.JSONPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, component, "open",
			fmt.Sprintf("unsupported storage backend %q", cfg.Storage.Backend), nil)
	}
}

// validateForInsert applies the record invariants shared by every backend.
func validateForInsert(movie catalog.Movie) error {
	if err := catalog.ValidateTitle(movie.Title); err != nil {
		return services.Wrap(services.ErrValidation, component, "insert", "invalid title", err)
	}
	if !catalog.RatingInRange(movie.Rating) {
		return services.Wrap(services.ErrValidation, component, "insert",
			fmt.Sprintf("rating %s outside %g..%g", catalog.FormatRating(movie.Rating), catalog.MinRating, catalog.MaxRating), nil)
	}
	return nil
}

func validateRating(rating float64) error {
	if !catalog.RatingInRange(rating) {
		return services.Wrap(services.ErrValidation, component, "update rating",
			fmt.Sprintf("rating %s outside %g..%g", catalog.FormatRating(rating), catalog.MinRating, catalog.MaxRating), nil)
	}
	return nil
}

func notFound(operation, title string) error {
	return services.Wrap(services.ErrNotFound, component, operation, fmt.Sprintf("movie %q doesn't exist", title), nil)
}

func duplicate(title string) error {
	return services.Wrap(services.ErrDuplicate, component, "insert", fmt.Sprintf("movie %q already exists", title), &catalog.DuplicateError{Title: title})
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
