package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"moviecat/internal/catalog"
	"moviecat/internal/logging"
	"moviecat/internal/metadata"
	"moviecat/internal/services"
	"moviecat/internal/store"
	"moviecat/internal/textutil"
	"moviecat/internal/website"
)

const component = "library"

const (
	suggestionThreshold = 0.3
	suggestionLimit     = 3
)

// Service coordinates the store, the metadata provider, and the website
// generator.
type Service struct {
	store    store.Store
	provider metadata.Provider
	site     website.Generator
	logger   *slog.Logger
	rand     *rand.Rand
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// WithRand makes random picks reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		s.rand = r
	}
}

// WithIDGenerator overrides correlation ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New assembles a Service. provider may be nil, in which case only manual
// adds are possible.
func New(st store.Store, provider metadata.Provider, site website.Generator, opts ...Option) *Service {
	s := &Service{
		store:    st,
		provider: provider,
		site:     site,
		logger:   logging.NewComponentLogger(nil, component),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LookupEnabled reports whether adds can consult the metadata provider.
func (s *Service) LookupEnabled() bool {
	return metadata.Enabled(s.provider)
}

func (s *Service) begin(ctx context.Context, operation string) (context.Context, *slog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithOperation(ctx, operation)
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, s.newID())
	}
	return ctx, logging.WithContext(ctx, s.logger)
}

func (s *Service) fail(logger *slog.Logger, msg string, err error, attrs ...logging.Attr) error {
	attrs = append(attrs, logging.Error(err), logging.String(logging.FieldErrorKind, services.Kind(err)))
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, catalog.ErrEmptyCollection):
		logger.Info(msg, logging.Args(attrs...)...)
	case errors.Is(err, services.ErrExternal):
		logging.WarnWithContext(logger, msg, "metadata_unreachable",
			append(attrs, logging.String(logging.FieldErrorHint, "check the network connection and metadata base URL"))...)
	default:
		logging.ErrorWithContext(logger, msg, "catalog_operation_failed", attrs...)
	}
	return err
}

// List returns every movie in storage order.
func (s *Service) List(ctx context.Context) ([]catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "list")
	movies, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(logger, "list movies failed", err)
	}
	logger.Debug("movies listed", logging.Int("count", len(movies)))
	return movies, nil
}

// Exists reports whether title is already in the catalog.
func (s *Service) Exists(ctx context.Context, title string) (bool, error) {
	ctx, _ = s.begin(ctx, "exists")
	return s.store.Exists(ctx, title)
}

// Add looks title up through the metadata provider and stores the match
// under the provider's canonical title.
func (s *Service) Add(ctx context.Context, title string) (catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "add")
	if err := catalog.ValidateTitle(title); err != nil {
		return catalog.Movie{}, s.fail(logger, "add rejected", services.Wrap(services.ErrValidation, component, "add", "", err))
	}
	if err := s.ensureAbsent(ctx, title); err != nil {
		return catalog.Movie{}, s.fail(logger, "add rejected", err, logging.Title(title))
	}
	if s.provider == nil {
		return catalog.Movie{}, s.fail(logger, "add rejected",
			services.Wrap(services.ErrConfiguration, component, "add", "no metadata provider configured", metadata.ErrDisabled))
	}

	match, err := s.provider.Lookup(ctx, title)
	if err != nil {
		return catalog.Movie{}, s.fail(logger, "metadata lookup failed", err,
			logging.Title(title), logging.String("provider", s.provider.Name()))
	}
	movie := catalog.Movie{
		Title:     match.Title,
		Year:      match.Year,
		Rating:    match.Rating,
		PosterURL: match.PosterURL,
	}
	if !textutil.EqualFold(movie.Title, title) {
		if err := s.ensureAbsent(ctx, movie.Title); err != nil {
			return catalog.Movie{}, s.fail(logger, "add rejected", err, logging.Title(movie.Title), logging.String("query", title))
		}
	}
	if err := s.store.Insert(ctx, movie); err != nil {
		return catalog.Movie{}, s.fail(logger, "insert failed", err, logging.Title(movie.Title))
	}
	logger.Info("movie added",
		logging.Title(movie.Title),
		logging.Int("year", movie.Year),
		logging.Float64("rating", movie.Rating),
		logging.String("source", match.Source),
	)
	return movie, nil
}

// AddManual stores a movie entered by hand. The year must be at least
// catalog.EarliestFilmYear and the rating within range.
func (s *Service) AddManual(ctx context.Context, movie catalog.Movie) (catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "add")
	if err := validateManual(movie); err != nil {
		return catalog.Movie{}, s.fail(logger, "add rejected", err, logging.Title(movie.Title))
	}
	if err := s.ensureAbsent(ctx, movie.Title); err != nil {
		return catalog.Movie{}, s.fail(logger, "add rejected", err, logging.Title(movie.Title))
	}
	if err := s.store.Insert(ctx, movie); err != nil {
		return catalog.Movie{}, s.fail(logger, "insert failed", err, logging.Title(movie.Title))
	}
	logger.Info("movie added",
		logging.Title(movie.Title),
		logging.Int("year", movie.Year),
		logging.Float64("rating", movie.Rating),
		logging.String("source", "manual"),
	)
	return movie, nil
}

func validateManual(movie catalog.Movie) error {
	if err := catalog.ValidateTitle(movie.Title); err != nil {
		return services.Wrap(services.ErrValidation, component, "add", "", err)
	}
	if movie.Year < catalog.EarliestFilmYear {
		return services.Wrap(services.ErrValidation, component, "add", fmt.Sprintf("year %d is invalid", movie.Year), nil)
	}
	if !catalog.RatingInRange(movie.Rating) {
		return services.Wrap(services.ErrValidation, component, "add",
			fmt.Sprintf("rating %s is invalid", catalog.FormatRating(movie.Rating)), nil)
	}
	return nil
}

func (s *Service) ensureAbsent(ctx context.Context, title string) error {
	exists, err := s.store.Exists(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return services.Wrap(services.ErrDuplicate, component, "add",
			fmt.Sprintf("movie %s is already in your database", title), &catalog.DuplicateError{Title: title})
	}
	return nil
}

// Delete removes the movie matching title, ignoring case.
func (s *Service) Delete(ctx context.Context, title string) error {
	ctx, logger := s.begin(ctx, "delete")
	if err := s.store.Delete(ctx, title); err != nil {
		return s.fail(logger, "delete failed", err, logging.Title(title))
	}
	logger.Info("movie deleted", logging.Title(title))
	return nil
}

// UpdateRating sets a new rating on the movie matching title.
func (s *Service) UpdateRating(ctx context.Context, title string, rating float64) error {
	ctx, logger := s.begin(ctx, "update")
	if !catalog.RatingInRange(rating) {
		err := services.Wrap(services.ErrValidation, component, "update",
			fmt.Sprintf("rating %s is invalid", catalog.FormatRating(rating)), nil)
		return s.fail(logger, "update rejected", err, logging.Title(title))
	}
	if err := s.store.UpdateRating(ctx, title, rating); err != nil {
		return s.fail(logger, "update failed", err, logging.Title(title))
	}
	logger.Info("rating updated", logging.Title(title), logging.Float64("rating", rating))
	return nil
}

// Stats summarizes the catalog. It returns catalog.ErrEmptyCollection when
// there are no movies.
func (s *Service) Stats(ctx context.Context) (catalog.Stats, error) {
	ctx, logger := s.begin(ctx, "stats")
	movies, err := s.store.List(ctx)
	if err != nil {
		return catalog.Stats{}, s.fail(logger, "list movies failed", err)
	}
	stats, err := catalog.Summarize(movies)
	if err != nil {
		return catalog.Stats{}, s.fail(logger, "stats unavailable", err)
	}
	return stats, nil
}

// Random picks one movie uniformly.
func (s *Service) Random(ctx context.Context) (catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "random")
	movies, err := s.store.List(ctx)
	if err != nil {
		return catalog.Movie{}, s.fail(logger, "list movies failed", err)
	}
	movie, err := catalog.PickRandom(movies, s.rand)
	if err != nil {
		return catalog.Movie{}, s.fail(logger, "random pick unavailable", err)
	}
	logger.Debug("random movie picked", logging.Title(movie.Title))
	return movie, nil
}

// Search returns movies whose title contains query, ignoring case.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "search")
	movies, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(logger, "list movies failed", err)
	}
	matches := catalog.Search(movies, query)
	logger.Debug("search finished", logging.String("query", query), logging.Int("matches", len(matches)))
	return matches, nil
}

// Sorted returns the catalog ordered by rating, highest first.
func (s *Service) Sorted(ctx context.Context) ([]catalog.Movie, error) {
	ctx, logger := s.begin(ctx, "sorted")
	movies, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(logger, "list movies failed", err)
	}
	return catalog.SortedByRatingDesc(movies), nil
}

// Suggest returns up to three stored titles resembling title, best first.
func (s *Service) Suggest(ctx context.Context, title string) ([]string, error) {
	ctx, logger := s.begin(ctx, "suggest")
	movies, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(logger, "list movies failed", err)
	}
	titles := make([]string, 0, len(movies))
	for _, movie := range movies {
		titles = append(titles, movie.Title)
	}
	return textutil.Suggest(title, titles, suggestionThreshold, suggestionLimit), nil
}

// GenerateWebsite renders the catalog to the configured output directory
// and returns the path of the written index page.
func (s *Service) GenerateWebsite(ctx context.Context) (string, error) {
	ctx, logger := s.begin(ctx, "website")
	movies, err := s.store.List(ctx)
	if err != nil {
		return "", s.fail(logger, "list movies failed", err)
	}
	path, err := s.site.Generate(movies)
	if err != nil {
		return "", s.fail(logger, "website generation failed", err)
	}
	logger.Info("website generated", logging.String("path", path), logging.Int("movies", len(movies)))
	return path, nil
}
