package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moviecat/internal/config"
	"moviecat/internal/metadata/omdb"
	"moviecat/internal/metadata/tmdb"
	"moviecat/internal/services"
)

const component = "metadata"

// New builds the provider selected by cfg.Metadata.Provider. httpClient may
// be nil, in which case a client with the configured timeout is used.
func New(cfg *config.Config, httpClient *http.Client) (Provider, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "configuration is required", nil)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Metadata.TimeoutSeconds) * time.Second}
	}

	switch cfg.Metadata.Provider {
	case config.ProviderNone:
		return unavailable{name: config.ProviderNone, err: services.Wrap(services.ErrConfiguration, component, "lookup",
			"set metadata.provider to omdb or tmdb, or add movies manually", ErrDisabled)}, nil
	case config.ProviderOMDb, config.ProviderTMDB:
	default:
		return nil, services.Wrap(services.ErrConfiguration, component, "init",
			fmt.Sprintf("unsupported provider %q", cfg.Metadata.Provider), nil)
	}

	key, err := cfg.MetadataAPIKey()
	if err != nil {
		return unavailable{name: cfg.Metadata.Provider, err: services.Wrap(services.ErrConfiguration, component, "lookup", "", err)}, nil
	}

	if cfg.Metadata.Provider == config.ProviderTMDB {
		client, err := tmdb.New(key, cfg.Metadata.TMDBBaseURL, cfg.Metadata.Language, tmdb.WithHTTPClient(httpClient))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, component, "init", "tmdb client", err)
		}
		return NewTMDB(client, cfg.Metadata.TMDBImageBaseURL), nil
	}
	client, err := omdb.New(key, cfg.Metadata.OMDbBaseURL, omdb.WithHTTPClient(httpClient))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "omdb client", err)
	}
	return NewOMDb(client), nil
}

// Enabled reports whether p can perform lookups at all.
func Enabled(p Provider) bool {
	if p == nil {
		return false
	}
	u, ok := p.(unavailable)
	return !ok || !errors.Is(u.err, ErrDisabled)
}

type unavailable struct {
	name string
	err  error
}

func (u unavailable) Name() string { return u.name }

func (u unavailable) Lookup(context.Context, string) (*Match, error) { return nil, u.err }

// OMDbFetcher is the OMDb client capability the provider uses.
type OMDbFetcher interface {
	FetchByTitle(ctx context.Context, title string) (*omdb.Movie, error)
}

// OMDbProvider adapts the OMDb client to Provider.
type OMDbProvider struct {
	client OMDbFetcher
}

// NewOMDb wraps an OMDb client.
func NewOMDb(client OMDbFetcher) *OMDbProvider {
	return &OMDbProvider{client: client}
}

func (p *OMDbProvider) Name() string { return config.ProviderOMDb }

// Lookup fetches title from OMDb and converts the payload into a Match.
func (p *OMDbProvider) Lookup(ctx context.Context, title string) (*Match, error) {
	movie, err := p.client.FetchByTitle(ctx, title)
	if errors.Is(err, omdb.ErrMovieNotFound) {
		return nil, notFound(title)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, component, "lookup", "omdb request failed", err)
	}
	canonical := strings.TrimSpace(movie.Title)
	if canonical == "" {
		canonical = strings.TrimSpace(title)
	}
	return &Match{
		Title:     canonical,
		Year:      ParseYear(movie.Year),
		Rating:    ParseRating(movie.IMDbRating),
		PosterURL: NormalizePoster(movie.Poster),
		Source:    config.ProviderOMDb,
	}, nil
}

// TMDBSearcher is the TMDB client capability the provider uses.
type TMDBSearcher interface {
	SearchMovie(ctx context.Context, query string, year int) (*tmdb.Response, error)
}

// TMDBProvider adapts the TMDB client to Provider.
type TMDBProvider struct {
	client       TMDBSearcher
	imageBaseURL string
}

// NewTMDB wraps a TMDB client; imageBaseURL prefixes poster paths.
func NewTMDB(client TMDBSearcher, imageBaseURL string) *TMDBProvider {
	return &TMDBProvider{client: client, imageBaseURL: strings.TrimRight(strings.TrimSpace(imageBaseURL), "/")}
}

func (p *TMDBProvider) Name() string { return config.ProviderTMDB }

// Lookup searches TMDB and takes the first result.
func (p *TMDBProvider) Lookup(ctx context.Context, title string) (*Match, error) {
	resp, err := p.client.SearchMovie(ctx, title, 0)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, component, "lookup", "tmdb request failed", err)
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil, notFound(title)
	}
	best := resp.Results[0]
	match := &Match{
		Title:  strings.TrimSpace(best.Title),
		Year:   ParseYear(best.ReleaseDate),
		Rating: clampRating(best.VoteAverage),
		Source: config.ProviderTMDB,
	}
	if match.Title == "" {
		match.Title = strings.TrimSpace(title)
	}
	if path := strings.TrimSpace(best.PosterPath); path != "" {
		match.PosterURL = p.imageBaseURL + "/" + strings.TrimLeft(path, "/")
	}
	return match, nil
}

func notFound(title string) error {
	return services.Wrap(services.ErrNotFound, component, "lookup", fmt.Sprintf("%q", title), ErrNotFound)
}
