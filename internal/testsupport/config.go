package testsupport

import (
	"path/filepath"
	"testing"

	"moviecat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Metadata lookups are disabled unless an option enables them, and the API
// key environment fallbacks are cleared so the host environment never leaks
// into a test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = base
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.SQLitePath = filepath.Join(base, "movies.db")
	cfgVal.Storage.JSONPath = filepath.Join(base, "movies.json")
	cfgVal.Website.OutputDir = filepath.Join(base, "website")
	cfgVal.Metadata.Provider = config.ProviderNone

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackend selects the storage backend.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Backend = backend
	}
}

// WithOMDb points the OMDb provider at baseURL (usually an httptest server).
func WithOMDb(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metadata.Provider = config.ProviderOMDb
		b.cfg.Metadata.OMDbBaseURL = baseURL
		b.cfg.Metadata.OMDbAPIKey = key
	}
}

// WithWebsiteTitle overrides the generated page title.
func WithWebsiteTitle(title string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Website.Title = title
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.DataDir
}
