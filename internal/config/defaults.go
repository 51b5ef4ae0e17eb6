package config

const (
	defaultConfigPath          = "~/.config/moviecat/config.toml"
	defaultDataDir             = "~/.local/share/moviecat"
	defaultLogDir              = "~/.local/share/moviecat/logs"
	defaultSQLiteFile          = "movies.db"
	defaultJSONFile            = "movies.json"
	defaultWebsiteDir          = "website"
	defaultWebsiteTitle        = "MY MOVIE APP"
	defaultOMDbBaseURL         = "https://www.omdbapi.com"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultMetadataLanguage    = "en-US"
	defaultMetadataTimeoutSecs = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Metadata providers. ProviderNone disables lookups; movies can then only be
// added manually.
const (
	ProviderOMDb = "omdb"
	ProviderTMDB = "tmdb"
	ProviderNone = "none"
)

// Default returns a Config populated with repository defaults. Derived paths
// (database file, website directory) are filled in by normalize when left
// empty.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend: BackendSQLite,
		},
		Metadata: Metadata{
			Provider:         ProviderOMDb,
			OMDbBaseURL:      defaultOMDbBaseURL,
			TMDBBaseURL:      defaultTMDBBaseURL,
			TMDBImageBaseURL: defaultTMDBImageBaseURL,
			Language:         defaultMetadataLanguage,
			TimeoutSeconds:   defaultMetadataTimeoutSecs,
		},
		Website: Website{
			Title: defaultWebsiteTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
