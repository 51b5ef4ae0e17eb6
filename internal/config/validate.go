package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. Metadata API keys are not
// required here: listing and statistics work offline, so a missing key is
// reported by MetadataAPIKey when a lookup is attempted.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON:
		return nil
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (expected %q or %q)", c.Storage.Backend, BackendSQLite, BackendJSON)
	}
}

func (c *Config) validateMetadata() error {
	switch c.Metadata.Provider {
	case ProviderOMDb, ProviderTMDB, ProviderNone:
	default:
		return fmt.Errorf("metadata.provider: unsupported value %q (expected omdb, tmdb, or none)", c.Metadata.Provider)
	}
	for key, value := range map[string]string{
		"metadata.omdb_base_url":       c.Metadata.OMDbBaseURL,
		"metadata.tmdb_base_url":       c.Metadata.TMDBBaseURL,
		"metadata.tmdb_image_base_url": c.Metadata.TMDBImageBaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
		}
	}
	if c.Metadata.TimeoutSeconds <= 0 {
		return errors.New("metadata.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// MetadataAPIKey returns the API key for the configured provider, or an error
// explaining how to supply one.
func (c *Config) MetadataAPIKey() (string, error) {
	var key, env string
	switch c.Metadata.Provider {
	case ProviderOMDb:
		key, env = c.Metadata.OMDbAPIKey, "OMDB_API_KEY"
	case ProviderTMDB:
		key, env = c.Metadata.TMDBAPIKey, "TMDB_API_KEY"
	default:
		return "", errors.New("metadata lookups are disabled (metadata.provider = \"none\")")
	}
	if key != "" {
		return key, nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return "", fmt.Errorf("metadata.%s_api_key is required. Set %s env var or edit %s (create with 'moviecat config init')", c.Metadata.Provider, env, defaultPath)
}
