package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeMetadata()
	if err := c.normalizeWebsite(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	var err error
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if strings.TrimSpace(c.Storage.SQLitePath) == "" {
		c.Storage.SQLitePath = filepath.Join(c.Paths.DataDir, defaultSQLiteFile)
	}
	if c.Storage.SQLitePath, err = expandPath(c.Storage.SQLitePath); err != nil {
		return fmt.Errorf("storage.sqlite_path: %w", err)
	}
	if strings.TrimSpace(c.Storage.JSONPath) == "" {
		c.Storage.JSONPath = filepath.Join(c.Paths.DataDir, defaultJSONFile)
	}
	if c.Storage.JSONPath, err = expandPath(c.Storage.JSONPath); err != nil {
		return fmt.Errorf("storage.json_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMetadata() {
	c.Metadata.Provider = strings.ToLower(strings.TrimSpace(c.Metadata.Provider))
	if c.Metadata.Provider == "" {
		c.Metadata.Provider = ProviderOMDb
	}
	c.Metadata.OMDbAPIKey = strings.TrimSpace(c.Metadata.OMDbAPIKey)
	if c.Metadata.OMDbAPIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.Metadata.OMDbAPIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("API_KEY"); ok {
			c.Metadata.OMDbAPIKey = strings.TrimSpace(value)
		}
	}
	c.Metadata.TMDBAPIKey = strings.TrimSpace(c.Metadata.TMDBAPIKey)
	if c.Metadata.TMDBAPIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.Metadata.TMDBAPIKey = strings.TrimSpace(value)
		}
	}
	c.Metadata.OMDbBaseURL = strings.TrimSpace(c.Metadata.OMDbBaseURL)
	if c.Metadata.OMDbBaseURL == "" {
		c.Metadata.OMDbBaseURL = defaultOMDbBaseURL
	}
	c.Metadata.TMDBBaseURL = strings.TrimSpace(c.Metadata.TMDBBaseURL)
	if c.Metadata.TMDBBaseURL == "" {
		c.Metadata.TMDBBaseURL = defaultTMDBBaseURL
	}
	c.Metadata.TMDBImageBaseURL = strings.TrimSpace(c.Metadata.TMDBImageBaseURL)
	if c.Metadata.TMDBImageBaseURL == "" {
		c.Metadata.TMDBImageBaseURL = defaultTMDBImageBaseURL
	}
	c.Metadata.Language = strings.TrimSpace(c.Metadata.Language)
	if c.Metadata.TimeoutSeconds <= 0 {
		c.Metadata.TimeoutSeconds = defaultMetadataTimeoutSecs
	}
}

func (c *Config) normalizeWebsite() error {
	var err error
	c.Website.Title = strings.TrimSpace(c.Website.Title)
	if c.Website.Title == "" {
		c.Website.Title = defaultWebsiteTitle
	}
	if strings.TrimSpace(c.Website.OutputDir) == "" {
		c.Website.OutputDir = filepath.Join(c.Paths.DataDir, defaultWebsiteDir)
	}
	if c.Website.OutputDir, err = expandPath(c.Website.OutputDir); err != nil {
		return fmt.Errorf("website.output_dir: %w", err)
	}
	if c.Website.TemplatePath, err = expandPath(strings.TrimSpace(c.Website.TemplatePath)); err != nil {
		return fmt.Errorf("website.template_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
