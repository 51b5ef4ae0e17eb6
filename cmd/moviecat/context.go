package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"moviecat/internal/config"
	"moviecat/internal/library"
	"moviecat/internal/logging"
	"moviecat/internal/metadata"
	"moviecat/internal/store"
	"moviecat/internal/website"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	serviceOnce sync.Once
	service     *library.Service
	serviceErr  error
	store       store.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureService opens the store and wires the catalog service on first use.
func (c *commandContext) ensureService() (*library.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.serviceErr = fmt.Errorf("init logging: %w", err)
			return
		}
		provider, err := metadata.New(cfg, nil)
		if err != nil {
			c.serviceErr = err
			return
		}
		st, err := store.Open(cfg)
		if err != nil {
			c.serviceErr = fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
			return
		}
		logger.Debug("catalog opened",
			logging.String("backend", cfg.Storage.Backend),
			logging.String("path", cfg.StorePath()),
			logging.String("provider", provider.Name()),
		)
		site := website.Generator{
			Title:        cfg.Website.Title,
			OutputDir:    cfg.Website.OutputDir,
			TemplatePath: cfg.Website.TemplatePath,
		}
		c.store = st
		c.service = library.New(st, provider, site, library.WithLogger(logger))
	})
	return c.service, c.serviceErr
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// withService runs fn against the catalog service and closes the store
// afterwards, whatever fn returned.
func (c *commandContext) withService(fn func(*library.Service) error) error {
	svc, err := c.ensureService()
	if err != nil {
		return err
	}
	return errors.Join(fn(svc), c.close())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
