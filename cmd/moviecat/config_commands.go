package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"moviecat/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set omdb_api_key (or export OMDB_API_KEY) to look up movies when adding them.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			dirErr := cfg.EnsureDirectories()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			lines, healthy := configStatusLines(cfg, colorize)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if !healthy {
				return errors.New("configuration has errors; see the status lines above")
			}
			if dirErr != nil {
				return fmt.Errorf("ensure directories: %w", dirErr)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// configStatusLines reports whether every configured location is usable
// alongside the rendered lines.
func configStatusLines(cfg *config.Config, colorize bool) ([]string, bool) {
	healthy := true
	storage := fmt.Sprintf("%s (%s)", cfg.Storage.Backend, cfg.StorePath())
	var lines []string
	if err := checkWritableDir(filepath.Dir(cfg.StorePath())); err != nil {
		healthy = false
		lines = append(lines, renderStatusLine("Storage", statusError, fmt.Sprintf("%s not writable: %v", storage, err), colorize))
	} else {
		lines = append(lines, renderStatusLine("Storage", statusOK, storage, colorize))
	}

	switch cfg.Metadata.Provider {
	case config.ProviderNone:
		lines = append(lines, renderStatusLine("Metadata", statusWarn, "disabled; movies are added manually", colorize))
	default:
		if _, err := cfg.MetadataAPIKey(); err != nil {
			lines = append(lines, renderStatusLine("Metadata", statusWarn, fmt.Sprintf("%s API key missing", cfg.Metadata.Provider), colorize))
		} else {
			lines = append(lines, renderStatusLine("Metadata", statusOK, cfg.Metadata.Provider, colorize))
		}
	}

	template := "built-in"
	if cfg.Website.TemplatePath != "" {
		template = filepath.Base(cfg.Website.TemplatePath)
	}
	website := fmt.Sprintf("%s (template: %s)", cfg.Website.OutputDir, template)
	if err := checkWritableDir(cfg.Website.OutputDir); err != nil {
		healthy = false
		lines = append(lines, renderStatusLine("Website", statusError, fmt.Sprintf("%s not writable: %v", website, err), colorize))
	} else {
		lines = append(lines, renderStatusLine("Website", statusInfo, website, colorize))
	}
	lines = append(lines, renderStatusLine("Logs", statusInfo, cfg.LogFilePath(), colorize))
	return lines, healthy
}

func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".moviecat-write-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Remove(name)
}
