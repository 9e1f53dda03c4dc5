package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	// ConfigPath is the optional TOML configuration file.
	ConfigPath string
	// Overrides hold global flags explicitly set on the command line.
	Overrides Overrides
	Logger    *log.Logger
	// Stdout receives command output such as the check summary.
	Stdout io.Writer
}

// Overrides take precedence over the configuration file. Empty values are unset.
type Overrides struct {
	Verbosity   *int
	Local       string
	HardCoded   string
	Untrusted   string
	External    string
	Destination string
}

func (ctx *AppContext) logger() *log.Logger {
	if ctx.Logger == nil {
		ctx.Logger = log.Default()
	}
	return ctx.Logger
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

// loadConfigOrFail builds the configuration: defaults, then the file if one
// was given, then the command line overrides.
func loadConfigOrFail(ctx *AppContext) (*config.Config, error) {
	var cfg *config.Config
	if ctx.ConfigPath != "" {
		loaded, err := config.LoadConfig(ctx.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if err := applyOverrides(cfg, ctx.Overrides); err != nil {
		return nil, err
	}

	logger := ctx.logger()
	if ctx.Overrides.Verbosity != nil {
		logger.SetLevel(log.LevelFromVerbosity(*ctx.Overrides.Verbosity))
	} else {
		logger.SetLevel(log.LevelFromVerbosity(cfg.General.Verbosity))
	}

	logger.Verbosef("Configuration file     = [%s]", cfg.GetConfigFilePath())
	logger.Verbosef("Local hosts file       = [%s]", cfg.GetAbsLocalPath())
	logger.Verbosef("Hard coded hosts file  = [%s]", cfg.GetAbsHardCodedPath())
	logger.Verbosef("Untrusted hosts file   = [%s]", cfg.GetAbsUntrustedPath())
	logger.Verbosef("External hosts file    = [%s]", cfg.GetAbsExternalPath())
	logger.Verbosef("Destination file       = [%s]", cfg.GetAbsDestination())

	return cfg, nil
}

// loadAndValidateConfigOrFail loads configuration and validates it.
func loadAndValidateConfigOrFail(ctx *AppContext) (*config.Config, error) {
	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return nil, err
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyOverrides sets the paths given on the command line. They are relative
// to the working directory, not to the configuration file.
func applyOverrides(cfg *config.Config, o Overrides) error {
	overrides := []struct {
		value  string
		target *string
	}{
		{o.Local, &cfg.Local.File},
		{o.HardCoded, &cfg.HardCoded.File},
		{o.Untrusted, &cfg.Untrusted.File},
		{o.External, &cfg.External.File},
		{o.Destination, &cfg.General.Destination},
	}

	for _, ov := range overrides {
		if ov.value == "" {
			continue
		}
		abs, err := filepath.Abs(ov.value)
		if err != nil {
			return fmt.Errorf("failed to get absolute path of %s: %w", ov.value, err)
		}
		*ov.target = abs
	}

	return nil
}
