package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
)

const (
	DefaultDestination     = "/tmp/mergehosts.whatif"
	DefaultHardCodedFile   = "hardcoded.hosts"
	DefaultUntrustedFile   = "untrusted.hosts"
	DefaultExternalFile    = "hosts.txt"
	DefaultListsDir        = "lists.d"
	DefaultListenAddr      = "127.0.0.1:8053"
	DownloadedExternalName = "external.hosts"
)

// DefaultSkipHosts are never taken from the external list.
var DefaultSkipHosts = []string{"localhost"}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), nil)
		}
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			row, col := derr.Position()
			return nil, errors.NewConfigError(
				fmt.Sprintf("failed to parse %s at line %d, column %d:\n%s", configFile, row, col, derr.String()), nil)
		}
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	config.applyDefaults()
	config._absConfigFilePath = configFile

	return &config, nil
}

// applyDefaults fills every section and field the file left out.
func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.Destination == "" {
		c.General.Destination = DefaultDestination
	}
	if c.General.Sinkhole == "" {
		c.General.Sinkhole = hosts.DefaultSinkhole
	}
	if c.General.ListsDir == "" {
		c.General.ListsDir = DefaultListsDir
	}
	if c.General.Header == "" {
		c.General.Header = hosts.DefaultHeader
	}
	if c.General.Footer == "" {
		c.General.Footer = hosts.DefaultFooter
	}

	if c.Local == nil {
		c.Local = &LocalConfig{}
	}
	if len(c.Local.Addresses) == 0 {
		c.Local.Addresses = append([]string(nil), hosts.DefaultLocalAddresses...)
	}

	if c.HardCoded == nil {
		c.HardCoded = &SourceConfig{}
	}
	if c.HardCoded.File == "" {
		c.HardCoded.File = DefaultHardCodedFile
	}

	if c.Untrusted == nil {
		c.Untrusted = &SourceConfig{}
	}
	if c.Untrusted.File == "" {
		c.Untrusted.File = DefaultUntrustedFile
	}

	if c.External == nil {
		c.External = &ExternalConfig{}
	}
	if c.External.File == "" && c.External.URL == "" {
		c.External.File = DefaultExternalFile
	}
	if c.External.SkipHosts == nil {
		c.External.SkipHosts = append([]string(nil), DefaultSkipHosts...)
	}

	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (c *Config) WriteConfig(path string) error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, config.Bytes(), 0644); err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
