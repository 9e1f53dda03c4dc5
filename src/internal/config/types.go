package config

import (
	"path/filepath"

	"github.com/mergehosts/mergehosts/src/internal/utils"
)

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general"`
	// Local describes the local section: seeds expanded to every local address.
	Local *LocalConfig `toml:"local"`
	// HardCoded is the file of trusted "address hostname" pairs.
	HardCoded *SourceConfig `toml:"hard_coded"`
	// Untrusted is the file of bare hostnames bound to the sinkhole.
	Untrusted *SourceConfig `toml:"untrusted"`
	// External is the third-party hosts list, rewritten to the sinkhole.
	External *ExternalConfig `toml:"external"`
	// Server holds settings of the "serve" command.
	Server *ServerConfig `toml:"server"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Verbosity is the default log level (0 = errors, 3 = verbose).
	Verbosity int `toml:"verbosity" json:"verbosity" validate:"min=0,max=3"`
	// Destination is the hosts file to publish.
	Destination string `toml:"destination" json:"destination" validate:"required"`
	// Sinkhole is the address blocked hostnames resolve to (default: 0.0.0.0).
	Sinkhole string `toml:"sinkhole" json:"sinkhole" validate:"required,ip"`
	// ListsDir is the directory for downloaded lists.
	ListsDir string `toml:"lists_dir" json:"lists_dir" validate:"required"`
	// Header is the first line of the document. Available variables: {{timestamp}}.
	Header string `toml:"header" json:"header" validate:"template"`
	// Footer is the last line of the document. Available variables: {{count}}.
	Footer string `toml:"footer" json:"footer" validate:"template"`
	// SkipUnchanged leaves the destination alone when only the header would change.
	SkipUnchanged bool `toml:"skip_unchanged" json:"skip_unchanged"`
}

type LocalConfig struct {
	// File is an optional list of bare hostnames added to the local section.
	File string `toml:"file,omitempty" json:"file,omitempty"`
	// Hosts are hostnames always added to the local section.
	Hosts []string `toml:"hosts" json:"hosts" validate:"dive,hostname_dns"`
	// Addresses every local hostname is bound to (default: ["127.0.0.1", "::1"]).
	Addresses []string `toml:"addresses" json:"addresses" validate:"required,min=1,dive,ip"`
	// IncludeHostname adds the machine hostname to the local section (default: true).
	IncludeHostname *bool `toml:"include_hostname" json:"include_hostname"`
	// IncludeSystemLoopback adds the names bound to loopback in the system hosts file.
	IncludeSystemLoopback bool `toml:"include_system_loopback" json:"include_system_loopback"`
}

type SourceConfig struct {
	File string `toml:"file" json:"file" validate:"required"`
}

type ExternalConfig struct {
	// File is the external hosts list. When empty and URL is set, the downloaded copy is used.
	File string `toml:"file,omitempty" json:"file,omitempty"`
	// URL the "download" command fetches the external list from.
	URL string `toml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	// SkipHosts are hostnames never taken from the external list (default: ["localhost"]).
	SkipHosts []string `toml:"skip_hosts" json:"skip_hosts" validate:"dive,hostname_dns"`
}

type ServerConfig struct {
	// ListenAddr is the HTTP listen address of the "serve" command.
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostname_port"`
	// AllowPublic serves clients outside private networks too.
	AllowPublic bool `toml:"allow_public" json:"allow_public"`
}

// GetConfigDir returns the directory relative paths are resolved against.
// Without a configuration file that is the working directory.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigFilePath returns the absolute path of the loaded configuration file.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}

func (c *Config) GetAbsListsDir() string {
	return utils.GetAbsolutePath(c.General.ListsDir, c.GetConfigDir())
}

func (c *Config) GetAbsDestination() string {
	return utils.GetAbsolutePath(c.General.Destination, c.GetConfigDir())
}

func (c *Config) GetAbsLocalPath() string {
	return utils.GetAbsolutePath(c.Local.File, c.GetConfigDir())
}

func (c *Config) GetAbsHardCodedPath() string {
	return utils.GetAbsolutePath(c.HardCoded.File, c.GetConfigDir())
}

func (c *Config) GetAbsUntrustedPath() string {
	return utils.GetAbsolutePath(c.Untrusted.File, c.GetConfigDir())
}

// GetAbsExternalPath returns the configured external file, or the downloaded
// copy of external.url when no file is set.
func (c *Config) GetAbsExternalPath() string {
	if c.External.File != "" {
		return utils.GetAbsolutePath(c.External.File, c.GetConfigDir())
	}
	if c.External.URL != "" {
		return c.GetAbsDownloadedExternalPath()
	}
	return ""
}

// GetAbsDownloadedExternalPath returns where the "download" command stores external.url.
func (c *Config) GetAbsDownloadedExternalPath() string {
	return filepath.Join(c.GetAbsListsDir(), DownloadedExternalName)
}

// ShouldIncludeHostname reports whether the machine hostname is seeded.
func (l *LocalConfig) ShouldIncludeHostname() bool {
	return l.IncludeHostname == nil || *l.IncludeHostname
}
