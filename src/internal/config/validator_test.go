package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig returns a configuration whose sources exist in a temporary directory.
func validConfig(t *testing.T) *Config {
	t.Helper()
	tmpDir := t.TempDir()
	for _, name := range []string{DefaultHardCodedFile, DefaultUntrustedFile, DefaultExternalFile} {
		writeFile(t, filepath.Join(tmpDir, name), "")
	}

	cfg := DefaultConfig()
	cfg.General.Destination = filepath.Join(tmpDir, "hosts")
	cfg._absConfigFilePath = filepath.Join(tmpDir, "mergehosts.toml")
	return cfg
}

func assertValidationError(t *testing.T, err error, fieldPath string) {
	t.Helper()

	var verrs ValidationErrors
	if !stderrors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	for _, e := range verrs {
		if e.FieldPath == fieldPath {
			return
		}
	}
	t.Errorf("Expected validation error for %s, got:\n%v", fieldPath, err)
}

func TestValidateConfig_Success(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestValidateConfig_MissingSection(t *testing.T) {
	cfg := validConfig(t)
	cfg.General = nil

	err := cfg.ValidateConfig()
	assertValidationError(t, err, "general")
}

func TestValidateConfig_Fields(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		fieldPath string
	}{
		{"invalid sinkhole", func(c *Config) { c.General.Sinkhole = "not-an-ip" }, "general.sinkhole"},
		{"empty sinkhole", func(c *Config) { c.General.Sinkhole = "" }, "general.sinkhole"},
		{"verbosity too high", func(c *Config) { c.General.Verbosity = 4 }, "general.verbosity"},
		{"no local addresses", func(c *Config) { c.Local.Addresses = nil }, "local.addresses"},
		{"invalid local address", func(c *Config) { c.Local.Addresses = []string{"127.0.0.1", "localhost"} }, "local.addresses[1]"},
		{"invalid local host", func(c *Config) { c.Local.Hosts = []string{"bad host"} }, "local.hosts[0]"},
		{"invalid skip host", func(c *Config) { c.External.SkipHosts = []string{"a..b"} }, "external.skip_hosts[0]"},
		{"invalid url", func(c *Config) { c.External.URL = "not a url" }, "external.url"},
		{"invalid listen address", func(c *Config) { c.Server.ListenAddr = "8053" }, "server.listen_addr"},
		{"header not a comment", func(c *Config) { c.General.Header = "generated {{timestamp}}" }, "general.header"},
		{"unknown template variable", func(c *Config) { c.General.Footer = "# {{hosts}} entries" }, "general.footer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.modify(cfg)
			assertValidationError(t, cfg.ValidateConfig(), tt.fieldPath)
		})
	}
}

func TestValidateConfig_MissingSourceFile(t *testing.T) {
	cfg := validConfig(t)
	if err := os.Remove(cfg.GetAbsUntrustedPath()); err != nil {
		t.Fatal(err)
	}

	err := cfg.ValidateConfig()
	assertValidationError(t, err, "untrusted.file")
	if !strings.Contains(err.Error(), "[untrusted]") {
		t.Errorf("Expected error to name the source, got %v", err)
	}
}

func TestValidateConfig_OptionalLocalFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Local.File = "local.hosts"
	assertValidationError(t, cfg.ValidateConfig(), "local.file")

	writeFile(t, cfg.GetAbsLocalPath(), "router.lan\n")
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected no error once the local file exists, got %v", err)
	}
}

func TestValidateConfig_ExternalNotDownloaded(t *testing.T) {
	cfg := validConfig(t)
	cfg.External.File = ""
	cfg.External.URL = "https://example.com/hosts"

	err := cfg.ValidateConfig()
	assertValidationError(t, err, "external.url")
	if !strings.Contains(err.Error(), "mergehosts download") {
		t.Errorf("Expected hint to download, got %v", err)
	}

	if err := os.MkdirAll(cfg.GetAbsListsDir(), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, cfg.GetAbsExternalPath(), "0.0.0.0 ads.example.com\n")
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected downloaded list to validate, got %v", err)
	}
}

func TestValidateConfig_DestinationDirectory(t *testing.T) {
	cfg := validConfig(t)
	cfg.General.Destination = filepath.Join(cfg.GetConfigDir(), "missing", "hosts")
	assertValidationError(t, cfg.ValidateConfig(), "general.destination")

	cfg.General.Destination = cfg.GetConfigDir()
	assertValidationError(t, cfg.ValidateConfig(), "general.destination")
}

func TestValidateTemplateString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"default header", "# Hosts file generated by MergeHosts ({{timestamp}})", false},
		{"default footer", "# {{count}} host entries", false},
		{"multi-line comment", "# generated\n# at {{timestamp}}", false},
		{"no variables", "# static", false},
		{"not a comment", "{{count}} entries", true},
		{"second line not a comment", "# ok\nbroken", true},
		{"unknown variable", "# {{hostname}}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTemplateString(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTemplateString(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidHostname(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"localhost", true},
		{"router.lan", true},
		{"ads.example.com.", true},
		{"", false},
		{"bad host", false},
		{"a..b", false},
		{"host#comment", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidHostname(tt.name); got != tt.expected {
				t.Errorf("isValidHostname(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{FieldPath: "general.sinkhole", Message: "must be a valid IP address"},
		{ItemName: "untrusted", FieldPath: "untrusted.file", Message: "file x does not exist"},
	}

	msg := errs.Error()
	for _, want := range []string{"2 error(s)", "1. general.sinkhole", "2. [untrusted] untrusted.file"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in %q", want, msg)
		}
	}
}
