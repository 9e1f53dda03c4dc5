// Package config handles configuration file parsing and validation for mergehosts.
//
// Configuration is optional: DefaultConfig describes the classic layout
// (hardcoded.hosts, untrusted.hosts and hosts.txt in the working directory,
// published to /tmp/mergehosts.whatif). A TOML file loaded with LoadConfig
// overrides any of those, and relative paths in it are resolved against the
// directory of the file.
//
// # Configuration Structure
//
//   - [general]: destination, sinkhole address, header/footer templates
//   - [local]: hostnames bound to every local address
//   - [hard_coded], [untrusted]: trusted pairs and blocked hostnames
//   - [external]: third-party list, optionally downloaded from a URL
//   - [server]: listen address of the HTTP endpoint
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/mergehosts.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package config
