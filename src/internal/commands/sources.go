package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
	"github.com/mergehosts/mergehosts/src/internal/hostsfile"
	"github.com/mergehosts/mergehosts/src/internal/log"
	"github.com/mergehosts/mergehosts/src/internal/utils"
)

// Replaced in tests.
var (
	osHostname      = os.Hostname
	systemHostsPath = hostsfile.Location
)

// localSeeds returns the hostnames always written to the local section.
func localSeeds(cfg *config.Config, logger *log.Logger) []string {
	seeds := []string{"localhost"}

	if cfg.Local.ShouldIncludeHostname() {
		if name, err := osHostname(); err != nil {
			logger.Warnf("Failed to get hostname: %v", err)
		} else if name != "" {
			seeds = append(seeds, name)
		}
	}

	seeds = append(seeds, cfg.Local.Hosts...)

	if cfg.Local.IncludeSystemLoopback {
		aliases, err := hostsfile.LoopbackAliases(systemHostsPath)
		if err != nil {
			logger.Warnf("Failed to read loopback names from %s: %v", systemHostsPath, err)
		} else {
			logger.Verbosef("Found %d loopback names in %s", len(aliases), systemHostsPath)
			seeds = append(seeds, aliases...)
		}
	}

	return seeds
}

// openSources opens the configured input files. The returned function closes them.
func openSources(cfg *config.Config, logger *log.Logger) (hosts.Sources, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			utils.CloseOrWarn(logger, c)
		}
	}

	open := func(kind hosts.Kind, path string) (hosts.Source, error) {
		if path == "" {
			return hosts.Source{}, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return hosts.Source{}, errors.NewIOError(fmt.Sprintf("failed to open %s hosts file", kind), err)
		}
		closers = append(closers, f)
		return hosts.Source{Name: path, Reader: f}, nil
	}

	sources := hosts.Sources{LocalSeeds: localSeeds(cfg, logger)}
	paths := []struct {
		kind   hosts.Kind
		path   string
		target *hosts.Source
	}{
		{hosts.KindLocal, cfg.GetAbsLocalPath(), &sources.Local},
		{hosts.KindHardCoded, cfg.GetAbsHardCodedPath(), &sources.HardCoded},
		{hosts.KindUntrusted, cfg.GetAbsUntrustedPath(), &sources.Untrusted},
		{hosts.KindExternal, cfg.GetAbsExternalPath(), &sources.External},
	}
	for _, p := range paths {
		src, err := open(p.kind, p.path)
		if err != nil {
			closeAll()
			return hosts.Sources{}, nil, err
		}
		*p.target = src
	}

	return sources, closeAll, nil
}

func newMerger(cfg *config.Config, logger *log.Logger) *hosts.Merger {
	return hosts.NewMerger(hosts.Options{
		LocalAddresses: cfg.Local.Addresses,
		Sinkhole:       cfg.General.Sinkhole,
		ExternalSkip:   cfg.External.SkipHosts,
		Header:         cfg.General.Header,
		Footer:         cfg.General.Footer,
	}, logger)
}

// mergeRenderer merges the sources of a configuration, reopening the files on
// every call.
type mergeRenderer struct {
	cfg    *config.Config
	logger *log.Logger
	merger *hosts.Merger
}

func newMergeRenderer(cfg *config.Config, logger *log.Logger) *mergeRenderer {
	return &mergeRenderer{
		cfg:    cfg,
		logger: logger,
		merger: newMerger(cfg, logger),
	}
}

// Render merges into w.
func (r *mergeRenderer) Render(w io.Writer) (*hosts.Result, error) {
	sources, closeAll, err := openSources(r.cfg, r.logger)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	return r.merger.Merge(w, sources)
}
