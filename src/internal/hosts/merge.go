package hosts

import (
	"fmt"
	"io"
	"time"

	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

const (
	DefaultSinkhole = "0.0.0.0"
)

// DefaultLocalAddresses are the addresses every local hostname is bound to.
var DefaultLocalAddresses = []string{"127.0.0.1", "::1"}

// Options controls the policy of a merge run.
type Options struct {
	// LocalAddresses are written for every local hostname, in order.
	LocalAddresses []string
	// Sinkhole is the address untrusted and external hosts are bound to.
	Sinkhole string
	// ExternalSkip hostnames are dropped silently from the external source.
	ExternalSkip []string
	// Header and Footer are fasttemplate templates; empty means default.
	Header string
	Footer string
	// Now returns the generation time written into the header.
	Now func() time.Time
}

// SourceStats counts what happened to the lines of one source.
type SourceStats struct {
	Kind       Kind   `json:"-"`
	Category   string `json:"category"`
	Source     string `json:"source,omitempty"`
	Written    int    `json:"written"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
}

// Result summarizes a merge run.
type Result struct {
	Sources []SourceStats `json:"sources"`
	// Total is the number of distinct hostnames in the output.
	Total int `json:"total"`
}

// Stats returns the counters of one source kind.
func (r *Result) Stats(kind Kind) SourceStats {
	for _, s := range r.Sources {
		if s.Kind == kind {
			return s
		}
	}
	return SourceStats{Kind: kind, Category: kind.String()}
}

// Merger runs merges with a fixed policy. A Merger holds no per-run state and
// may be reused; each Merge call gets its own Registry.
type Merger struct {
	opts   Options
	logger *log.Logger
}

// NewMerger creates a merger, filling unset options with defaults.
func NewMerger(opts Options, logger *log.Logger) *Merger {
	if len(opts.LocalAddresses) == 0 {
		opts.LocalAddresses = DefaultLocalAddresses
	}
	if opts.Sinkhole == "" {
		opts.Sinkhole = DefaultSinkhole
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Merger{opts: opts, logger: logger}
}

// mergeRun is the state of one Merge call.
type mergeRun struct {
	opts     *Options
	logger   *log.Logger
	writer   *Writer
	registry *Registry
	skip     map[string]struct{}
}

// Merge writes the merged hosts document for sources to w. Sources are
// processed in the order local, hard-coded, untrusted, external. A malformed
// tuple line or a read failure aborts the run before the summary is written.
func (m *Merger) Merge(w io.Writer, sources Sources) (*Result, error) {
	writer, err := NewWriter(w, m.opts.Header, m.opts.Footer)
	if err != nil {
		return nil, errors.NewConfigError("failed to parse output templates", err)
	}

	run := &mergeRun{
		opts:     &m.opts,
		logger:   m.logger,
		writer:   writer,
		registry: NewRegistry(),
		skip:     make(map[string]struct{}, len(m.opts.ExternalSkip)),
	}
	for _, h := range m.opts.ExternalSkip {
		run.skip[NormalizeHostname(h)] = struct{}{}
	}

	if err := writer.WriteHeader(m.opts.Now()); err != nil {
		return nil, errors.NewIOError("failed to write header", err)
	}

	result := &Result{}
	for _, kind := range Kinds {
		src := sources.get(kind)
		stats := SourceStats{Kind: kind, Category: kind.String(), Source: src.Name}

		if err := run.appendSection(kind, src, sources.LocalSeeds, &stats); err != nil {
			return nil, err
		}

		result.Sources = append(result.Sources, stats)
	}

	result.Total = run.registry.Len()
	if err := writer.WriteSummary(result.Total); err != nil {
		return nil, errors.NewIOError("failed to write summary", err)
	}
	if err := writer.Flush(); err != nil {
		return nil, errors.NewIOError("failed to flush output", err)
	}

	m.logger.Infof("%d host entries...", result.Total)
	return result, nil
}

func (r *mergeRun) appendSection(kind Kind, src Source, seeds []string, stats *SourceStats) error {
	r.logger.Infof("Adding %s...", kind.Title())
	if err := r.writer.WriteSectionTitle(kind.Title()); err != nil {
		return errors.NewIOError("failed to write section title", err)
	}

	if kind == KindLocal {
		for _, seed := range seeds {
			if err := r.appendLocalHost(seed, stats); err != nil {
				return err
			}
		}
	}

	if src.Reader == nil {
		return nil
	}
	r.logger.Verbosef("Reading %s hosts from %s", kind, src.Name)

	var process func(line string, lineNo int) error
	switch kind {
	case KindLocal:
		process = func(line string, _ int) error { return r.appendLocalHost(line, stats) }
	case KindUntrusted:
		process = func(line string, _ int) error { return r.appendUntrustedHost(line, stats) }
	case KindHardCoded:
		process = func(line string, lineNo int) error { return r.appendTupleHost(kind, src, line, lineNo, false, stats) }
	case KindExternal:
		process = func(line string, lineNo int) error { return r.appendTupleHost(kind, src, line, lineNo, true, stats) }
	default:
		return errors.NewInternalError(fmt.Sprintf("unknown source kind %d", int(kind)), nil)
	}

	scanner := newLineScanner(src.Reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := process(scanner.Text(), lineNo); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to read %s hosts from %s", kind, src.Name), err)
	}
	return nil
}
