package hosts

import (
	"github.com/mergehosts/mergehosts/src/internal/errors"
)

// appendLocalHost binds a local hostname to every local address. Repeats are
// skipped without a warning: the same name commonly shows up both as a seed
// and in the local file.
func (r *mergeRun) appendLocalHost(line string, stats *SourceStats) error {
	if IsIgnorable(line) {
		return nil
	}
	hostname := NormalizeHostname(line)

	if !r.registry.Contains(hostname) {
		for _, address := range r.opts.LocalAddresses {
			if err := r.writer.WriteEntry(hostname, address); err != nil {
				return errors.NewIOError("failed to write local entry", err)
			}
			stats.Written++
		}
	}
	r.registry.Add(hostname)
	return nil
}

// appendUntrustedHost binds an untrusted hostname to the sinkhole.
func (r *mergeRun) appendUntrustedHost(line string, stats *SourceStats) error {
	if IsIgnorable(line) {
		return nil
	}
	hostname := NormalizeHostname(line)

	if r.registry.Contains(hostname) {
		r.reportDuplicate(hostname, KindUntrusted, stats)
		return nil
	}

	if err := r.writer.WriteEntry(hostname, r.opts.Sinkhole); err != nil {
		return errors.NewIOError("failed to write untrusted entry", err)
	}
	r.registry.Add(hostname)
	stats.Written++
	return nil
}

func (r *mergeRun) reportDuplicate(hostname string, kind Kind, stats *SourceStats) {
	r.logger.Warnf("Duplicate host '%s' (from %s)", hostname, kind)
	stats.Duplicates++
}
