package hosts

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mergehosts/mergehosts/src/internal/errors"
)

// Entry is a parsed "<address> <hostname>" line.
type Entry struct {
	Address  string
	Hostname string
}

// ParseTuple parses a hard-coded or external line. ok is false for lines
// without a definition (blank or comment only). A line that does not hold
// exactly an address and a hostname is an error.
func ParseTuple(raw string) (entry Entry, ok bool, err error) {
	line := strings.TrimSpace(strings.ReplaceAll(StripComment(raw), "\t", " "))
	if line == "" {
		return Entry{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, false, fmt.Errorf("expected \"<address> <hostname>\", got %d field(s)", len(fields))
	}

	return Entry{Address: fields[0], Hostname: fields[1]}, true, nil
}

// CheckTuples reads a hard-coded or external source and returns the number
// of definitions in it, or the first malformed line as a format error.
func CheckTuples(kind Kind, src Source) (int, error) {
	scanner := newLineScanner(src.Reader)
	count, lineNo := 0, 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		_, ok, err := ParseTuple(raw)
		if err != nil {
			return count, malformedLine(kind, src, lineNo, raw, err)
		}
		if ok {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return count, errors.NewIOError(fmt.Sprintf("failed to read %s hosts from %s", kind, src.Name), err)
	}
	return count, nil
}

func malformedLine(kind Kind, src Source, lineNo int, raw string, err error) error {
	return errors.NewFormatError(fmt.Sprintf("malformed %s line %d in %s: %q: %v", kind, lineNo, src.Name, raw, err))
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Downloaded hosts files occasionally carry very long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

// appendTupleHost registers and writes one hard-coded or external line.
// sinkhole replaces the address given in the file.
func (r *mergeRun) appendTupleHost(kind Kind, src Source, raw string, lineNo int, sinkhole bool, stats *SourceStats) error {
	entry, ok, err := ParseTuple(raw)
	if err != nil {
		return malformedLine(kind, src, lineNo, raw, err)
	}
	if !ok {
		return nil
	}

	hostname := NormalizeHostname(entry.Hostname)
	if sinkhole {
		if _, skip := r.skip[hostname]; skip {
			r.logger.Verbosef("Skipping %s host '%s'", kind, hostname)
			stats.Skipped++
			return nil
		}
	}

	if r.registry.Contains(hostname) {
		r.reportDuplicate(hostname, kind, stats)
		return nil
	}
	r.registry.Add(hostname)

	address := entry.Address
	if sinkhole {
		address = r.opts.Sinkhole
	}
	if err := r.writer.WriteEntry(hostname, address); err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to write %s entry", kind), err)
	}
	stats.Written++
	return nil
}
