package hosts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	TmplTimestamp = "timestamp"
	TmplCount     = "count"

	DefaultHeader = "# Hosts file generated by MergeHosts ({{" + TmplTimestamp + "}})"
	DefaultFooter = "# {{" + TmplCount + "}} host entries"
)

// pauser is implemented by writers that can exclude data from a checksum.
type pauser interface {
	Pause()
	Resume()
}

// Writer serializes the output document.
type Writer struct {
	dst    io.Writer
	buf    *bufio.Writer
	header *fasttemplate.Template
	footer *fasttemplate.Template
}

// ParseTemplate parses a header or footer template with {{name}} placeholders.
func ParseTemplate(tmpl string) (*fasttemplate.Template, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", tmpl, err)
	}
	return t, nil
}

// NewWriter creates a writer. Empty templates fall back to the defaults.
func NewWriter(w io.Writer, header, footer string) (*Writer, error) {
	if header == "" {
		header = DefaultHeader
	}
	if footer == "" {
		footer = DefaultFooter
	}

	h, err := ParseTemplate(header)
	if err != nil {
		return nil, err
	}
	f, err := ParseTemplate(footer)
	if err != nil {
		return nil, err
	}

	return &Writer{
		dst:    w,
		buf:    bufio.NewWriter(w),
		header: h,
		footer: f,
	}, nil
}

// WriteHeader writes the generation comment. The header is excluded from the
// checksum when the destination supports it, since it changes on every run.
func (w *Writer) WriteHeader(now time.Time) error {
	p, canPause := w.dst.(pauser)
	if canPause {
		if err := w.buf.Flush(); err != nil {
			return err
		}
		p.Pause()
		defer p.Resume()
	}

	line := w.header.ExecuteString(map[string]interface{}{
		TmplTimestamp: now.Format(time.ANSIC),
	})
	if err := w.writeLine(line); err != nil {
		return err
	}

	if canPause {
		return w.buf.Flush()
	}
	return nil
}

// WriteSectionTitle writes a three-line comment banner.
func (w *Writer) WriteSectionTitle(title string) error {
	_, err := w.buf.WriteString("#\n# " + title + "\n#\n")
	return err
}

// WriteEntry writes one "<address>\t<hostname>" line. The hostname is lower-cased.
func (w *Writer) WriteEntry(hostname, address string) error {
	_, err := w.buf.WriteString(address + "\t" + strings.ToLower(hostname) + "\n")
	return err
}

// WriteSummary writes the trailing comment with the number of distinct hostnames.
func (w *Writer) WriteSummary(count int) error {
	line := w.footer.ExecuteString(map[string]interface{}{
		TmplCount: strconv.Itoa(count),
	})
	return w.writeLine(line)
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

func (w *Writer) writeLine(line string) error {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err := w.buf.WriteString(line)
	return err
}
