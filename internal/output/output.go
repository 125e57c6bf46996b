package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
)

// Printer renders command results. Data goes to stdout, progress and
// skip notices to stderr, so tables and JSON stay pipeable.
type Printer struct {
	jsonMode bool
	w        io.Writer
	errW     io.Writer
}

// New creates a Printer writing to stdout/stderr. With jsonMode set,
// Print emits the raw payload as indented JSON instead of a table.
func New(jsonMode bool) *Printer {
	return &Printer{jsonMode: jsonMode, w: os.Stdout, errW: os.Stderr}
}

// NewWithWriters is New with explicit writers, for tests.
func NewWithWriters(jsonMode bool, w, errW io.Writer) *Printer {
	return &Printer{jsonMode: jsonMode, w: w, errW: errW}
}

// Print renders either the table or the JSON payload, depending on
// mode.
func (p *Printer) Print(headers []string, rows [][]string, payload any) error {
	if p.jsonMode {
		return p.JSON(payload)
	}
	return p.Table(headers, rows)
}

// Table writes aligned columns with a header and dash separator.
func (p *Printer) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// JSON pretty-prints v to stdout.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Noticef writes a progress message to stderr.
func (p *Printer) Noticef(format string, args ...any) {
	fmt.Fprintf(p.errW, format+"\n", args...)
}

// Age renders an RFC 3339 timestamp as a human duration ("3 days").
// Unknown or unparseable values render as "-" so table rows stay
// aligned.
func Age(timestamp string) string {
	if timestamp == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "-"
	}
	return units.HumanDuration(time.Since(t))
}
