package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/handler"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("invalid format: %s (must be 'text' or 'json')", s)
}

// WriteOutput writes the run result in the specified format
func WriteOutput(w io.Writer, result *handler.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result.Snapshot)
	case FormatText:
		return writeText(w, result)
	default:
		return errors.Newf("unknown format: %s", format)
	}
}

// writeJSON outputs the snapshot as an indented JSON object in page order
func writeJSON(w io.Writer, snapshot *match.Snapshot) error {
	data, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeText outputs the snapshot as human-readable text
func writeText(w io.Writer, result *handler.Result) error {
	s := result.Snapshot
	if s.Len() == 0 {
		fmt.Fprintln(w, "No leagues found.")
	}

	for _, league := range s.Leagues() {
		fmt.Fprintf(w, "\n%s (%d matches):\n", league.Name, len(league.Matches))
		for _, m := range league.Matches {
			fmt.Fprintf(w, "  %-25s %s %s - %s %s\n",
				m.Time,
				m.Local.Team, m.Local.ResultOr(match.ResultPlaceholder),
				m.Visitor.ResultOr(match.ResultPlaceholder), m.Visitor.Team)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d matches across %d leagues\n", s.MatchCount(), s.Len())
	fmt.Fprintf(w, "Delivery: %s\n", result.Delivery.Status())
	if result.Delivery.Err != nil {
		fmt.Fprintf(w, "Delivery error: %v\n", result.Delivery.Err)
	}
	return nil
}
