package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
)

const kickoffLayout = "02/01 15:04"

// escaper covers the characters Telegram's HTML parse mode requires escaping.
// Quotes stay literal so status labels such as 45' come through unchanged.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Formatter renders snapshots as Telegram HTML messages
type Formatter struct {
	Zone *time.Location // zone kickoff times are displayed in
}

// NewFormatter creates a formatter that shows kickoff times in zone
func NewFormatter(zone *time.Location) *Formatter {
	return &Formatter{Zone: zone}
}

// Format renders a snapshot: a header per league followed by one line per match.
// Leagues are separated by a blank line.
func (f *Formatter) Format(s *match.Snapshot) string {
	blocks := make([]string, 0, s.Len())
	for _, league := range s.Leagues() {
		blocks = append(blocks, f.formatLeague(league))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatJSON renders a snapshot that was serialized with match.Encode
func (f *Formatter) FormatJSON(data []byte) (string, error) {
	s, err := match.Decode(data)
	if err != nil {
		return "", errors.Wrap(err, "reading snapshot")
	}
	return f.Format(s), nil
}

func (f *Formatter) formatLeague(league match.League) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("<b>🏆 %s</b>", escaper.Replace(league.Name)))
	for _, m := range league.Matches {
		msg.WriteString("\n")
		msg.WriteString(f.FormatMatch(m))
	}

	return msg.String()
}

// FormatMatch renders one match line. Local side always comes first.
func (f *Formatter) FormatMatch(m match.Match) string {
	return fmt.Sprintf("⏰ %s | ⚽ %s [%s] vs [%s] %s",
		escaper.Replace(f.matchTime(m)),
		escaper.Replace(m.Local.Team),
		escaper.Replace(m.Local.ResultOr(match.ResultPlaceholder)),
		escaper.Replace(m.Visitor.ResultOr(match.ResultPlaceholder)),
		escaper.Replace(m.Visitor.Team),
	)
}

// matchTime returns "dd/mm HH:MM" in the display zone for kickoff instants,
// or the raw status label otherwise
func (f *Formatter) matchTime(m match.Match) string {
	kickoff, ok := m.Kickoff()
	if !ok {
		return m.Time
	}
	if f.Zone != nil {
		kickoff = kickoff.In(f.Zone)
	}
	return kickoff.Format(kickoffLayout)
}
