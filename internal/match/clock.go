package match

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host zoneinfo

	"github.com/cockroachdb/errors"
)

const (
	// SourceZone is the zone the results page publishes kickoff times in
	SourceZone = "America/Argentina/Buenos_Aires"
	// DisplayZone is the zone kickoff times are shown in
	DisplayZone = "Asia/Jerusalem"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// LoadZone loads a time zone by IANA name
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading time zone %q", name)
	}
	return loc, nil
}

// Normalizer turns raw time text from the results page into the Match.Time form
type Normalizer struct {
	Zone *time.Location
	Now  func() time.Time
}

// NewNormalizer creates a Normalizer for the given source zone using the wall clock
func NewNormalizer(zone *time.Location) *Normalizer {
	return &Normalizer{
		Zone: zone,
		Now:  time.Now,
	}
}

// Normalize converts an "HH:MM" clock time into an RFC 3339 instant on today's date
// in the source zone. Any other text is returned unchanged.
func (n *Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)

	hour, minute, ok := parseClock(raw)
	if !ok {
		return raw
	}

	zone := n.Zone
	if zone == nil {
		zone = time.UTC
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	today := now().In(zone)
	kickoff := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, zone)
	return kickoff.Format(time.RFC3339)
}

func parseClock(raw string) (int, int, bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
