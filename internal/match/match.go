package match

import "time"

// ResultPlaceholder is shown in place of a result that was not published.
const ResultPlaceholder = "-"

// Side is one team of a match together with its result, if any
type Side struct {
	Team   string  `json:"team"`
	Result *string `json:"result"`
}

// Match represents a single fixture row from the results page
type Match struct {
	Local   Side   `json:"local"`
	Visitor Side   `json:"visitor"`
	Time    string `json:"time"` // RFC 3339 instant or status label
}

// NewSide creates a Side. A nil result means the page had no result cell.
func NewSide(team string, result *string) Side {
	return Side{Team: team, Result: result}
}

// ResultOr returns the result text, or placeholder when the result is absent or empty.
func (s Side) ResultOr(placeholder string) string {
	if s.Result == nil || *s.Result == "" {
		return placeholder
	}
	return *s.Result
}

// Kickoff parses the match time as an absolute instant.
// Returns false when the time is a status label.
func (m Match) Kickoff() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, m.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
