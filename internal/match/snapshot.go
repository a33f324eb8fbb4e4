package match

import (
	"bytes"
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// League is a named group of matches as shown on the results page
type League struct {
	Name    string
	Matches []Match
}

// Snapshot is an ordered mapping of league name to matches.
// Leagues keep the order in which they were first added.
type Snapshot struct {
	leagues []League
	index   map[string]int
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		leagues: make([]League, 0),
		index:   make(map[string]int),
	}
}

// Set stores the matches for a league. Setting a league that already exists
// replaces its matches and keeps its original position.
func (s *Snapshot) Set(name string, matches []Match) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if matches == nil {
		matches = make([]Match, 0)
	}
	if i, ok := s.index[name]; ok {
		s.leagues[i].Matches = matches
		return
	}
	s.index[name] = len(s.leagues)
	s.leagues = append(s.leagues, League{Name: name, Matches: matches})
}

// Get returns the matches for a league
func (s *Snapshot) Get(name string) ([]Match, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.leagues[i].Matches, true
}

// Leagues returns the leagues in page order
func (s *Snapshot) Leagues() []League {
	out := make([]League, len(s.leagues))
	copy(out, s.leagues)
	return out
}

// Names returns the league names in page order
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.leagues))
	for _, l := range s.leagues {
		names = append(names, l.Name)
	}
	return names
}

// Len returns the number of leagues
func (s *Snapshot) Len() int {
	return len(s.leagues)
}

// MatchCount returns the total number of matches across all leagues
func (s *Snapshot) MatchCount() int {
	n := 0
	for _, l := range s.leagues {
		n += len(l.Matches)
	}
	return n
}

// MarshalJSON encodes the snapshot as a JSON object keyed by league name,
// with keys in page order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s.leagues {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding league name %q", l.Name)
		}
		buf.Write(key)
		buf.WriteByte(':')

		matches := l.Matches
		if matches == nil {
			matches = []Match{}
		}
		value, err := json.Marshal(matches)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding matches for %q", l.Name)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keyed by league name, preserving key order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	*s = *NewSnapshot()

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "reading snapshot")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Newf("snapshot must be a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "reading league name")
		}
		name, ok := tok.(string)
		if !ok {
			return errors.Newf("unexpected token %v", tok)
		}

		var matches []Match
		if err := dec.Decode(&matches); err != nil {
			return errors.Wrapf(err, "decoding matches for %q", name)
		}
		s.Set(name, matches)
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "reading end of snapshot")
	}
	return nil
}

// Encode serializes a snapshot to JSON
func Encode(s *Snapshot) ([]byte, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return data, nil
}

// Decode parses a snapshot previously produced by Encode
func Decode(data []byte) (*Snapshot, error) {
	s := NewSnapshot()
	if err := sonic.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	return s, nil
}
