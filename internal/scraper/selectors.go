package scraper

import (
	_ "embed"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectorsYAML []byte

// Selectors locates match data in the results page markup
type Selectors struct {
	League        string   `yaml:"league"`         // league section container
	TitleRow      string   `yaml:"title_row"`      // league header row, first one in the container
	Title         string   `yaml:"title"`          // league title, relative to the header row
	Rows          string   `yaml:"rows"`           // match rows, relative to the container
	Time          []string `yaml:"time"`           // time cells in priority order
	LocalResult   string   `yaml:"local_result"`
	VisitorResult string   `yaml:"visitor_result"`
	Teams         string   `yaml:"teams"` // matches local then visitor
}

// DefaultSelectors returns the embedded selector table
func DefaultSelectors() Selectors {
	s, err := ParseSelectors(defaultSelectorsYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSelectors reads a selector table from a YAML file.
// Keys missing from the file keep their default values.
func LoadSelectors(path string) (Selectors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Selectors{}, errors.Wrap(err, "reading selectors file")
	}

	s := DefaultSelectors()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Selectors{}, errors.Wrap(err, "parsing selectors file")
	}
	if err := s.Validate(); err != nil {
		return Selectors{}, err
	}
	return s, nil
}

// ParseSelectors parses a complete selector table
func ParseSelectors(data []byte) (Selectors, error) {
	var s Selectors
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Selectors{}, errors.Wrap(err, "parsing selectors")
	}
	if err := s.Validate(); err != nil {
		return Selectors{}, err
	}
	return s, nil
}

// Validate checks that every selector is set and compiles
func (s Selectors) Validate() error {
	required := map[string]string{
		"league":         s.League,
		"title_row":      s.TitleRow,
		"title":          s.Title,
		"rows":           s.Rows,
		"local_result":   s.LocalResult,
		"visitor_result": s.VisitorResult,
		"teams":          s.Teams,
	}
	for name, value := range required {
		if value == "" {
			return errors.Newf("selector %q is empty", name)
		}
		if _, err := cascadia.ParseGroup(value); err != nil {
			return errors.Wrapf(err, "selector %q", name)
		}
	}
	if len(s.Time) == 0 {
		return errors.New("at least one time selector is required")
	}
	for i, sel := range s.Time {
		if sel == "" {
			return errors.Newf("time selector %d is empty", i)
		}
		if _, err := cascadia.ParseGroup(sel); err != nil {
			return errors.Wrapf(err, "time selector %d", i)
		}
	}
	return nil
}
