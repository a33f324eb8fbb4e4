package scraper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelectors(t *testing.T) {
	sel := DefaultSelectors()

	assert.Equal(t, `[id="fixturein"]`, sel.League)
	assert.Equal(t, "tr.tituloin", sel.TitleRow)
	assert.Equal(t, "a", sel.Title)
	assert.Equal(t, []string{"td.game-time", "td.game-play", "td.game-fin"}, sel.Time)
	assert.Equal(t, "td.game-r1", sel.LocalResult)
	assert.Equal(t, "td.game-r2", sel.VisitorResult)
	assert.Equal(t, "td.game-t1", sel.Teams)
	assert.NoError(t, sel.Validate())
}

func TestLoadSelectors_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("league: 'div.torneo'\ntime:\n  - 'td.hora'\n"), 0644))

	sel, err := LoadSelectors(path)
	require.NoError(t, err)

	assert.Equal(t, "div.torneo", sel.League)
	assert.Equal(t, []string{"td.hora"}, sel.Time)
	assert.Equal(t, "td.game-t1", sel.Teams, "unset keys keep defaults")
}

func TestLoadSelectors_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "league: [unclosed"},
		{"invalid css", "teams: 'td..game'"},
		{"empty time list", "time: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadSelectors(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadSelectors(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
