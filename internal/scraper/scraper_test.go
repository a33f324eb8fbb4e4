package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScraper returns a scraper whose clock is fixed at 2025-05-10 12:00 in Buenos Aires
func newTestScraper(t *testing.T, opts ...Option) *Scraper {
	t.Helper()
	zone, err := match.LoadZone(match.SourceZone)
	require.NoError(t, err)

	n := &match.Normalizer{
		Zone: zone,
		Now:  func() time.Time { return time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC) },
	}
	return New(append([]Option{WithNormalizer(n)}, opts...)...)
}

func TestParse_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/promiedos_sample.html")
	require.NoError(t, err, "failed to load test fixture")

	s := newTestScraper(t)
	snapshot, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Liga Profesional", "Premier League", "Copa Libertadores"}, snapshot.Names())

	expectedCounts := map[string]int{
		"Liga Profesional":  3, // one row without the team pair is dropped
		"Premier League":    2,
		"Copa Libertadores": 1,
	}
	for league, want := range expectedCounts {
		matches, ok := snapshot.Get(league)
		require.True(t, ok, "expected league %s to be present", league)
		assert.Len(t, matches, want, "matches for %s", league)
	}

	liga, _ := snapshot.Get("Liga Profesional")

	scheduled := liga[0]
	assert.Equal(t, "River Plate", scheduled.Local.Team)
	assert.Equal(t, "Boca Juniors", scheduled.Visitor.Team)
	assert.Equal(t, "2025-05-10T20:00:00-03:00", scheduled.Time)
	require.NotNil(t, scheduled.Local.Result)
	assert.Equal(t, "", *scheduled.Local.Result)

	live := liga[1]
	assert.Equal(t, "Racing Club", live.Local.Team)
	assert.Equal(t, "45'", live.Time)
	assert.Equal(t, "1", *live.Local.Result)
	assert.Equal(t, "0", *live.Visitor.Result)

	finished := liga[2]
	assert.Equal(t, "Final", finished.Time)
	assert.Equal(t, "Huracan", finished.Visitor.Team)

	premier, _ := snapshot.Get("Premier League")
	assert.Equal(t, "2025-05-10T09:30:00-03:00", premier[1].Time)
	assert.Nil(t, premier[1].Local.Result)
	assert.Nil(t, premier[1].Visitor.Result)
}

func TestParse_SingleFinishedMatch(t *testing.T) {
	html := `<table id="fixturein">
		<tr class="tituloin"><td><a>Primera</a></td></tr>
		<tr name="vp">
			<td class="game-fin">2025-05-10T20:00:00-03:00</td>
			<td class="game-t1">River</td>
			<td class="game-r1">2</td>
			<td class="game-r2">1</td>
			<td class="game-t1">Boca</td>
		</tr>
	</table>`

	s := newTestScraper(t)
	snapshot, err := s.Parse(strings.NewReader(html))
	require.NoError(t, err)

	data, err := match.Encode(snapshot)
	require.NoError(t, err)

	want := `{"Primera":[{"local":{"team":"River","result":"2"},"visitor":{"team":"Boca","result":"1"},"time":"2025-05-10T20:00:00-03:00"}]}`
	assert.JSONEq(t, want, string(data))
}

func TestParse_TimeCellPriority(t *testing.T) {
	tests := []struct {
		name  string
		cells string
		want  string
	}{
		{
			name:  "scheduled wins over live and final",
			cells: `<td class="game-fin">Final</td><td class="game-play">45'</td><td class="game-time">21:00</td>`,
			want:  "2025-05-10T21:00:00-03:00",
		},
		{
			name:  "live wins over final",
			cells: `<td class="game-fin">Final</td><td class="game-play">78'</td>`,
			want:  "78'",
		},
		{
			name:  "final only",
			cells: `<td class="game-fin">Final</td>`,
			want:  "Final",
		},
		{
			name:  "no time cell",
			cells: ``,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<table id="fixturein"><tr class="tituloin"><td><a>Liga</a></td></tr>
				<tr name="vp">` + tt.cells + `<td class="game-t1">A</td><td class="game-t1">B</td></tr></table>`

			snapshot, err := newTestScraper(t).Parse(strings.NewReader(html))
			require.NoError(t, err)

			matches, _ := snapshot.Get("Liga")
			require.Len(t, matches, 1)
			assert.Equal(t, tt.want, matches[0].Time)
		})
	}
}

func TestParse_SkipsRowsWithoutTeamPair(t *testing.T) {
	html := `<table id="fixturein"><tr class="tituloin"><td><a>Liga</a></td></tr>
		<tr name="vp"><td class="game-fin">Final</td><td class="game-t1">A</td><td class="game-t1">B</td></tr>
		<tr name="vp"><td class="game-fin">Final</td><td class="game-t1">C</td></tr>
		<tr name="nvp"><td class="game-time">20:00</td></tr>
		<tr name="nvp"><td class="game-time">21:00</td><td class="game-t1">D</td><td class="game-t1">E</td></tr>
	</table>`

	snapshot, err := newTestScraper(t).Parse(strings.NewReader(html))
	require.NoError(t, err)

	matches, _ := snapshot.Get("Liga")
	require.Len(t, matches, 2)
	assert.Equal(t, "A", matches[0].Local.Team)
	assert.Equal(t, "D", matches[1].Local.Team)
}

func TestParse_MissingTitle(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/missing_title.html")
	require.NoError(t, err)

	_, err = newTestScraper(t).Parse(strings.NewReader(string(data)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaChanged), "error should be marked as a layout change: %v", err)
	assert.Contains(t, err.Error(), "league section 1")
}

func TestParse_TitleComesFromFirstTitleRow(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "first title row without link",
			html: `<table id="fixturein">
				<tr class="tituloin"><td>Fecha 5</td></tr>
				<tr class="tituloin"><td><a href="/primera">Liga Profesional</a></td></tr>
				<tr name="nvp"><td class="game-time">18:00</td><td class="game-t1">Velez</td><td class="game-t1">Lanus</td></tr>
			</table>`,
		},
		{
			name: "first title link is blank",
			html: `<table id="fixturein">
				<tr class="tituloin"><td><a href="/primera">   </a></td></tr>
			</table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestScraper(t).Parse(strings.NewReader(tt.html))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaChanged), "%v", err)
			assert.Contains(t, err.Error(), "league section 0")
		})
	}
}

func TestParse_NoLeagues(t *testing.T) {
	snapshot, err := newTestScraper(t).Parse(strings.NewReader("<html><body><p>mantenimiento</p></body></html>"))
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Len())
}

func TestParse_CustomSelectors(t *testing.T) {
	sel := DefaultSelectors()
	sel.League = "div.torneo"
	sel.TitleRow = "h2"
	sel.Title = "span"
	sel.Rows = "tr.partido"

	html := `<div class="torneo"><h2><span>Nacional B</span></h2><table>
		<tr class="partido"><td class="game-time">17:00</td><td class="game-t1">Quilmes</td><td class="game-t1">Chacarita</td></tr>
	</table></div>`

	snapshot, err := newTestScraper(t, WithSelectors(sel)).Parse(strings.NewReader(html))
	require.NoError(t, err)

	matches, ok := snapshot.Get("Nacional B")
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "Quilmes", matches[0].Local.Team)
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<table id="fixturein"><tr class="tituloin"><td><a>Primera</a></td></tr>
			<tr name="vp"><td class="game-fin">Final</td><td class="game-t1">River</td><td class="game-r1">2</td><td class="game-r2">1</td><td class="game-t1">Boca</td></tr></table>`))
	}))
	defer server.Close()

	s := newTestScraper(t, WithURL(server.URL))
	snapshot, err := s.FetchSnapshot(context.Background())
	require.NoError(t, err)

	matches, ok := snapshot.Get("Primera")
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "2", *matches[0].Local.Result)
}

func TestFetch_DecodesLatin1(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<table id=\"fixturein\"><tr class=\"tituloin\"><td><a>Primera</a></td></tr>" +
			"<tr name=\"vp\"><td class=\"game-fin\">Final</td><td class=\"game-t1\">Atl\xe9tico Tucum\xe1n</td>" +
			"<td class=\"game-t1\">Col\xf3n</td></tr></table>"))
	}))
	defer server.Close()

	snapshot, err := newTestScraper(t, WithURL(server.URL)).FetchSnapshot(context.Background())
	require.NoError(t, err)

	matches, _ := snapshot.Get("Primera")
	require.Len(t, matches, 1)
	assert.Equal(t, "Atlético Tucumán", matches[0].Local.Team)
	assert.Equal(t, "Colón", matches[0].Visitor.Team)
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestScraper(t, WithURL(server.URL)).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestScraper(t, WithURL(url)).Fetch(context.Background())
	assert.Error(t, err)
}
