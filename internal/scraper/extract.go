package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
)

// ErrSchemaChanged indicates the results page no longer matches the selector table
var ErrSchemaChanged = errors.New("results page layout changed")

// Parse extracts leagues and matches from results page markup.
// Rows without both team cells are skipped. A league section without a title
// fails the whole parse with ErrSchemaChanged.
func (s *Scraper) Parse(r io.Reader) (*match.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}

	snapshot := match.NewSnapshot()
	var parseErr error

	doc.Find(s.selectors.League).EachWithBreak(func(i int, section *goquery.Selection) bool {
		title, err := s.leagueTitle(section)
		if err != nil {
			parseErr = errors.Wrapf(err, "league section %d", i)
			return false
		}

		matches := make([]match.Match, 0)
		skipped := 0
		section.Find(s.selectors.Rows).Each(func(_ int, row *goquery.Selection) {
			m, ok := s.parseRow(row)
			if !ok {
				skipped++
				return
			}
			matches = append(matches, m)
			logger.Debug("Parsed match", logger.Fields{
				"league":  title,
				"time":    m.Time,
				"local":   m.Local.Team,
				"visitor": m.Visitor.Team,
			})
		})

		snapshot.Set(title, matches)
		if skipped > 0 {
			logger.Debug("Skipped rows without teams", logger.Fields{
				"league":  title,
				"skipped": skipped,
			})
		}
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	if snapshot.Len() == 0 {
		logger.Warn("No league sections found", logger.Fields{
			"selector": s.selectors.League,
		})
	}

	logger.SetGauge("scraper.leagues", float64(snapshot.Len()))
	logger.SetGauge("scraper.matches", float64(snapshot.MatchCount()))

	return snapshot, nil
}

// parseRow builds a match from a fixture row. Returns false when the row
// does not carry both team names.
// leagueTitle reads the title link of the section's first title row
func (s *Scraper) leagueTitle(section *goquery.Selection) (string, error) {
	row := section.Find(s.selectors.TitleRow).First()
	if row.Length() == 0 {
		return "", errors.Wrapf(ErrSchemaChanged, "no title row at %q", s.selectors.TitleRow)
	}
	link := row.Find(s.selectors.Title).First()
	if link.Length() == 0 {
		return "", errors.Wrapf(ErrSchemaChanged, "title row has no %q", s.selectors.Title)
	}
	title := strings.TrimSpace(link.Text())
	if title == "" {
		return "", errors.Wrap(ErrSchemaChanged, "empty league title")
	}
	return title, nil
}

func (s *Scraper) parseRow(row *goquery.Selection) (match.Match, bool) {
	teams := row.Find(s.selectors.Teams)
	if teams.Length() < 2 {
		return match.Match{}, false
	}

	return match.Match{
		Local:   match.NewSide(cellText(teams.Eq(0)), optionalText(row.Find(s.selectors.LocalResult))),
		Visitor: match.NewSide(cellText(teams.Eq(1)), optionalText(row.Find(s.selectors.VisitorResult))),
		Time:    s.normalizer.Normalize(s.rawTime(row)),
	}, true
}

// rawTime returns the text of the first time cell present on the row
func (s *Scraper) rawTime(row *goquery.Selection) string {
	for _, sel := range s.selectors.Time {
		cell := row.Find(sel)
		if cell.Length() > 0 {
			return cellText(cell)
		}
	}
	return ""
}

func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

func optionalText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	text := cellText(sel)
	return &text
}
