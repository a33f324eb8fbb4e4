package handler

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/config"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"github.com/pfrederiksen/promiedos-alerts/internal/notifier"
	"github.com/pfrederiksen/promiedos-alerts/internal/scraper"
	"github.com/pfrederiksen/promiedos-alerts/internal/telegram"
)

// Options selects optional behaviour for FromConfig
type Options struct {
	HTMLFile string    // parse a saved page instead of fetching
	DryRun   io.Writer // print the notification here instead of sending it, when set
}

// FromConfig builds the production pipeline from a validated configuration
func FromConfig(cfg *config.Config, opts Options) (*Handler, error) {
	source, err := newSource(cfg, opts.HTMLFile)
	if err != nil {
		return nil, err
	}

	displayZone, err := match.LoadZone(cfg.DisplayZone)
	if err != nil {
		return nil, err
	}

	n := newNotifier(cfg, opts.DryRun)
	return New(source, telegram.NewFormatter(displayZone), n), nil
}

func newSource(cfg *config.Config, path string) (Source, error) {
	sel := scraper.DefaultSelectors()
	if cfg.SelectorsFile != "" {
		var err error
		if sel, err = scraper.LoadSelectors(cfg.SelectorsFile); err != nil {
			return nil, err
		}
	}

	sourceZone, err := match.LoadZone(cfg.SourceZone)
	if err != nil {
		return nil, err
	}

	sc := scraper.New(
		scraper.WithURL(cfg.SourceURL),
		scraper.WithSelectors(sel),
		scraper.WithNormalizer(match.NewNormalizer(sourceZone)),
	)
	if path != "" {
		return &fileSource{scraper: sc, path: path}, nil
	}
	return sc, nil
}

// newNotifier returns the dry-run notifier, the Telegram notifier, or, when the
// credentials are missing, a notifier whose every delivery fails with that error.
func newNotifier(cfg *config.Config, dryRun io.Writer) notifier.Notifier {
	if dryRun != nil {
		return notifier.NewDryRunNotifier(dryRun)
	}

	err := cfg.Telegram.Validate()
	if err == nil {
		var client *telegram.Client
		if client, err = telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
			logger.Debug("Telegram delivery configured", logger.Fields{"chat_id": client.ChatID()})
			return notifier.NewTelegramNotifier(client)
		}
	}

	err = errors.Mark(errors.Wrap(err, "use --dry-run to skip delivery"), telegram.ErrMissingCredentials)
	logger.Warn("Telegram delivery unavailable", logger.Fields{"reason": err.Error()})
	return notifier.NewUnavailableNotifier(err)
}

// fileSource parses a saved results page
type fileSource struct {
	scraper *scraper.Scraper
	path    string
}

func (f *fileSource) FetchSnapshot(_ context.Context) (*match.Snapshot, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, errors.Wrap(err, "opening HTML file")
	}
	defer file.Close() // nolint:errcheck

	return f.scraper.Parse(file)
}
