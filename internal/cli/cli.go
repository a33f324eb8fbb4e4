package cli

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/config"
	"github.com/pfrederiksen/promiedos-alerts/internal/handler"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type rootOptions struct {
	envFile   string
	dryRun    bool
	format    string
	htmlFile  string
	selectors string
	verbose   bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "promiedos-alerts",
		Short: "Send today's promiedos.com.ar results to Telegram",
		Long: `Fetches the promiedos.com.ar results page, extracts every league and match,
sends a formatted summary to a Telegram chat and prints the snapshot.

Delivery failures are logged and do not change the exit status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Dotenv file to load before reading the environment")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the notification instead of sending it")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatText), "Snapshot output format: text or json")
	cmd.Flags().StringVar(&opts.htmlFile, "html-file", "", "Parse a saved results page instead of fetching it")
	cmd.Flags().StringVar(&opts.selectors, "selectors", "", "YAML selector table overriding the built-in one (or env: SELECTORS_FILE)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and print metrics")

	cmd.AddCommand(newFormatCmd())

	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	format, err := ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.selectors != "" {
		cfg.SelectorsFile = opts.selectors
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Level()
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	defer logger.Sync() // nolint:errcheck

	hopts := handler.Options{HTMLFile: opts.htmlFile}
	if opts.dryRun {
		hopts.DryRun = cmd.ErrOrStderr()
	}
	h, err := handler.FromConfig(cfg, hopts)
	if err != nil {
		return err
	}

	result, err := h.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if opts.verbose {
		logger.LogMetrics("Run metrics")
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
