package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/match"
	"github.com/pfrederiksen/promiedos-alerts/internal/telegram"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var displayZone string

	cmd := &cobra.Command{
		Use:   "format [snapshot.json]",
		Short: "Render a saved snapshot as the Telegram notification",
		Long: `Reads a snapshot JSON object (league name -> matches) from a file, or from
stdin when no file is given, and prints the notification text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return errors.Wrap(err, "reading snapshot")
			}

			zone, err := match.LoadZone(displayZone)
			if err != nil {
				return err
			}

			text, err := telegram.NewFormatter(zone).FormatJSON(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayZone, "display-tz", match.DisplayZone, "Time zone kickoff times are shown in")

	return cmd
}
