// Package cli implements the command-line interface for promiedos-alerts.
//
// The root command runs one invocation: fetch the results page (or parse a saved copy),
// send the Telegram notification (or print it in dry-run mode) and write the snapshot
// to stdout as text or JSON. The format subcommand renders an already-serialized
// snapshot without touching the network.
package cli
