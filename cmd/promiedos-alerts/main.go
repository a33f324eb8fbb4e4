package main

import "github.com/pfrederiksen/promiedos-alerts/internal/cli"

func main() {
	cli.Execute()
}
