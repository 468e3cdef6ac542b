package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/mithrel/chatextract/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The no-match message is already on stdout.
		if cli.IsNoMatches(err) {
			os.Exit(1)
		}
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
		log.Fatal().Err(err).Msg("chatextract")
	}
}
