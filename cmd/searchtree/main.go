package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/khalid-nowaf/searchtree/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("searchtree failed")
		os.Exit(1)
	}
}
