package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ayushg/blogbuild/builder"
)

var (
	siteRoot string
	debug    bool
	watch    bool
)

func main() {
	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Info().Msg("Starting...")

	// Command line flags
	flag.BoolVar(&debug, "debug", false, "Sets log level to debug")
	flag.StringVar(&siteRoot, "site", ".", "Path to the site root")
	flag.BoolVar(&watch, "watch", false, "Rebuild on content changes instead of exiting")
	flag.Parse()

	// Set the log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Msg("Debug logging has been enabled")

	b, err := builder.New(siteRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize builder")
	}

	if err := b.Build(); err != nil {
		log.Error().Err(err).Msg("Build completed with errors")
		if !watch {
			os.Exit(1)
		}
	}

	// Keep rebuilding on content changes until interrupted
	if watch {
		if err := b.Watch(); err != nil {
			log.Fatal().Err(err).Msg("Watcher stopped")
		}
	}
}
