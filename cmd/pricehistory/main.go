package main

import (
	"github.com/rs/zerolog/log"
)

const (
	serviceName    = "pricehistory"
	serviceVersion = "1.0.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("pricehistory failed")
	}
}
