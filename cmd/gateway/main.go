// The gateway serves the frontend with offline support. It precaches
// the application shell, answers static asset requests from its cache
// and falls back to recent cached API responses when the upstream is
// unreachable.
package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if !ok || logFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	g := gateway.New(gateway.Options{
		Upstream: cfg.Upstream,
		Host:     cfg.Upstream.Host,
	})

	// A failed precache is not fatal, assets are fetched on demand later
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := g.Install(ctx); err != nil {
		log.Warn().Err(err).Msg("precaching the application shell failed")
	}
	cancel()

	g.Activate()

	log.Info().Str("listen", cfg.Listen).Str("upstream", cfg.Upstream.String()).Msg("gateway startup complete")

	if err := http.ListenAndServe(cfg.Listen, g); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
