// Command ai-bench plays the engine tiers against each other through the
// backend's stateless move endpoint and reports results and latency.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gomoku/engine"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	level, err := zerolog.ParseLevel(getenv("BENCH_LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	pairings, err := parsePairings(getenv("BENCH_PAIRINGS", "easy:medium,medium:hard,easy:hard"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid-pairings")
	}
	b := newBench(benchOptions{
		baseURL:        strings.TrimRight(getenv("BACKEND_URL", "http://localhost:8080"), "/"),
		apiAddr:        getenv("BENCH_API_ADDR", ":8091"),
		games:          getenvInt("BENCH_GAMES", 2),
		parallel:       getenvInt("BENCH_PARALLEL", 2),
		openingPlies:   getenvInt("BENCH_OPENING_PLIES", 2),
		budgetSlack:    time.Duration(getenvInt("BENCH_BUDGET_SLACK_MS", 250)) * time.Millisecond,
		requestTimeout: 10 * time.Second,
		pairings:       pairings,
	})

	log.Info().Str("backend", b.baseURL).Int("games", b.games).Int("pairings", len(pairings)).Msg("bench-service-started")
	server := b.startStatusAPI()

	if getenvBool("BENCH_AUTOSTART", true) {
		if err := b.startBench(); err != nil {
			log.Error().Err(err).Msg("autostart-failed")
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	<-sigCtx.Done()
	_ = b.stopBench("shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("status-api-shutdown-failed")
	}
	log.Info().Msg("bench-service-stopping")
}

// parsePairings reads "white:black,..." tier pairs.
func parsePairings(raw string) ([]pairing, error) {
	var out []pairing
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, errors.New("pairing must look like white:black, got " + item)
		}
		white, err := engine.ParseDifficulty(parts[0])
		if err != nil {
			return nil, err
		}
		black, err := engine.ParseDifficulty(parts[1])
		if err != nil {
			return nil, err
		}
		out = append(out, pairing{White: white, Black: black})
	}
	if len(out) == 0 {
		return nil, errors.New("no pairings configured")
	}
	return out, nil
}
