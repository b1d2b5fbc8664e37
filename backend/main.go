package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gomoku/engine"
	"gomoku/game"
)

const shutdownTimeout = 5 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("backend-exit")
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	configStore.Update(cfg)
	zerolog.SetGlobalLevel(cfg.Level())

	cache := engine.NewPositionCache(cfg.AiCacheSize)
	if cfg.AiPersistCache {
		restored, err := loadCache(cache, cfg.AiCachePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.AiCachePath).Msg("cache-load-failed")
		} else {
			log.Info().Int("entries", restored).Str("path", cfg.AiCachePath).Msg("cache-loaded")
		}
	}
	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		if !cfg.AiPersistCache {
			return
		}
		persistOnce.Do(func() {
			if err := saveCache(cache, cfg.AiCachePath); err != nil {
				log.Error().Err(err).Str("reason", reason).Msg("cache-persist-failed")
				return
			}
			log.Info().Int("entries", cache.Len()).Str("reason", reason).Msg("cache-persisted")
		})
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Msg("panic-recovered")
			persistOnShutdown("panic")
			panic(recovered)
		}
	}()

	eng := engine.New(engine.Settings{
		Cache:          cache,
		Logger:         log.With().Str("component", "engine").Logger(),
		LogSearchStats: cfg.AiLogSearchStats,
	})
	controller := game.NewController(cfg.GameSettings(), eng, log.With().Str("component", "game").Logger())
	hub := NewHub()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(controller, hub),
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	g, ctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		hub.Run(ctx.Done())
		return nil
	})
	g.Go(func() error {
		runGameLoop(ctx, controller, hub, cfg.TickInterval())
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Msg("backend-listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("backend-shutting-down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("graceful-shutdown-failed")
			return server.Close()
		}
		return nil
	})

	runErr := g.Wait()
	persistOnShutdown("shutdown")
	return runErr
}

// runGameLoop ticks the session and pushes whatever changed to the hub.
func runGameLoop(ctx context.Context, controller *game.Controller, hub *Hub, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	state := controller.State()
	lastID, lastMoves := state.ID, state.MoveCount
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed := controller.Tick()
			hub.PublishNotices(controller.DrainNotices())
			if !changed {
				continue
			}
			status := controllerStatus(controller)
			if status.ID != lastID {
				lastID, lastMoves = status.ID, 0
			}
			if status.MoveCount > lastMoves {
				if entry, ok := controller.LatestHistoryEntry(); ok {
					hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
				}
			}
			lastMoves = status.MoveCount
			hub.PublishStatus(status)
		}
	}
}
