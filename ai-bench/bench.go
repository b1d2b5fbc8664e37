package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"gomoku/engine"
)

type pairing struct {
	White engine.Difficulty `json:"white"`
	Black engine.Difficulty `json:"black"`
}

type benchOptions struct {
	baseURL        string
	apiAddr        string
	games          int
	parallel       int
	openingPlies   int
	budgetSlack    time.Duration
	requestTimeout time.Duration
	pairings       []pairing
}

type bench struct {
	benchOptions
	client *http.Client

	statusMu  sync.RWMutex
	status    benchStatus
	jobMu     sync.Mutex
	jobCancel context.CancelFunc
	jobDone   chan struct{}
}

type benchStatus struct {
	Running     bool            `json:"running"`
	Phase       string          `json:"phase"`
	Message     string          `json:"message"`
	StartedAt   string          `json:"started_at"`
	UpdatedAt   string          `json:"updated_at"`
	GamesPlayed int             `json:"games_played"`
	GamesTotal  int             `json:"games_total"`
	Results     []pairingResult `json:"results"`
	Latency     []tierLatency   `json:"latency"`
	LastMatches []matchResult   `json:"last_matches"`
}

type pairingResult struct {
	Pairing   pairing `json:"pairing"`
	WhiteWins int     `json:"white_wins"`
	BlackWins int     `json:"black_wins"`
	Draws     int     `json:"draws"`
	Errors    int     `json:"errors"`
}

type tierLatency struct {
	Difficulty engine.Difficulty `json:"difficulty"`
	Moves      int               `json:"moves"`
	TotalMs    int64             `json:"total_ms"`
	MaxMs      int64             `json:"max_ms"`
	OverBudget int               `json:"over_budget"`
}

type matchResult struct {
	ID      string  `json:"id"`
	Pairing pairing `json:"pairing"`
	Winner  string  `json:"winner"`
	Moves   int     `json:"moves"`
	Error   string  `json:"error,omitempty"`
}

type engineMoveResponse struct {
	Found     bool         `json:"found"`
	Move      *engine.Move `json:"move"`
	Reason    string       `json:"reason"`
	Score     int          `json:"score"`
	ElapsedMs int64        `json:"elapsed_ms"`
}

const lastMatchesKept = 20

func newBench(opts benchOptions) *bench {
	now := time.Now().UTC().Format(time.RFC3339)
	return &bench{
		benchOptions: opts,
		client:       &http.Client{Timeout: opts.requestTimeout},
		status: benchStatus{
			Phase:     "idle",
			Message:   "service ready",
			StartedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *bench) getStatus() benchStatus {
	b.statusMu.RLock()
	defer b.statusMu.RUnlock()
	status := b.status
	status.Results = append([]pairingResult(nil), b.status.Results...)
	status.Latency = append([]tierLatency(nil), b.status.Latency...)
	status.LastMatches = append([]matchResult(nil), b.status.LastMatches...)
	return status
}

func (b *bench) updateStatus(mutator func(*benchStatus)) {
	b.statusMu.Lock()
	defer b.statusMu.Unlock()
	mutator(&b.status)
	b.status.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

func (b *bench) startBench() error {
	b.jobMu.Lock()
	defer b.jobMu.Unlock()
	if b.jobCancel != nil {
		return fmt.Errorf("bench already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.jobCancel = cancel
	b.jobDone = done
	b.updateStatus(func(s *benchStatus) {
		s.Running = true
		s.Phase = "starting"
		s.Message = "bench starting"
		s.GamesPlayed = 0
		s.GamesTotal = b.games * len(b.pairings)
		s.Results = make([]pairingResult, len(b.pairings))
		for i, p := range b.pairings {
			s.Results[i].Pairing = p
		}
		s.Latency = nil
		for _, d := range engine.Difficulties() {
			s.Latency = append(s.Latency, tierLatency{Difficulty: d})
		}
		s.LastMatches = nil
	})
	go func() {
		defer close(done)
		err := b.waitBackendReady(ctx)
		if err == nil {
			err = b.runBench(ctx)
		}
		b.updateStatus(func(s *benchStatus) {
			s.Running = false
			switch {
			case err == nil:
				s.Phase = "done"
				s.Message = "bench complete"
			case errors.Is(err, context.Canceled):
				s.Phase = "idle"
				s.Message = "bench stopped"
			default:
				s.Phase = "error"
				s.Message = err.Error()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("bench-failed")
		} else if err == nil {
			log.Info().Int("games", b.getStatus().GamesPlayed).Msg("bench-complete")
		}
		b.jobMu.Lock()
		b.jobCancel = nil
		b.jobDone = nil
		b.jobMu.Unlock()
	}()
	return nil
}

func (b *bench) stopBench(reason string) error {
	b.jobMu.Lock()
	cancel := b.jobCancel
	done := b.jobDone
	b.jobMu.Unlock()
	if cancel == nil {
		return fmt.Errorf("no running bench")
	}
	log.Info().Str("reason", reason).Msg("bench-stopping")
	cancel()
	if done != nil {
		<-done
	}
	return nil
}

// runBench plays every pairing b.games times, b.parallel matches at once.
func (b *bench) runBench(ctx context.Context) error {
	b.updateStatus(func(s *benchStatus) {
		s.Phase = "running"
		s.Message = "playing matches"
	})
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallel)
	for i, p := range b.pairings {
		for n := 0; n < b.games; n++ {
			index, p := i, p
			g.Go(func() error {
				result := b.playMatch(gctx, p)
				if gctx.Err() != nil {
					return gctx.Err()
				}
				b.recordMatch(index, result)
				return nil
			})
		}
	}
	return g.Wait()
}

func (b *bench) recordMatch(index int, result matchResult) {
	b.updateStatus(func(s *benchStatus) {
		s.GamesPlayed++
		switch {
		case result.Error != "":
			s.Results[index].Errors++
		case result.Winner == engine.PlayerWhite.String():
			s.Results[index].WhiteWins++
		case result.Winner == engine.PlayerBlack.String():
			s.Results[index].BlackWins++
		default:
			s.Results[index].Draws++
		}
		s.LastMatches = append(s.LastMatches, result)
		if len(s.LastMatches) > lastMatchesKept {
			s.LastMatches = s.LastMatches[len(s.LastMatches)-lastMatchesKept:]
		}
	})
	log.Info().
		Str("match", result.ID).
		Stringer("white", result.Pairing.White).
		Stringer("black", result.Pairing.Black).
		Str("winner", result.Winner).
		Int("moves", result.Moves).
		Str("error", result.Error).
		Msg("match-finished")
}

func (b *bench) recordLatency(difficulty engine.Difficulty, elapsed time.Duration) {
	budget := difficulty.Profile().TimeBudget + b.budgetSlack
	b.updateStatus(func(s *benchStatus) {
		for i := range s.Latency {
			if s.Latency[i].Difficulty != difficulty {
				continue
			}
			ms := elapsed.Milliseconds()
			s.Latency[i].Moves++
			s.Latency[i].TotalMs += ms
			if ms > s.Latency[i].MaxMs {
				s.Latency[i].MaxMs = ms
			}
			if elapsed > budget {
				s.Latency[i].OverBudget++
			}
		}
	})
}

// playMatch plays one game. Black is asked for its move on a color-swapped
// board, since the engine always moves for White.
func (b *bench) playMatch(ctx context.Context, p pairing) matchResult {
	result := matchResult{ID: uuid.NewString(), Pairing: p}
	board := randomOpening(b.openingPlies)
	toMove := engine.PlayerBlack
	if b.openingPlies%2 == 1 {
		toMove = engine.PlayerWhite
	}
	result.Moves = b.openingPlies
	for {
		if ctx.Err() != nil {
			result.Error = ctx.Err().Error()
			return result
		}
		if board.IsFull() {
			return result
		}
		query, difficulty := board, p.White
		if toMove == engine.PlayerBlack {
			query, difficulty = board.Swapped(), p.Black
		}
		start := time.Now()
		response, err := b.requestMove(ctx, query, difficulty)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		b.recordLatency(difficulty, time.Since(start))
		if !response.Found || response.Move == nil {
			return result
		}
		move := *response.Move
		if !move.IsValid() || !board.IsEmpty(move.Row, move.Col) {
			result.Error = fmt.Sprintf("engine returned unplayable move %s", move)
			return result
		}
		board.Set(move.Row, move.Col, engine.CellFromPlayer(toMove))
		result.Moves++
		if engine.IsWinningMove(board, move.Row, move.Col, toMove) {
			result.Winner = toMove.String()
			return result
		}
		toMove = toMove.Other()
	}
}

// randomOpening scatters plies stones, alternating from Black, in the
// 5x5 square around the center.
func randomOpening(plies int) engine.Board {
	var board engine.Board
	player := engine.PlayerBlack
	center := engine.BoardSize / 2
	for placed := 0; placed < plies && placed < 25; {
		row := center - 2 + frand.Intn(5)
		col := center - 2 + frand.Intn(5)
		if !board.IsEmpty(row, col) {
			continue
		}
		board.Set(row, col, engine.CellFromPlayer(player))
		player = player.Other()
		placed++
	}
	return board
}

func (b *bench) requestMove(ctx context.Context, board engine.Board, difficulty engine.Difficulty) (engineMoveResponse, error) {
	payload := map[string]any{
		"board":      board.Rows(),
		"difficulty": difficulty.String(),
	}
	var out engineMoveResponse
	err := b.postJSON(ctx, "/api/engine/move", payload, &out)
	return out, err
}

func (b *bench) waitBackendReady(ctx context.Context) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		if err := b.ping(ctx); err == nil {
			return nil
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("backend not ready after 60s")
}

func (b *bench) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping status %d", resp.StatusCode)
	}
	return nil
}

func (b *bench) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("POST %s -> %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
