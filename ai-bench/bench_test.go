package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gomoku/engine"
)

// fakeBackend serves /api/ping and /api/engine/move from an in-process
// engine.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	eng := engine.New(engine.Settings{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	mux.HandleFunc("/api/engine/move", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Board      [][]int `json:"board"`
			Difficulty string  `json:"difficulty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		board, err := engine.NewBoardFromRows(payload.Board)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		difficulty, err := engine.ParseDifficulty(payload.Difficulty)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		decision, found := eng.Decide(board, difficulty)
		response := engineMoveResponse{Found: found, ElapsedMs: decision.Elapsed.Milliseconds()}
		if found {
			move := decision.Move
			response.Move = &move
			response.Reason = string(decision.Reason)
		}
		writeJSON(w, http.StatusOK, response)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testBench(baseURL string) *bench {
	return newBench(benchOptions{
		baseURL:        baseURL,
		games:          1,
		parallel:       2,
		openingPlies:   2,
		budgetSlack:    time.Second,
		requestTimeout: 10 * time.Second,
		pairings:       []pairing{{White: engine.Easy, Black: engine.Easy}},
	})
}

func TestParsePairings(t *testing.T) {
	pairings, err := parsePairings("easy:hard, medium:medium")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairings) != 2 || pairings[0] != (pairing{White: engine.Easy, Black: engine.Hard}) {
		t.Fatalf("unexpected pairings %+v", pairings)
	}
	for _, raw := range []string{"", "easy", "easy:brutal"} {
		if _, err := parsePairings(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRandomOpeningAlternatesColors(t *testing.T) {
	board := randomOpening(3)
	black, white := 0, 0
	for _, row := range board.Rows() {
		for _, cell := range row {
			switch cell {
			case 1:
				black++
			case 2:
				white++
			}
		}
	}
	if black != 2 || white != 1 {
		t.Fatalf("expected 2 black and 1 white stones, got %d and %d", black, white)
	}
}

func TestPlayMatchFinishes(t *testing.T) {
	backend := fakeBackend(t)
	b := testBench(backend.URL)
	b.startBench()
	deadline := time.Now().Add(60 * time.Second)
	for b.getStatus().Running {
		if time.Now().After(deadline) {
			t.Fatalf("expected bench to finish within 60s")
		}
		time.Sleep(20 * time.Millisecond)
	}
	status := b.getStatus()
	if status.Phase != "done" || status.GamesPlayed != 1 {
		t.Fatalf("expected one finished game, got %+v", status)
	}
	result := status.Results[0]
	if result.Errors != 0 || result.WhiteWins+result.BlackWins+result.Draws != 1 {
		t.Fatalf("expected one decided game, got %+v", result)
	}
	if len(status.LastMatches) != 1 || status.LastMatches[0].ID == "" {
		t.Fatalf("expected a match record with an id")
	}
	if status.Latency[engine.Easy].Moves == 0 {
		t.Fatalf("expected easy latency samples")
	}
}

func TestPlayMatchReportsBackendErrors(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nope"})
	}))
	defer backend.Close()
	b := testBench(backend.URL)
	result := b.playMatch(context.Background(), b.pairings[0])
	if result.Error == "" {
		t.Fatalf("expected error from failing backend")
	}
}

func TestStatusAPI(t *testing.T) {
	b := testBench("http://127.0.0.1:0")
	server := httptest.NewServer(b.routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/bench/status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var status benchStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Running || status.Phase != "idle" {
		t.Fatalf("expected idle bench, got %+v", status)
	}

	stop, err := http.Post(server.URL+"/api/bench/stop", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	stop.Body.Close()
	if stop.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 stopping an idle bench, got %d", stop.StatusCode)
	}
}
