package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"gomoku/engine"
	"gomoku/game"
)

type StatusResponse struct {
	ID              string                   `json:"id"`
	Board           [][]int                  `json:"board"`
	NextPlayer      string                   `json:"next_player"`
	Status          string                   `json:"status"`
	Winner          string                   `json:"winner,omitempty"`
	WinReason       string                   `json:"win_reason,omitempty"`
	WinningLine     []engine.Move            `json:"winning_line"`
	LastMove        *engine.Move             `json:"last_move,omitempty"`
	Difficulty      engine.Difficulty        `json:"difficulty"`
	Profile         engine.DifficultyProfile `json:"profile"`
	MoveCount       int                      `json:"move_count"`
	TurnRemainingMs int64                    `json:"turn_remaining_ms"`
	EngineThinking  bool                     `json:"engine_thinking"`
	History         []historyEntryDTO        `json:"history"`
}

type historyEntryDTO struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Player    string `json:"player"`
	ElapsedMs int64  `json:"elapsed_ms"`
	IsEngine  bool   `json:"is_engine"`
	Reason    string `json:"reason,omitempty"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type apiMove struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type engineMoveRequest struct {
	Board      [][]int `json:"board"`
	Difficulty string  `json:"difficulty"`
}

type engineMoveResponse struct {
	Found      bool         `json:"found"`
	Move       *engine.Move `json:"move,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	Score      int          `json:"score"`
	Candidates int          `json:"candidates"`
	Nodes      int          `json:"nodes"`
	TimedOut   bool         `json:"timed_out"`
	ElapsedMs  int64        `json:"elapsed_ms"`
}

type cacheStatusResponse struct {
	Count    int     `json:"count"`
	Capacity int     `json:"capacity"`
	Usage    float64 `json:"usage"`
	Full     bool    `json:"full"`
}

func newRouter(controller *game.Controller, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Row == nil || payload.Col == nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		move := engine.NewMove(*payload.Row, *payload.Col)
		if err := controller.ApplyHumanMove(move); err != nil {
			writeError(w, moveErrorStatus(err), err.Error())
			return
		}
		if entry, ok := controller.LatestHistoryEntry(); ok {
			hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
		}
		status := controllerStatus(controller)
		hub.PublishStatus(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/restart", func(w http.ResponseWriter, r *http.Request) {
		controller.Restart()
		status := controllerStatus(controller)
		hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/difficulty", func(w http.ResponseWriter, r *http.Request) {
		var payload difficultyRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		difficulty, err := engine.ParseDifficulty(payload.Difficulty)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := controller.SetDifficulty(difficulty); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status := controllerStatus(controller)
		hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cacheStatus(controller.Engine().Cache()))
	})

	r.Post("/api/engine/move", func(w http.ResponseWriter, r *http.Request) {
		var payload engineMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		board, err := engine.NewBoardFromRows(payload.Board)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		difficulty := engine.Medium
		if payload.Difficulty != "" {
			difficulty, err = engine.ParseDifficulty(payload.Difficulty)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		decision, found := controller.Engine().Decide(board, difficulty)
		writeJSON(w, http.StatusOK, engineMoveToDTO(decision, found))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *game.Controller, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws-upgrade-failed")
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)
	log.Debug().Int("clients", hub.ClientCount()).Msg("ws-client-connected")

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, wsIdlePingInterval); err != nil {
			log.Debug().Err(err).Msg("ws-write-stopped")
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}

func controllerStatus(controller *game.Controller) StatusResponse {
	state := controller.State()
	response := StatusResponse{
		ID:              state.ID,
		Board:           state.Cells,
		NextPlayer:      state.ToMove.String(),
		Status:          string(state.Status),
		WinReason:       string(state.WinReason),
		WinningLine:     append([]engine.Move{}, state.WinningLine...),
		Difficulty:      state.Difficulty,
		Profile:         state.Difficulty.Profile(),
		MoveCount:       state.MoveCount,
		TurnRemainingMs: state.TurnRemainingMs,
		EngineThinking:  state.EngineThinking,
		History:         historyToDTO(controller.History()),
	}
	switch state.Status {
	case game.StatusBlackWon:
		response.Winner = engine.PlayerBlack.String()
	case game.StatusWhiteWon:
		response.Winner = engine.PlayerWhite.String()
	}
	if state.HasLastMove {
		last := state.LastMove
		response.LastMove = &last
	}
	return response
}

func historyToDTO(history game.MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry game.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Row:       entry.Move.Row,
		Col:       entry.Move.Col,
		Player:    entry.Player.String(),
		ElapsedMs: entry.ElapsedMs,
		IsEngine:  entry.IsEngine,
		Reason:    string(entry.Reason),
	}
}

func engineMoveToDTO(decision engine.Decision, found bool) engineMoveResponse {
	response := engineMoveResponse{
		Found:      found,
		Candidates: decision.Candidates,
		Nodes:      decision.Nodes,
		TimedOut:   decision.TimedOut,
		ElapsedMs:  decision.Elapsed.Milliseconds(),
	}
	if found {
		move := decision.Move
		response.Move = &move
		response.Reason = string(decision.Reason)
		response.Score = decision.Score
	}
	return response
}

func cacheStatus(cache *engine.PositionCache) cacheStatusResponse {
	count := cache.Len()
	capacity := cache.Capacity()
	usage := 0.0
	if capacity > 0 {
		usage = float64(count) / float64(capacity)
	}
	return cacheStatusResponse{
		Count:    count,
		Capacity: capacity,
		Usage:    usage,
		Full:     count >= capacity,
	}
}

func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrOccupied), errors.Is(err, game.ErrNotHumanTurn), errors.Is(err, game.ErrNotRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
