package game

import (
	"time"

	"gomoku/engine"
)

type Status string

const (
	StatusRunning  Status = "running"
	StatusBlackWon Status = "black_won"
	StatusWhiteWon Status = "white_won"
	StatusDraw     Status = "draw"
)

// WinReason tells why a finished game ended.
type WinReason string

const (
	WinFive    WinReason = "five"
	WinTimeout WinReason = "timeout"
)

// The human always plays Black and the engine White.
const (
	HumanSide  = engine.PlayerBlack
	EngineSide = engine.PlayerWhite
)

// State is a snapshot of a session, safe to hand to presenters.
type State struct {
	ID              string            `json:"id"`
	Board           engine.Board      `json:"-"`
	Cells           [][]int           `json:"board"`
	ToMove          engine.Player     `json:"to_move"`
	Status          Status            `json:"status"`
	WinReason       WinReason         `json:"win_reason,omitempty"`
	WinningLine     []engine.Move     `json:"winning_line,omitempty"`
	HasLastMove     bool              `json:"has_last_move"`
	LastMove        engine.Move       `json:"last_move"`
	Difficulty      engine.Difficulty `json:"difficulty"`
	MoveCount       int               `json:"move_count"`
	TurnRemaining   time.Duration     `json:"-"`
	TurnRemainingMs int64             `json:"turn_remaining_ms"`
	EngineThinking  bool              `json:"engine_thinking"`
}

func (s State) Clone() State {
	clone := s
	clone.Cells = s.Board.Rows()
	clone.WinningLine = append([]engine.Move(nil), s.WinningLine...)
	return clone
}

func (s State) Finished() bool {
	return s.Status != StatusRunning
}

func statusWonBy(player engine.Player) Status {
	if player == engine.PlayerBlack {
		return StatusBlackWon
	}
	return StatusWhiteWon
}
