package game

import "gomoku/engine"

// HumanPlayer holds a move submitted between ticks.
type HumanPlayer struct {
	pending     bool
	pendingMove engine.Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) SetPendingMove(move engine.Move) {
	h.pendingMove = move
	h.pending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	return h.pending
}

func (h *HumanPlayer) TakePendingMove() engine.Move {
	h.pending = false
	return h.pendingMove
}

func (h *HumanPlayer) Clear() {
	h.pending = false
}
