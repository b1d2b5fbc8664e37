package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gomoku/engine"
	"gomoku/game"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestConfigRejectsControlSymbols(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme.Symbols.BlackStone = '\n'
	var invalid *InvalidConfig
	if err := cfg.Validate(); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfig, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Difficulty = "impossible"
	if err := cfg.Validate(); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidConfig for difficulty, got %v", err)
	}
}

func TestBoardViewSelectionStopsAtEdges(t *testing.T) {
	view := NewBoardView(DefaultConfig().Theme)
	if view.Selected() != (engine.Move{Row: 7, Col: 7}) {
		t.Fatalf("expected cursor to start at the center")
	}
	for i := 0; i < 20; i++ {
		view.MoveSelection(-1, 1)
	}
	if view.Selected() != (engine.Move{Row: 0, Col: 14}) {
		t.Fatalf("expected cursor clamped to (0,14), got %v", view.Selected())
	}
}

func TestBoardViewHighlightsWinningLine(t *testing.T) {
	view := NewBoardView(DefaultConfig().Theme)
	var board engine.Board
	board.Set(0, 0, engine.CellBlack)
	view.SetState(game.State{Board: board, WinningLine: []engine.Move{{Row: 0, Col: 0}}})
	symbol, style := view.cellStyle(0, 0)
	if symbol != DefaultConfig().Theme.Symbols.BlackStone {
		t.Fatalf("expected black stone symbol, got %q", symbol)
	}
	_, bg, _ := style.Decompose()
	if bg != view.styles[styleWinning] {
		t.Fatalf("expected winning background")
	}
}

func TestPanelText(t *testing.T) {
	state := game.State{
		Status:        game.StatusRunning,
		ToMove:        game.HumanSide,
		Difficulty:    engine.Hard,
		TurnRemaining: 12 * time.Second,
	}
	text := panelText(state, &game.Notice{Level: game.NoticeWarn, Text: "[hurry]"})
	if !strings.Contains(text, "hard") || !strings.Contains(text, "Your move") || !strings.Contains(text, "12s") {
		t.Fatalf("unexpected panel text %q", text)
	}
	if !strings.Contains(text, "[yellow][[hurry]") {
		t.Fatalf("expected escaped warning notice, got %q", text)
	}
	state.Status = game.StatusWhiteWon
	state.WinReason = game.WinTimeout
	if text := panelText(state, nil); !strings.Contains(text, "Engine wins") || !strings.Contains(text, "timeout") {
		t.Fatalf("unexpected finished panel text %q", text)
	}
}
