package engine

import (
	"testing"
	"time"
)

func TestChooseMoveFullBoardHasNoMove(t *testing.T) {
	var board Board
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if (r+c)%2 == 0 {
				board.Set(r, c, CellBlack)
			} else {
				board.Set(r, c, CellWhite)
			}
		}
	}
	eng := New(Settings{Rand: noRandom})
	for _, d := range Difficulties() {
		if _, ok := eng.ChooseMove(board, d); ok {
			t.Fatalf("%s: expected no move on a full board", d)
		}
	}
}

func TestChooseMoveHardFromEmptyBoardWithinBudget(t *testing.T) {
	var board Board
	eng := New(Settings{})
	start := time.Now()
	move, ok := eng.ChooseMove(board, Hard)
	elapsed := time.Since(start)
	if !ok || !move.IsValid() {
		t.Fatalf("expected an in-bounds move, got %v %v", move, ok)
	}
	if move != (Move{Row: 7, Col: 7}) {
		t.Fatalf("expected the center on an empty board, got %v", move)
	}
	if elapsed > Hard.Profile().TimeBudget+200*time.Millisecond {
		t.Fatalf("expected decision within budget, took %s", elapsed)
	}
}

func TestChooseMoveHardTakesImmediateWin(t *testing.T) {
	white := rowMoves(7, 3, 4, 5, 6)
	black := append(rowMoves(7, 2), Move{Row: 8, Col: 4}, Move{Row: 9, Col: 5}, Move{Row: 6, Col: 6})
	board := boardWith(white, black)
	eng := New(Settings{Rand: noRandom})
	decision, ok := eng.Decide(board, Hard)
	if !ok {
		t.Fatalf("expected a move")
	}
	if decision.Move != (Move{Row: 7, Col: 7}) || decision.Reason != ReasonWin {
		t.Fatalf("expected winning move (7,7), got %v (%s)", decision.Move, decision.Reason)
	}
}

func TestChooseMoveMediumBlocksOpenFour(t *testing.T) {
	black := rowMoves(7, 3, 4, 5, 6)
	white := []Move{{Row: 8, Col: 4}, {Row: 6, Col: 5}, {Row: 9, Col: 9}}
	board := boardWith(white, black)
	eng := New(Settings{Rand: noRandom})
	decision, ok := eng.Decide(board, Medium)
	if !ok {
		t.Fatalf("expected a move")
	}
	if decision.Reason != ReasonBlock {
		t.Fatalf("expected a forced block, got %s at %v", decision.Reason, decision.Move)
	}
	if decision.Move != (Move{Row: 7, Col: 2}) && decision.Move != (Move{Row: 7, Col: 7}) {
		t.Fatalf("expected block at an end of the four, got %v", decision.Move)
	}
}

func TestChooseMoveMediumPrefersOwnWinOverBlock(t *testing.T) {
	black := rowMoves(3, 3, 4, 5, 6)
	white := rowMoves(10, 3, 4, 5, 6)
	board := boardWith(white, black)
	eng := New(Settings{Rand: noRandom})
	decision, ok := eng.Decide(board, Medium)
	if !ok {
		t.Fatalf("expected a move")
	}
	if decision.Reason != ReasonWin || decision.Move.Row != 10 {
		t.Fatalf("expected white to win on row 10 instead of blocking, got %v (%s)", decision.Move, decision.Reason)
	}
}

func TestChooseMoveRandomBranch(t *testing.T) {
	board := boardWith([]Move{{Row: 7, Col: 7}}, []Move{{Row: 7, Col: 8}})
	eng := New(Settings{Rand: stubRand{float: 0.05, index: 0}})
	decision, ok := eng.Decide(board, Medium)
	if !ok || decision.Reason != ReasonRandom {
		t.Fatalf("expected random move, got %s", decision.Reason)
	}
	if decision.Move != RelevantEmptyCells(board)[0] {
		t.Fatalf("expected first candidate from stubbed index, got %v", decision.Move)
	}
	hard, _ := eng.Decide(board, Hard)
	if hard.Reason == ReasonRandom {
		t.Fatalf("expected hard tier never to play randomly")
	}
}

func TestChooseMoveEasyTakesImmediateWin(t *testing.T) {
	white := rowMoves(7, 3, 4, 5, 6)
	black := rowMoves(7, 2)
	board := boardWith(white, black)
	eng := New(Settings{Rand: noRandom})
	decision, ok := eng.Decide(board, Easy)
	if !ok || decision.Move != (Move{Row: 7, Col: 7}) || decision.Reason != ReasonWin {
		t.Fatalf("expected easy tier to complete five at (7,7), got %v (%s)", decision.Move, decision.Reason)
	}
	if decision.Nodes != 0 {
		t.Fatalf("expected easy tier not to search, got %d nodes", decision.Nodes)
	}
}

func TestChooseMoveEasyPicksAmongBestBlend(t *testing.T) {
	board := boardWith([]Move{{Row: 7, Col: 7}}, []Move{{Row: 7, Col: 8}})
	candidates := RelevantEmptyCells(board)
	best := 0
	for i, move := range candidates {
		attack := ScoreStone(board, move.Row, move.Col, PlayerWhite, false)
		defense := ScoreStone(board, move.Row, move.Col, PlayerBlack, false)
		blend := 7*attack + 5*defense
		if i == 0 || blend > best {
			best = blend
		}
	}
	eng := New(Settings{Rand: noRandom})
	decision, ok := eng.Decide(board, Easy)
	if !ok || decision.Reason != ReasonHeuristic {
		t.Fatalf("expected heuristic decision, got %s", decision.Reason)
	}
	attack := ScoreStone(board, decision.Move.Row, decision.Move.Col, PlayerWhite, false)
	defense := ScoreStone(board, decision.Move.Row, decision.Move.Col, PlayerBlack, false)
	if 7*attack+5*defense != best {
		t.Fatalf("expected chosen move to carry the best blend %d, got %d", best, 7*attack+5*defense)
	}
}

func TestChooseMoveFallsBackToFirstCandidateWhenBudgetGone(t *testing.T) {
	board := boardWith([]Move{{Row: 7, Col: 7}}, []Move{{Row: 7, Col: 8}})
	start := time.Now()
	calls := 0
	eng := New(Settings{Rand: noRandom, Now: func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(time.Minute)
	}})
	decision, ok := eng.Decide(board, Hard)
	if !ok {
		t.Fatalf("expected a move")
	}
	if decision.Reason != ReasonFallback || decision.Move != RelevantEmptyCells(board)[0] {
		t.Fatalf("expected first-candidate fallback, got %v (%s)", decision.Move, decision.Reason)
	}
}

func TestChooseMoveNeverMutatesCallerBoard(t *testing.T) {
	board := searchFixture()
	before := board.Key()
	eng := New(Settings{Rand: noRandom})
	if _, ok := eng.ChooseMove(board, Medium); !ok {
		t.Fatalf("expected a move")
	}
	if board.Key() != before {
		t.Fatalf("expected caller board unchanged")
	}
}

func TestChooseMoveSwappedBoardPlaysForBlack(t *testing.T) {
	black := rowMoves(7, 3, 4, 5, 6)
	white := rowMoves(7, 2)
	board := boardWith(white, black)
	eng := New(Settings{Rand: noRandom})
	move, ok := eng.ChooseMove(board.Swapped(), Hard)
	if !ok || move != (Move{Row: 7, Col: 7}) {
		t.Fatalf("expected black's winning cell (7,7) via swapped board, got %v", move)
	}
}
