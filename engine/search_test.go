package engine

import (
	"testing"
	"time"
)

// plainMinimax is the same search without pruning, cache or deadline.
func plainMinimax(board Board, depth int, maximizing bool) int {
	if depth == 0 {
		return ScoreBoard(board, true)
	}
	candidates := RelevantEmptyCells(board)
	if len(candidates) == 0 {
		return ScoreBoard(board, true)
	}
	player := PlayerBlack
	best := Infinity
	if maximizing {
		player = PlayerWhite
		best = -Infinity
	}
	for _, move := range candidates {
		next := board.Place(move, player)
		if IsWinningMove(next, move.Row, move.Col, player) {
			if maximizing {
				return WinScore
			}
			return -WinScore
		}
		value := plainMinimax(next, depth-1, !maximizing)
		if maximizing && value > best {
			best = value
		}
		if !maximizing && value < best {
			best = value
		}
	}
	return best
}

func searchFixture() Board {
	return boardWith(
		[]Move{{Row: 7, Col: 7}, {Row: 8, Col: 8}},
		[]Move{{Row: 7, Col: 8}, {Row: 6, Col: 6}},
	)
}

func TestSearchValueMatchesPlainMinimaxAtRoot(t *testing.T) {
	board := searchFixture()
	eng := New(Settings{Rand: noRandom})
	for _, maximizing := range []bool{true, false} {
		want := plainMinimax(board, 2, maximizing)
		got := eng.SearchValue(board, 2, -Infinity, Infinity, maximizing, farFuture())
		if got != want {
			t.Fatalf("maximizing=%v: expected minimax value %d, got %d", maximizing, want, got)
		}
	}
}

func TestSearchValueStableForAlphaBelowValue(t *testing.T) {
	board := searchFixture()
	eng := New(Settings{Rand: noRandom})
	value := eng.SearchValue(board, 2, -Infinity, Infinity, true, farFuture())
	prev := -Infinity
	for _, alpha := range []int{-Infinity, value - 5000, value - 100, value - 1} {
		got := eng.SearchValue(board, 2, alpha, Infinity, true, farFuture())
		if got != value {
			t.Fatalf("alpha=%d: expected exact value %d, got %d", alpha, value, got)
		}
		if got < prev {
			t.Fatalf("expected non-decreasing result as alpha grows")
		}
		prev = got
	}
	if got := eng.SearchValue(board, 2, value+50, Infinity, true, farFuture()); got > value+50 {
		t.Fatalf("expected fail-low result at most alpha, got %d", got)
	}
}

func TestSearchValueImmediateWinIsExact(t *testing.T) {
	board := boardWith(rowMoves(7, 3, 4, 5, 6), rowMoves(8, 3, 4, 5))
	eng := New(Settings{Rand: noRandom})
	if got := eng.SearchValue(board, 2, -Infinity, Infinity, true, farFuture()); got != WinScore {
		t.Fatalf("expected white to find the five, got %d", got)
	}
	black := boardWith(rowMoves(8, 3, 4), rowMoves(7, 3, 4, 5, 6))
	if got := eng.SearchValue(black, 2, -Infinity, Infinity, false, farFuture()); got != -WinScore {
		t.Fatalf("expected black to find the five, got %d", got)
	}
}

func TestSearchValueDepthZeroIsStaticScore(t *testing.T) {
	board := searchFixture()
	eng := New(Settings{Rand: noRandom})
	if got := eng.SearchValue(board, 0, -Infinity, Infinity, true, farFuture()); got != ScoreBoard(board, true) {
		t.Fatalf("expected static score at depth 0, got %d", got)
	}
}

func TestSearchValuePastDeadlineIsStaticScore(t *testing.T) {
	board := searchFixture()
	eng := New(Settings{Rand: noRandom})
	past := time.Now().Add(-time.Second)
	if got := eng.SearchValue(board, 3, -Infinity, Infinity, true, past); got != ScoreBoard(board, true) {
		t.Fatalf("expected static score past the deadline, got %d", got)
	}
}

func TestSearchValueStopsMidLoopAtDeadline(t *testing.T) {
	board := searchFixture()
	start := time.Now()
	calls := 0
	// The entry check passes, every later poll is past the deadline.
	eng := New(Settings{Rand: noRandom, Now: func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(time.Hour)
	}})
	got := eng.SearchValue(board, 3, -Infinity, Infinity, true, start.Add(time.Second))
	if got != ScoreBoard(board, true) {
		t.Fatalf("expected static fallback when no child was expanded, got %d", got)
	}
}
