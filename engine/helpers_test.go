package engine

import "time"

type stubRand struct {
	float float64
	index int
}

func (s stubRand) Float64() float64 { return s.float }

func (s stubRand) Intn(n int) int {
	if s.index >= n {
		return n - 1
	}
	return s.index
}

// noRandom never takes the random-move branch and picks the first tie.
var noRandom = stubRand{float: 0.999}

func boardWith(white []Move, black []Move) Board {
	var board Board
	for _, m := range white {
		board.Set(m.Row, m.Col, CellWhite)
	}
	for _, m := range black {
		board.Set(m.Row, m.Col, CellBlack)
	}
	return board
}

func rowMoves(row int, cols ...int) []Move {
	moves := make([]Move, 0, len(cols))
	for _, col := range cols {
		moves = append(moves, Move{Row: row, Col: col})
	}
	return moves
}

func farFuture() time.Time {
	return time.Now().Add(time.Hour)
}
