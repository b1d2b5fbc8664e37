package engine

// candidateRadius is the half-width of the square window around existing
// stones in which empty cells are worth considering.
const candidateRadius = 4

// RelevantEmptyCells lists the empty cells within candidateRadius (Chebyshev
// distance) of any stone, in row-major order. An empty board yields only the
// center; if no cell qualifies every empty cell is returned.
func RelevantEmptyCells(board Board) []Move {
	if board.IsEmptyBoard() {
		return []Move{{Row: BoardSize / 2, Col: BoardSize / 2}}
	}

	var near [BoardSize * BoardSize]bool
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if board.At(row, col) == CellEmpty {
				continue
			}
			markWindow(&near, row, col)
		}
	}

	moves := make([]Move, 0, 64)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if board.At(row, col) == CellEmpty && near[row*BoardSize+col] {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	if len(moves) > 0 {
		return moves
	}
	return allEmptyCells(board)
}

func markWindow(near *[BoardSize * BoardSize]bool, row, col int) {
	for r := row - candidateRadius; r <= row+candidateRadius; r++ {
		if r < 0 || r >= BoardSize {
			continue
		}
		for c := col - candidateRadius; c <= col+candidateRadius; c++ {
			if c < 0 || c >= BoardSize {
				continue
			}
			near[r*BoardSize+c] = true
		}
	}
}

func allEmptyCells(board Board) []Move {
	moves := []Move{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if board.At(row, col) == CellEmpty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}
