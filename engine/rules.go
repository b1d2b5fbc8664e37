package engine

// winLength is the run that ends the game. Longer runs (overlines) also win.
const winLength = 5

// lineReach is how far the detector and the evaluator look along a direction
// from the tested cell.
const lineReach = 4

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// IsWinningMove reports whether a stone of player at (row, col) completes a
// run of five or more. The cell is treated as holding the player's stone
// whether or not it has been placed yet.
func IsWinningMove(board Board, row, col int, player Player) bool {
	target := CellFromPlayer(player)
	for i := 0; i < 4; i++ {
		dr := directions[i][0]
		dc := directions[i][1]
		count := 1
		count += countDirection(board, row, col, dr, dc, target)
		count += countDirection(board, row, col, -dr, -dc, target)
		if count >= winLength {
			return true
		}
	}
	return false
}

// WinningLine returns every stone of the run through move when it is a win.
func WinningLine(board Board, move Move) ([]Move, bool) {
	if !move.IsValid() || board.At(move.Row, move.Col) == CellEmpty {
		return nil, false
	}
	for i := 0; i < 4; i++ {
		line := collectLine(board, move, directions[i][0], directions[i][1])
		if len(line) >= winLength {
			return line, true
		}
	}
	return nil, false
}

func countDirection(board Board, row, col, dr, dc int, target Cell) int {
	count := 0
	for step := 1; step <= lineReach; step++ {
		r := row + dr*step
		c := col + dc*step
		if !InBounds(r, c) || board.At(r, c) != target {
			break
		}
		count++
	}
	return count
}

func collectLine(board Board, start Move, dr, dc int) []Move {
	line := []Move{}
	target := board.At(start.Row, start.Col)
	r := start.Row
	c := start.Col
	for InBounds(r-dr, c-dc) && board.At(r-dr, c-dc) == target {
		r -= dr
		c -= dc
	}
	for InBounds(r, c) && board.At(r, c) == target {
		line = append(line, Move{Row: r, Col: c})
		r += dr
		c += dc
	}
	return line
}
