package engine

// WinScore is the magnitude of a completed five, both in the pattern table
// and as the exact value of a winning search branch.
const WinScore = 100000

// Pattern values by run length and blocked ends. A run with both ends
// blocked scores nothing unless it is a single stone or a five.
const (
	scoreFive        = WinScore
	scoreOpenFour    = 10000
	scoreClosedFour  = 1000
	scoreOpenThree   = 1000
	scoreClosedThree = 100
	scoreOpenTwo     = 100
	scoreClosedTwo   = 10
	scoreSingle      = 1
)

// ScoreStone scores a stone of player at (row, col) over the four axes,
// positive for White and negative for Black. The cell does not need to hold
// the stone yet. With winPriority a winning placement short-circuits to
// +-WinScore.
func ScoreStone(board Board, row, col int, player Player, winPriority bool) int {
	sign := 1
	if player == PlayerBlack {
		sign = -1
	}
	if winPriority && IsWinningMove(board, row, col, player) {
		return sign * WinScore
	}

	target := CellFromPlayer(player)
	score := 0
	for i := 0; i < 4; i++ {
		dr := directions[i][0]
		dc := directions[i][1]
		count := 1
		blocked := 0
		n, stopped := scanRun(board, row, col, dr, dc, target)
		count += n
		blocked += stopped
		n, stopped = scanRun(board, row, col, -dr, -dc, target)
		count += n
		blocked += stopped
		score += sign * patternValue(count, blocked)
	}
	return score
}

// ScoreBoard sums ScoreStone over every occupied cell. Runs are counted once
// per member stone; there is no line inventory.
func ScoreBoard(board Board, winPriority bool) int {
	total := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cell := board.At(row, col)
			if cell == CellEmpty {
				continue
			}
			player, _ := PlayerFromCell(cell)
			total += ScoreStone(board, row, col, player, winPriority)
		}
	}
	return total
}

// scanRun counts same-colored stones from (row, col) along (dr, dc), up to
// lineReach cells. It reports 1 when the run is stopped by an opposing
// stone or the edge and 0 when it runs into an empty cell or out of reach.
func scanRun(board Board, row, col, dr, dc int, target Cell) (int, int) {
	count := 0
	for step := 1; step <= lineReach; step++ {
		r := row + dr*step
		c := col + dc*step
		if !InBounds(r, c) {
			return count, 1
		}
		cell := board.At(r, c)
		if cell == target {
			count++
			continue
		}
		if cell != CellEmpty {
			return count, 1
		}
		return count, 0
	}
	return count, 0
}

func patternValue(count, blocked int) int {
	switch {
	case count >= 5:
		return scoreFive
	case count == 4:
		return openOrClosed(blocked, scoreOpenFour, scoreClosedFour)
	case count == 3:
		return openOrClosed(blocked, scoreOpenThree, scoreClosedThree)
	case count == 2:
		return openOrClosed(blocked, scoreOpenTwo, scoreClosedTwo)
	default:
		return scoreSingle
	}
}

func openOrClosed(blocked, open, closed int) int {
	switch blocked {
	case 0:
		return open
	case 1:
		return closed
	default:
		return 0
	}
}
