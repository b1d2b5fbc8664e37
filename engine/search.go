package engine

import (
	"math"
	"time"
)

// Infinity bounds the alpha-beta window. Real scores stay far inside it.
const Infinity = math.MaxInt32

type searchContext struct {
	engine   *Engine
	deadline time.Time
	stats    *SearchStats
}

// SearchValue is depth- and deadline-bounded minimax with alpha-beta
// pruning. The maximizing side is White. Leaves and deadline cutoffs return
// the cached static score; a placement that wins returns +-WinScore without
// searching further.
func (e *Engine) SearchValue(board Board, depth, alpha, beta int, maximizing bool, deadline time.Time) int {
	ctx := searchContext{engine: e, deadline: deadline, stats: &SearchStats{}}
	return ctx.search(board, depth, alpha, beta, maximizing)
}

func (ctx *searchContext) expired() bool {
	if !ctx.engine.now().Before(ctx.deadline) {
		ctx.stats.TimedOut = true
		return true
	}
	return false
}

func (ctx *searchContext) search(board Board, depth, alpha, beta int, maximizing bool) int {
	ctx.stats.Nodes++
	if depth == 0 || ctx.expired() {
		ctx.stats.Leaves++
		return ctx.engine.evaluate(board, ctx.stats)
	}

	candidates := RelevantEmptyCells(board)
	player := PlayerBlack
	best := Infinity
	if maximizing {
		player = PlayerWhite
		best = -Infinity
	}
	expanded := false
	for _, move := range candidates {
		if ctx.expired() {
			break
		}
		next := board.Place(move, player)
		if IsWinningMove(next, move.Row, move.Col, player) {
			if maximizing {
				return WinScore
			}
			return -WinScore
		}
		value := ctx.search(next, depth-1, alpha, beta, !maximizing)
		expanded = true
		if maximizing {
			if value > best {
				best = value
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if value < best {
				best = value
			}
			if value < beta {
				beta = value
			}
		}
		if beta <= alpha {
			ctx.stats.Cutoffs++
			break
		}
	}
	if !expanded {
		// Full board, or the deadline hit before the first child.
		ctx.stats.Leaves++
		return ctx.engine.evaluate(board, ctx.stats)
	}
	return best
}
