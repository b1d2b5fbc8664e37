package engine

import "time"

// Reason tells how a decision was reached.
type Reason string

const (
	ReasonRandom    Reason = "random"
	ReasonHeuristic Reason = "heuristic"
	ReasonWin       Reason = "win"
	ReasonBlock     Reason = "block"
	ReasonSearch    Reason = "search"
	ReasonFallback  Reason = "fallback"
)

// Easy-tier blend of attack and defense scores, in tenths so ties can be
// compared exactly: 0.7*attack + 0.5*defense.
const (
	attackWeightTenths  = 7
	defenseWeightTenths = 5
)

// Decision is a chosen move plus how it was found.
type Decision struct {
	Move       Move          `json:"move"`
	Difficulty Difficulty    `json:"difficulty"`
	Reason     Reason        `json:"reason"`
	Score      int           `json:"score"`
	Candidates int           `json:"candidates"`
	Nodes      int           `json:"nodes"`
	TimedOut   bool          `json:"timed_out"`
	Elapsed    time.Duration `json:"elapsed"`
}

// ChooseMove returns the cell White should play, or false when the board
// has no empty cell.
func (e *Engine) ChooseMove(board Board, difficulty Difficulty) (Move, bool) {
	decision, ok := e.Decide(board, difficulty)
	return decision.Move, ok
}

// Decide applies the difficulty policy: an optional random move, then for
// Easy a one-ply attack/defense blend, and for the other tiers an immediate
// win, a forced block, or the best alpha-beta value within the tier's time
// budget. It returns false only when the board is full.
func (e *Engine) Decide(board Board, difficulty Difficulty) (Decision, bool) {
	stats := &SearchStats{Start: e.now()}
	candidates := RelevantEmptyCells(board)
	if len(candidates) == 0 {
		return Decision{Difficulty: difficulty}, false
	}
	profile := difficulty.Profile()
	decision := Decision{Difficulty: difficulty, Candidates: len(candidates)}

	switch {
	case profile.RandomMoveProbability > 0 && e.rng.Float64() < profile.RandomMoveProbability:
		decision.Move = candidates[e.rng.Intn(len(candidates))]
		decision.Reason = ReasonRandom
	case difficulty == Easy:
		decision.Move, decision.Score, decision.Reason = e.chooseHeuristic(board, candidates, profile)
	default:
		decision.Move, decision.Score, decision.Reason = e.chooseBySearch(board, candidates, profile, stats)
	}

	decision.Nodes = stats.Nodes
	decision.TimedOut = stats.TimedOut
	decision.Elapsed = e.now().Sub(stats.Start)
	if e.logSearchStats {
		e.logDecision(decision, stats)
	}
	return decision, true
}

func (e *Engine) chooseHeuristic(board Board, candidates []Move, profile DifficultyProfile) (Move, int, Reason) {
	best := 0
	var bestMoves []Move
	for _, move := range candidates {
		attack := ScoreStone(board, move.Row, move.Col, PlayerWhite, profile.WinPriority)
		if attack >= WinScore {
			return move, attack, ReasonWin
		}
		defense := ScoreStone(board, move.Row, move.Col, PlayerBlack, profile.WinPriority)
		blend := attackWeightTenths*attack + defenseWeightTenths*defense
		if len(bestMoves) == 0 || blend > best {
			best = blend
			bestMoves = append(bestMoves[:0], move)
			continue
		}
		if blend == best {
			bestMoves = append(bestMoves, move)
		}
	}
	return bestMoves[e.rng.Intn(len(bestMoves))], best / 10, ReasonHeuristic
}

func (e *Engine) chooseBySearch(board Board, candidates []Move, profile DifficultyProfile, stats *SearchStats) (Move, int, Reason) {
	for _, move := range candidates {
		if IsWinningMove(board, move.Row, move.Col, PlayerWhite) {
			return move, WinScore, ReasonWin
		}
	}
	if profile.WinPriority {
		for _, move := range candidates {
			if IsWinningMove(board, move.Row, move.Col, PlayerBlack) {
				return move, -WinScore, ReasonBlock
			}
		}
	}

	ctx := searchContext{
		engine:   e,
		deadline: stats.Start.Add(profile.TimeBudget),
		stats:    stats,
	}
	bestMove := candidates[0]
	bestScore := -Infinity
	scored := false
	for _, move := range candidates {
		if ctx.expired() {
			break
		}
		score := ctx.search(board.Place(move, PlayerWhite), profile.SearchDepth-1, -Infinity, Infinity, false)
		if !scored || score > bestScore {
			bestMove = move
			bestScore = score
			scored = true
		}
	}
	if !scored {
		return candidates[0], 0, ReasonFallback
	}
	return bestMove, bestScore, ReasonSearch
}

func (e *Engine) logDecision(decision Decision, stats *SearchStats) {
	hitRate := 0.0
	if stats.CacheProbes > 0 {
		hitRate = float64(stats.CacheHits) * 100.0 / float64(stats.CacheProbes)
	}
	e.log.Info().
		Str("difficulty", decision.Difficulty.String()).
		Str("reason", string(decision.Reason)).
		Stringer("move", decision.Move).
		Int("score", decision.Score).
		Int("candidates", decision.Candidates).
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("cutoffs", stats.Cutoffs).
		Float64("cache_hit_rate", hitRate).
		Int("cache_size", e.cache.Len()).
		Bool("timed_out", stats.TimedOut).
		Dur("elapsed", decision.Elapsed).
		Msg("engine-decision")
}
