// Package engine picks the computer's move on a 15x15 five-in-a-row board:
// candidate pruning, a per-stone pattern evaluator with a position cache,
// and a time-boxed alpha-beta search behind three difficulty tiers.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"
)

// Rand is the randomness the move selector consumes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Settings configures an Engine. Zero fields take defaults.
type Settings struct {
	Cache          *PositionCache
	Rand           Rand
	Now            func() time.Time
	Logger         zerolog.Logger
	LogSearchStats bool
}

// Engine owns the state that outlives a single decision: the position
// cache. One Engine can serve many games; Decide calls on the same Engine
// may run concurrently because the cache is locked.
type Engine struct {
	cache          *PositionCache
	rng            Rand
	now            func() time.Time
	log            zerolog.Logger
	logSearchStats bool
}

func New(settings Settings) *Engine {
	e := &Engine{
		cache:          settings.Cache,
		rng:            settings.Rand,
		now:            settings.Now,
		log:            settings.Logger,
		logSearchStats: settings.LogSearchStats,
	}
	if e.cache == nil {
		e.cache = NewPositionCache(CacheMaxSize)
	}
	if e.rng == nil {
		e.rng = frandSource{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

func (e *Engine) Cache() *PositionCache {
	return e.cache
}

// Evaluate is the cache-backed ScoreBoard used at search leaves. Cached
// values are always computed with win priority, the only mode that
// reaches the search.
func (e *Engine) Evaluate(board Board) int {
	return e.evaluate(board, nil)
}

func (e *Engine) evaluate(board Board, stats *SearchStats) int {
	key := board.Key()
	if stats != nil {
		stats.CacheProbes++
	}
	if score, ok := e.cache.Get(key); ok {
		if stats != nil {
			stats.CacheHits++
		}
		return score
	}
	score := ScoreBoard(board, true)
	e.cache.Put(key, score)
	return score
}

// SearchStats counts the work done for one decision.
type SearchStats struct {
	Start       time.Time
	Nodes       int
	Leaves      int
	Cutoffs     int
	CacheProbes int
	CacheHits   int
	TimedOut    bool
}

type frandSource struct{}

func (frandSource) Float64() float64 {
	return float64(frand.Uint64n(1<<53)) / (1 << 53)
}

func (frandSource) Intn(n int) int {
	return frand.Intn(n)
}
