package game

import (
	"sync"
	"sync/atomic"
	"time"

	"gomoku/engine"
)

// AIPlayer runs one engine decision at a time on a background goroutine.
// Each run is tagged with the game generation it was started for, so a
// result that lands after a restart can be recognised and dropped.
type AIPlayer struct {
	engine     *engine.Engine
	moveMutex  sync.Mutex
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stop       chan struct{}
	ready      engine.Decision
	readyFound bool
	readyGen   uint64
}

func NewAIPlayer(eng *engine.Engine) *AIPlayer {
	return &AIPlayer{engine: eng}
}

func (a *AIPlayer) Engine() *engine.Engine {
	return a.engine
}

// StartThinking schedules a decision for board after delay. It returns
// false when a previous run has not finished yet.
func (a *AIPlayer) StartThinking(board engine.Board, difficulty engine.Difficulty, delay time.Duration, generation uint64) bool {
	if !a.thinking.CompareAndSwap(false, true) {
		return false
	}
	a.moveReady.Store(false)
	stop := make(chan struct{})
	a.moveMutex.Lock()
	a.stop = stop
	a.moveMutex.Unlock()

	go func() {
		defer a.thinking.Store(false)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-stop:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		decision, found := a.engine.Decide(board, difficulty)
		a.moveMutex.Lock()
		a.ready = decision
		a.readyFound = found
		a.readyGen = generation
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
	}()
	return true
}

// StopThinking cancels a run that is still waiting out its delay. A run
// already inside the engine completes and its result is left stale.
func (a *AIPlayer) StopThinking() {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.moveReady.Store(false)
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

// TakeMove hands over the finished decision and the generation it was
// computed for.
func (a *AIPlayer) TakeMove() (engine.Decision, bool, uint64) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	a.stop = nil
	return a.ready, a.readyFound, a.readyGen
}
