package game

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"gomoku/engine"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.999 }
func (fixedRand) Intn(int) int     { return 0 }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testSettings() Settings {
	settings := DefaultSettings()
	settings.Difficulty = engine.Easy
	settings.ThinkDelay = ThinkDelays{}
	return settings
}

func newTestGame(t *testing.T, settings Settings) (*Game, *fakeClock) {
	t.Helper()
	eng := engine.New(engine.Settings{Rand: fixedRand{}})
	g := NewGame(settings, eng, zerolog.Nop())
	clock := newFakeClock()
	g.now = clock.Now
	g.startTurn()
	return g, clock
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %s within 5s", what)
}

func hasNotice(notices []Notice, level NoticeLevel) bool {
	for _, n := range notices {
		if n.Level == level {
			return true
		}
	}
	return false
}
