package game

import (
	"sync"

	"github.com/rs/zerolog"

	"gomoku/engine"
)

// Controller serializes access to a Game for the server loop and request
// handlers.
type Controller struct {
	mu   sync.Mutex
	game *Game
}

func NewController(settings Settings, eng *engine.Engine, logger zerolog.Logger) *Controller {
	return &Controller{game: NewGame(settings, eng, logger)}
}

func (gc *Controller) ApplyHumanMove(move engine.Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ApplyHumanMove(move)
}

func (gc *Controller) SubmitHumanMove(move engine.Move) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *Controller) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *Controller) State() State {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *Controller) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *Controller) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.history.Last()
}

func (gc *Controller) Restart() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Restart()
}

func (gc *Controller) SetDifficulty(difficulty engine.Difficulty) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SetDifficulty(difficulty)
}

func (gc *Controller) DrainNotices() []Notice {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.DrainNotices()
}

func (gc *Controller) Settings() Settings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *Controller) Engine() *engine.Engine {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Engine()
}
