package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gomoku/engine"
)

var (
	ErrNotRunning   = errors.New("game not running")
	ErrNotHumanTurn = errors.New("not human turn")
	ErrOutOfBounds  = errors.New("move out of bounds")
	ErrOccupied     = errors.New("cell occupied")
)

// Game is one human-versus-engine session on a single board. It is not
// safe for concurrent use; wrap it in a Controller.
type Game struct {
	id          string
	settings    Settings
	board       engine.Board
	toMove      engine.Player
	status      Status
	winReason   WinReason
	winningLine []engine.Move
	hasLastMove bool
	lastMove    engine.Move
	history     MoveHistory
	human       *HumanPlayer
	ai          *AIPlayer
	generation  uint64
	turnStart   time.Time
	warned      bool
	notices     []Notice
	now         func() time.Time
	log         zerolog.Logger
}

func NewGame(settings Settings, eng *engine.Engine, logger zerolog.Logger) *Game {
	if eng == nil {
		eng = engine.New(engine.Settings{Logger: logger})
	}
	g := &Game{
		settings: settings.normalized(),
		human:    NewHumanPlayer(),
		ai:       NewAIPlayer(eng),
		now:      time.Now,
		log:      logger,
	}
	g.reset()
	return g
}

// Restart abandons the current game and starts a fresh one with the same
// settings. An engine move still being computed is discarded.
func (g *Game) Restart() {
	g.reset()
	g.pushNotice(NoticeInfo, "Game restarted.")
}

// SetDifficulty switches the engine tier and restarts the game.
func (g *Game) SetDifficulty(difficulty engine.Difficulty) error {
	if _, err := engine.ParseDifficulty(difficulty.String()); err != nil {
		return err
	}
	g.settings.Difficulty = difficulty
	g.reset()
	g.pushNotice(NoticeInfo, fmt.Sprintf("Difficulty set to %s.", difficulty))
	return nil
}

func (g *Game) reset() {
	g.ai.StopThinking()
	g.human.Clear()
	g.generation++
	g.id = uuid.NewString()
	g.board = engine.Board{}
	g.toMove = HumanSide
	g.status = StatusRunning
	g.winReason = ""
	g.winningLine = nil
	g.hasLastMove = false
	g.lastMove = engine.Move{Row: -1, Col: -1}
	g.history.Clear()
	g.startTurn()
	g.log.Info().
		Str("game", g.id).
		Str("difficulty", g.settings.Difficulty.String()).
		Msg("game-started")
}

// ApplyHumanMove plays move for the human immediately.
func (g *Game) ApplyHumanMove(move engine.Move) error {
	if err := g.checkHumanMove(move); err != nil {
		return err
	}
	g.applyMove(move, HumanSide, nil)
	return nil
}

// SubmitHumanMove queues move for the next Tick after the same checks
// ApplyHumanMove makes.
func (g *Game) SubmitHumanMove(move engine.Move) error {
	if err := g.checkHumanMove(move); err != nil {
		return err
	}
	g.human.SetPendingMove(move)
	return nil
}

func (g *Game) checkHumanMove(move engine.Move) error {
	if g.status != StatusRunning {
		return ErrNotRunning
	}
	if g.toMove != HumanSide {
		return ErrNotHumanTurn
	}
	if !move.IsValid() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, move)
	}
	if !g.board.IsEmpty(move.Row, move.Col) {
		return fmt.Errorf("%w: %s", ErrOccupied, move)
	}
	return nil
}

// Tick advances the session: the turn clock, a queued human move, and the
// engine's asynchronous decision. It reports whether anything a presenter
// shows has changed.
func (g *Game) Tick() bool {
	if g.status != StatusRunning {
		return false
	}
	elapsed := g.now().Sub(g.turnStart)
	if elapsed >= g.settings.TurnLimit {
		g.timeout()
		return true
	}
	changed := false
	if !g.warned && g.settings.WarnRemaining > 0 && g.settings.TurnLimit-elapsed <= g.settings.WarnRemaining {
		g.warned = true
		if g.toMove == HumanSide {
			g.pushNotice(NoticeWarn, "Your time is running out!")
		} else {
			g.pushNotice(NoticeWarn, "The engine is running out of time.")
		}
		changed = true
	}

	if g.toMove == HumanSide {
		if !g.human.HasPendingMove() {
			return changed
		}
		move := g.human.TakePendingMove()
		if err := g.ApplyHumanMove(move); err != nil {
			g.log.Warn().Err(err).Str("game", g.id).Msg("pending-move-rejected")
			return changed
		}
		return true
	}

	if g.ai.HasMoveReady() {
		decision, found, generation := g.ai.TakeMove()
		if generation != g.generation {
			g.log.Debug().Uint64("generation", generation).Msg("stale-engine-move-dropped")
			return changed
		}
		if !found {
			g.finish(StatusDraw, "", nil)
			g.pushNotice(NoticeInfo, "Draw. The board is full.")
			return true
		}
		g.applyMove(decision.Move, EngineSide, &decision)
		return true
	}
	if !g.ai.IsThinking() {
		g.ai.StartThinking(g.board, g.settings.Difficulty, g.settings.ThinkDelay.For(g.settings.Difficulty), g.generation)
		return true
	}
	return changed
}

func (g *Game) applyMove(move engine.Move, player engine.Player, decision *engine.Decision) {
	elapsed := g.now().Sub(g.turnStart)
	g.board.Set(move.Row, move.Col, engine.CellFromPlayer(player))
	g.lastMove = move
	g.hasLastMove = true
	entry := HistoryEntry{
		Move:      move,
		Player:    player,
		ElapsedMs: elapsed.Milliseconds(),
		IsEngine:  player == EngineSide,
	}
	event := g.log.Info().
		Str("game", g.id).
		Stringer("player", player).
		Stringer("move", move).
		Dur("elapsed", elapsed)
	if decision != nil {
		entry.Reason = decision.Reason
		event = event.Str("reason", string(decision.Reason)).Int("score", decision.Score)
	}
	g.history.Push(entry)
	event.Msg("move-played")

	if engine.IsWinningMove(g.board, move.Row, move.Col, player) {
		line, _ := engine.WinningLine(g.board, move)
		g.finish(statusWonBy(player), WinFive, line)
		if player == HumanSide {
			g.pushNotice(NoticeSuccess, "Five in a row. You win!")
		} else {
			g.pushNotice(NoticeError, "The engine wins.")
		}
		return
	}
	if g.board.IsFull() {
		g.finish(StatusDraw, "", nil)
		g.pushNotice(NoticeInfo, "Draw. The board is full.")
		return
	}
	g.toMove = player.Other()
	g.startTurn()
}

func (g *Game) timeout() {
	loser := g.toMove
	g.finish(statusWonBy(loser.Other()), WinTimeout, nil)
	if loser == HumanSide {
		g.pushNotice(NoticeError, "Your time is up. The engine wins.")
	} else {
		g.pushNotice(NoticeSuccess, "The engine ran out of time. You win!")
	}
}

func (g *Game) finish(status Status, reason WinReason, line []engine.Move) {
	g.ai.StopThinking()
	g.human.Clear()
	g.status = status
	g.winReason = reason
	g.winningLine = line
	g.log.Info().
		Str("game", g.id).
		Str("status", string(status)).
		Str("reason", string(reason)).
		Int("moves", g.history.Size()).
		Msg("game-finished")
}

func (g *Game) startTurn() {
	g.turnStart = g.now()
	g.warned = false
}

func (g *Game) pushNotice(level NoticeLevel, text string) {
	g.notices = append(g.notices, Notice{Level: level, Text: text})
}

// DrainNotices returns and forgets the notices queued since the last call.
func (g *Game) DrainNotices() []Notice {
	out := g.notices
	g.notices = nil
	return out
}

func (g *Game) State() State {
	remaining := time.Duration(0)
	if g.status == StatusRunning {
		remaining = g.settings.TurnLimit - g.now().Sub(g.turnStart)
		if remaining < 0 {
			remaining = 0
		}
	}
	state := State{
		ID:              g.id,
		Board:           g.board,
		ToMove:          g.toMove,
		Status:          g.status,
		WinReason:       g.winReason,
		WinningLine:     g.winningLine,
		HasLastMove:     g.hasLastMove,
		LastMove:        g.lastMove,
		Difficulty:      g.settings.Difficulty,
		MoveCount:       g.history.Size(),
		TurnRemaining:   remaining,
		TurnRemainingMs: remaining.Milliseconds(),
		EngineThinking:  g.status == StatusRunning && g.toMove == EngineSide && g.ai.IsThinking(),
	}
	return state.Clone()
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Engine() *engine.Engine {
	return g.ai.Engine()
}
