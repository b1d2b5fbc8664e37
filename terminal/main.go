// Command terminal plays gomoku against the engine in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"gomoku/engine"
	"gomoku/game"
)

const refreshInterval = 100 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	difficulty, _ := engine.ParseDifficulty(cfg.Difficulty)
	settings := game.DefaultSettings()
	settings.Difficulty = difficulty
	eng := engine.New(engine.Settings{Logger: logger})
	controller := game.NewController(settings, eng, logger)

	app := tview.NewApplication()
	board := NewBoardView(cfg.Theme)
	board.SetBorder(true).SetTitle(" gomoku ")
	panel := tview.NewTextView().SetDynamicColors(true)
	panel.SetBorder(true).SetBorderPadding(0, 0, 1, 1).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)

	var lastNotice *game.Notice
	refresh := func() {
		state := controller.State()
		board.SetState(state)
		panel.SetText(panelText(state, lastNotice))
	}
	showError := func(err error) {
		lastNotice = &game.Notice{Level: game.NoticeError, Text: err.Error()}
	}

	board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			board.MoveSelection(-1, 0)
		case tcell.KeyDown:
			board.MoveSelection(1, 0)
		case tcell.KeyLeft:
			board.MoveSelection(0, -1)
		case tcell.KeyRight:
			board.MoveSelection(0, 1)
		case tcell.KeyEnter:
			if err := controller.SubmitHumanMove(board.Selected()); err != nil {
				showError(err)
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				board.MoveSelection(0, -1)
			case 'j':
				board.MoveSelection(1, 0)
			case 'k':
				board.MoveSelection(-1, 0)
			case 'l':
				board.MoveSelection(0, 1)
			case 'd':
				if err := controller.SetDifficulty(controller.Settings().Difficulty.Next()); err != nil {
					showError(err)
				}
			case 'r':
				controller.Restart()
			case 'q':
				app.Stop()
				return nil
			}
		}
		refresh()
		return nil
	})

	layout := tview.NewFlex().
		AddItem(board, engine.BoardSize*2+6, 0, true).
		AddItem(panel, 0, 1, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				controller.Tick()
				notices := controller.DrainNotices()
				app.QueueUpdateDraw(func() {
					if len(notices) > 0 {
						lastNotice = &notices[len(notices)-1]
					}
					refresh()
				})
			}
		}
	}()

	refresh()
	logger.Info().Str("difficulty", difficulty.String()).Msg("terminal-started")
	return app.SetRoot(layout, true).Run()
}

func buildLogger(cfg Config) (zerolog.Logger, func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return zerolog.Nop(), func() {}, nil
		}
		return zerolog.Nop(), func() {}, err
	}
	logger := zerolog.New(f).With().Timestamp().Str("component", "terminal").Logger()
	return logger, func() { _ = f.Close() }, nil
}
