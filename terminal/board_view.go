package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gomoku/engine"
	"gomoku/game"
)

const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleLine
	styleCursor
	styleLastPlayed
	styleWinning
)

// BoardView draws the 15x15 grid two columns per cell with a cursor.
type BoardView struct {
	*tview.Box
	theme   Theme
	styles  []tcell.Color
	state   game.State
	winning map[engine.Move]bool
	selRow  int
	selCol  int
}

func NewBoardView(theme Theme) *BoardView {
	view := &BoardView{
		Box:    tview.NewBox(),
		theme:  theme,
		selRow: engine.BoardSize / 2,
		selCol: engine.BoardSize / 2,
		styles: []tcell.Color{
			tcell.PaletteColor(theme.Colors.Board),
			tcell.PaletteColor(theme.Colors.Black),
			tcell.PaletteColor(theme.Colors.White),
			tcell.PaletteColor(theme.Colors.Line),
			tcell.PaletteColor(theme.Colors.CursorBG),
			tcell.PaletteColor(theme.Colors.LastPlayedBG),
			tcell.PaletteColor(theme.Colors.WinningBG),
		},
	}
	view.Box.SetDrawFunc(view.draw)
	return view
}

func (b *BoardView) SetState(state game.State) {
	b.state = state
	b.winning = make(map[engine.Move]bool, len(state.WinningLine))
	for _, move := range state.WinningLine {
		b.winning[move] = true
	}
}

func (b *BoardView) Selected() engine.Move {
	return engine.NewMove(b.selRow, b.selCol)
}

// MoveSelection shifts the cursor, stopping at the edges.
func (b *BoardView) MoveSelection(dRow, dCol int) {
	row, col := b.selRow+dRow, b.selCol+dCol
	if !engine.InBounds(row, col) {
		return
	}
	b.selRow, b.selCol = row, col
}

func (b *BoardView) cellStyle(row, col int) (rune, tcell.Style) {
	cell := b.state.Board.At(row, col)
	background := b.styles[styleBoard]
	move := engine.NewMove(row, col)
	switch {
	case row == b.selRow && col == b.selCol && b.theme.DrawCursorBackground:
		background = b.styles[styleCursor]
	case b.winning[move]:
		background = b.styles[styleWinning]
	case b.state.HasLastMove && b.state.LastMove == move:
		background = b.styles[styleLastPlayed]
	}
	style := tcell.StyleDefault.Background(background)
	switch cell {
	case engine.CellBlack:
		return b.theme.Symbols.BlackStone, style.Foreground(b.styles[styleBlack])
	case engine.CellWhite:
		return b.theme.Symbols.WhiteStone, style.Foreground(b.styles[styleWhite])
	default:
		return b.theme.Symbols.Empty, style.Foreground(b.styles[styleLine])
	}
}

func (b *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// Inside the border.
	x, y = x+1, y+1
	left := x + 3
	for col := 0; col < engine.BoardSize; col++ {
		screen.SetContent(left+col*2, y, rune('A'+col), nil, tcell.StyleDefault)
	}
	for row := 0; row < engine.BoardSize; row++ {
		label := row + 1
		if label >= 10 {
			screen.SetContent(x, y+1+row, rune('0'+label/10), nil, tcell.StyleDefault)
		}
		screen.SetContent(x+1, y+1+row, rune('0'+label%10), nil, tcell.StyleDefault)
		for col := 0; col < engine.BoardSize; col++ {
			symbol, style := b.cellStyle(row, col)
			screen.SetContent(left+col*2, y+1+row, symbol, nil, style)
			connector := '─'
			if col == engine.BoardSize-1 || b.state.Board.At(row, col) != engine.CellEmpty {
				connector = ' '
			}
			screen.SetContent(left+col*2+1, y+1+row, connector, nil, tcell.StyleDefault.Background(b.styles[styleBoard]).Foreground(b.styles[styleLine]))
		}
	}
	return x, y, engine.BoardSize*2 + 3, engine.BoardSize + 1
}
