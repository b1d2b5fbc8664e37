package engine

import (
	"errors"
	"fmt"
)

// BoardSize is the edge length of the square board.
const BoardSize = 15

var ErrInvalidBoard = errors.New("invalid board")

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Player is one of the two sides. Black is the human and moves first,
// White is the engine.
type Player int

const (
	PlayerBlack Player = iota
	PlayerWhite
)

// Board is a row-major grid of cells. It is a value type: assigning a Board
// copies every cell, so search branches never alias each other.
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) IsValid() bool {
	return InBounds(m.Row, m.Col)
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < BoardSize && col < BoardSize
}

// NewBoardFromRows converts the external 0/1/2 encoding (empty/black/white)
// into a Board. Anything that is not a BoardSize x BoardSize grid of those
// three values is rejected.
func NewBoardFromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != BoardSize {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, BoardSize, len(rows))
	}
	for row, values := range rows {
		if len(values) != BoardSize {
			return b, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, row, len(values), BoardSize)
		}
		for col, value := range values {
			cell, err := cellFromInt(value)
			if err != nil {
				return b, fmt.Errorf("%w: cell (%d,%d): %v", ErrInvalidBoard, row, col, err)
			}
			b.Set(row, col, cell)
		}
	}
	return b, nil
}

func (b Board) At(row, col int) Cell {
	return b.cells[row*BoardSize+col]
}

func (b *Board) Set(row, col int, value Cell) {
	b.cells[row*BoardSize+col] = value
}

func (b *Board) Remove(row, col int) {
	b.cells[row*BoardSize+col] = CellEmpty
}

func (b Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && b.At(row, col) == CellEmpty
}

// Place returns a copy of the board with the player's stone on move.
func (b Board) Place(move Move, player Player) Board {
	b.Set(move.Row, move.Col, CellFromPlayer(player))
	return b
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

func (b Board) IsEmptyBoard() bool {
	for _, cell := range b.cells {
		if cell != CellEmpty {
			return false
		}
	}
	return true
}

// Swapped exchanges black and white stones. Asking the engine for a move on
// the swapped board yields a move for Black.
func (b Board) Swapped() Board {
	for i, cell := range b.cells {
		switch cell {
		case CellBlack:
			b.cells[i] = CellWhite
		case CellWhite:
			b.cells[i] = CellBlack
		}
	}
	return b
}

// Key is the canonical encoding used by the position cache: one digit per
// cell in row-major order, 0 empty, 1 black, 2 white.
func (b Board) Key() string {
	var buf [BoardSize * BoardSize]byte
	for i, cell := range b.cells {
		buf[i] = '0' + byte(cell)
	}
	return string(buf[:])
}

// Rows is the inverse of NewBoardFromRows.
func (b Board) Rows() [][]int {
	rows := make([][]int, BoardSize)
	for row := 0; row < BoardSize; row++ {
		rows[row] = make([]int, BoardSize)
		for col := 0; col < BoardSize; col++ {
			rows[row][col] = int(b.At(row, col))
		}
	}
	return rows
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func (p Player) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Player) Other() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func CellFromPlayer(player Player) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (Player, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("empty cell has no player")
	}
}

func cellFromInt(value int) (Cell, error) {
	switch value {
	case 0:
		return CellEmpty, nil
	case 1:
		return CellBlack, nil
	case 2:
		return CellWhite, nil
	default:
		return CellEmpty, fmt.Errorf("unknown cell value %d", value)
	}
}
