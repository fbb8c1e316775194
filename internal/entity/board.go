package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

const (
	MarkO Mark = "O"
	MarkX Mark = "X"
)

const (
	EmptyCell Cell = iota
	CellO
	CellX
)

// Mark is a player identity token.
type Mark string

// Next returns the mark that moves after that.
func (that Mark) Next() Mark {
	if that == MarkO {
		return MarkX
	}
	return MarkO
}

// Cell returns the cell code written when that mark is placed.
func (that Mark) Cell() Cell {
	if that == MarkO {
		return CellO
	}
	return CellX
}

func (that Mark) IsValid() bool {
	return that == MarkO || that == MarkX
}

func (that Mark) String() string {
	return string(that)
}

// Cell is the content of a single board square.
type Cell uint8

// Token - returns the display character of the cell.
func (that Cell) Token() rune {
	switch that {
	case CellO:
		return 'O'
	case CellX:
		return 'X'
	default:
		return ' '
	}
}

// Board holds nine cells addressed as row*3+col.
type Board [BoardSize]Cell

// CellAt - returns the content of the cell at index.
func (that Board) CellAt(index int) (Cell, error) {
	if index < 0 || index >= BoardSize {
		return EmptyCell, fmt.Errorf("%w: cell %d", apperror.ErrInvalidAction, index)
	}

	return that[index], nil
}

// Place - writes the mark into an empty cell. The board is left untouched on error.
func (that *Board) Place(index int, mark Mark) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidAction, index)
	}

	if that[index] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrIllegalMove, index)
	}

	that[index] = mark.Cell()

	return nil
}

// EmptyIndices - returns the indices of empty cells in ascending order.
func (that Board) EmptyIndices() []int {
	indices := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			indices = append(indices, i)
		}
	}

	return indices
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
