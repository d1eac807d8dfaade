package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// Board - square board of side*side cells. A line of side equal figures wins.
type Board struct {
	Side  int      `json:"side"`
	Cells []string `json:"cells"`

	lines [][]int
}

func NewBoard(side int) *Board {
	return &Board{
		Side:  side,
		Cells: make([]string, side*side),
		lines: winLines(side),
	}
}

// winLines - rows, columns and both diagonals of the board.
func winLines(side int) [][]int {
	lines := make([][]int, 0, 2*side+2)

	for row := 0; row < side; row++ {
		line := make([]int, 0, side)
		for col := 0; col < side; col++ {
			line = append(line, row*side+col)
		}
		lines = append(lines, line)
	}

	for col := 0; col < side; col++ {
		line := make([]int, 0, side)
		for row := 0; row < side; row++ {
			line = append(line, row*side+col)
		}
		lines = append(lines, line)
	}

	main, anti := make([]int, 0, side), make([]int, 0, side)
	for i := 0; i < side; i++ {
		main = append(main, i*side+i)
		anti = append(anti, i*side+side-1-i)
	}

	return append(lines, main, anti)
}

func (that *Board) Size() int {
	return len(that.Cells)
}

func (that *Board) Place(mark string, cell int) error {
	if cell < 0 || cell >= len(that.Cells) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Cells[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Cells[cell] = mark

	return nil
}

// Winner - returns the mark that completed a line or EmptyCell.
func (that *Board) Winner() string {
	for _, line := range that.lines {
		first := that.Cells[line[0]]
		if first == EmptyCell {
			continue
		}

		won := true
		for _, cell := range line[1:] {
			if that.Cells[cell] != first {
				won = false
				break
			}
		}

		if won {
			return first
		}
	}

	return EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// FreeCells - indices of empty cells in ascending order.
func (that *Board) FreeCells() []int {
	free := make([]int, 0, len(that.Cells))
	for i, cell := range that.Cells {
		if cell == EmptyCell {
			free = append(free, i)
		}
	}

	return free
}

func (that *Board) Clear() {
	for i := range that.Cells {
		that.Cells[i] = EmptyCell
	}
}

// ParseFigure - "O" and "o" are O, anything else is X.
func ParseFigure(figure string) string {
	if figure == "O" || figure == "o" {
		return PlayerO
	}

	return PlayerX
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
