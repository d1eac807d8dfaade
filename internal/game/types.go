package game

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
)

type BoardSize string

const (
	BoardSmall  BoardSize = "small"
	BoardMedium BoardSize = "medium"
	BoardLarge  BoardSize = "large"
)

// Side - number of cells in a row.
func (that BoardSize) Side() (int, error) {
	switch that {
	case BoardSmall:
		return 3, nil
	case BoardMedium:
		return 4, nil
	case BoardLarge:
		return 5, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownBoardSize, string(that))
	}
}

// Regime - how the computer chooses its moves.
type Regime string

const (
	RegimeBattle   Regime = "battle"
	RegimeTraining Regime = "training"
)

func (that Regime) Validate() error {
	switch that {
	case RegimeBattle, RegimeTraining:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownRegime, string(that))
	}
}

type Status string

const (
	StatusWin      Status = "WIN"
	StatusDraw     Status = "DRAW"
	StatusContinue Status = "CONTINUE"
)
