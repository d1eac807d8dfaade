package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/tree"
)

// Game - plays moves on a board and records every position it reaches in a tree.
// The tree outlives single games, so the same Game keeps learning from one game to the next.
type Game struct {
	size   BoardSize
	regime Regime

	board *entity.Board
	tree  *tree.Tree
	turn  string
	rnd   *rand.Rand
}

type Option func(*Game)

// WithRand - sets the random source used to break ties between equally good moves.
func WithRand(rnd *rand.Rand) Option {
	return func(that *Game) {
		that.rnd = rnd
	}
}

// WithTree - continues from previously learned knowledge.
func WithTree(knowledge *tree.Tree) Option {
	return func(that *Game) {
		that.tree = knowledge
	}
}

func New(size BoardSize, regime Regime, opts ...Option) (*Game, error) {
	side, err := size.Side()
	if err != nil {
		return nil, err
	}

	if err = regime.Validate(); err != nil {
		return nil, err
	}

	that := &Game{
		size:   size,
		regime: regime,
		board:  entity.NewBoard(side),
		turn:   entity.PlayerX,
	}

	for _, opt := range opts {
		opt(that)
	}

	if that.rnd == nil {
		that.rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // move choice is not security sensitive
	}

	if that.tree == nil {
		if that.tree, err = tree.New(that.board.Size()); err != nil {
			return nil, fmt.Errorf("failed to create tree: %w", err)
		}
	}

	if that.tree.Root().Capacity != that.board.Size() {
		return nil, fmt.Errorf("%w: tree root capacity %d does not fit board of %d cells",
			apperror.ErrUnknownBoardSize, that.tree.Root().Capacity, that.board.Size())
	}

	that.tree.MoveToRoot()

	return that, nil
}

func (that *Game) Size() BoardSize {
	return that.size
}

func (that *Game) Regime() Regime {
	return that.regime
}

func (that *Game) Tree() *tree.Tree {
	return that.tree
}

func (that *Game) Turn() string {
	return that.turn
}

// Cells - copy of the board cells.
func (that *Game) Cells() []string {
	return append([]string(nil), that.board.Cells...)
}

// Status - WIN when the last move completed a line, DRAW when the board is full, CONTINUE otherwise.
func (that *Game) Status() Status {
	if that.board.Winner() != entity.EmptyCell {
		return StatusWin
	}

	if that.board.IsFull() {
		return StatusDraw
	}

	return StatusContinue
}

// MakeMoveAt - puts figure on position and moves the tree cursor to the matching node.
func (that *Game) MakeMoveAt(figure string, position int) error {
	if err := that.validateTurn(figure); err != nil {
		return err
	}

	if err := that.board.Place(figure, position); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if err := that.descend(position); err != nil {
		that.board.Cells[position] = entity.EmptyCell
		return err
	}

	that.turn = entity.ToggleMark(figure)

	return nil
}

// MakeMove - lets the computer choose a position for figure according to the game regime.
func (that *Game) MakeMove(figure string) (int, error) {
	if err := that.validateTurn(figure); err != nil {
		return 0, err
	}

	position := that.choosePosition()

	if err := that.MakeMoveAt(figure, position); err != nil {
		return 0, err
	}

	return position, nil
}

// GameOver - records the outcome in the tree and prepares the board for the next game.
func (that *Game) GameOver(status Status) error {
	var outcome tree.Status

	switch status {
	case StatusWin:
		outcome = tree.StatusWin
	case StatusDraw:
		outcome = tree.StatusDraw
	default:
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotOver, status)
	}

	if actual := that.Status(); status != actual {
		return fmt.Errorf("%w: board is %s, got %s", apperror.ErrGameNotOver, actual, status)
	}

	if node := that.tree.CurrentNode(); node.Status == tree.StatusUnknown {
		node.Status = outcome
	}

	if err := that.tree.UpdateTreeStatus(); err != nil {
		return fmt.Errorf("failed to update tree status: %w", err)
	}

	that.Reset()

	return nil
}

// Reset - starts a new game on the same tree.
func (that *Game) Reset() {
	that.board.Clear()
	that.turn = entity.PlayerX
	that.tree.MoveToRoot()
}

func (that *Game) validateTurn(figure string) error {
	if that.Status() != StatusContinue {
		return apperror.ErrGameFinished
	}

	if figure != that.turn {
		return fmt.Errorf("%w: expected %s", apperror.ErrNotYourTurn, that.turn)
	}

	return nil
}

func (that *Game) descend(position int) error {
	if id, ok := that.tree.FindChildNodeWithGivenPosition(position); ok {
		if err := that.tree.MoveToChild(id); err != nil {
			return fmt.Errorf("failed to move to position %d: %w", position, err)
		}

		return nil
	}

	if err := that.tree.AddNode(position); err != nil {
		return fmt.Errorf("failed to record position %d: %w", position, err)
	}

	return nil
}
