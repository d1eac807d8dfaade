package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/game"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/tree"
)

type knowledgeRepo interface {
	CreateOrUpdate(ctx context.Context, boardSize string, snapshot *tree.Snapshot) error
	GetByBoardSize(ctx context.Context, boardSize string) (*tree.Snapshot, error)
}

type Settings struct {
	BoardSize game.BoardSize
	Regime    game.Regime
	Seed      int64 // 0 picks a time based seed
}

type MoveResult struct {
	Status   game.Status `json:"status"`
	Position int         `json:"position"`
}

type Stats struct {
	BoardSize  game.BoardSize `json:"board_size"`
	Regime     game.Regime    `json:"regime"`
	Nodes      int            `json:"nodes"`
	RootStatus tree.Status    `json:"root_status"`
}

// GameManager - the single game session shared by every caller.
type GameManager struct {
	logger        *slog.Logger
	knowledgeRepo knowledgeRepo
	settings      Settings

	mu   sync.Mutex
	game *game.Game
}

// NewGameManager - knowledgeRepo may be nil, then the learned tree lives only in memory.
func NewGameManager(logger *slog.Logger, knowledgeRepo knowledgeRepo, settings Settings) *GameManager {
	return &GameManager{
		logger:        logger.With("component", "game_manager"),
		knowledgeRepo: knowledgeRepo,
		settings:      settings,
	}
}

// StartNewGame - abandons the game in progress and starts a new one on the learned tree.
func (that *GameManager) StartNewGame(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureGame(ctx); err != nil {
		return err
	}

	that.game.Reset()
	that.logger.Info("new game started")

	return nil
}

func (that *GameManager) MakeMoveAt(ctx context.Context, figure string, position int) (*MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureGame(ctx); err != nil {
		return nil, err
	}

	if err := that.game.MakeMoveAt(figure, position); err != nil {
		return nil, fmt.Errorf("failed make move: %w", err)
	}

	that.logger.Info("new move is made", "figure", figure, "position", position)

	return that.finishMove(position)
}

// MakeMove - the computer plays figure.
func (that *GameManager) MakeMove(ctx context.Context, figure string) (*MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureGame(ctx); err != nil {
		return nil, err
	}

	position, err := that.game.MakeMove(figure)
	if err != nil {
		return nil, fmt.Errorf("failed make move: %w", err)
	}

	that.logger.Info("new move is made", "figure", figure, "position", position)

	return that.finishMove(position)
}

// Train - plays games against itself until the requested number of games is finished.
// The game in progress is abandoned. Returns the number of finished games.
func (that *GameManager) Train(ctx context.Context, games int) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Train")

	if err := that.ensureGame(ctx); err != nil {
		return 0, err
	}

	that.game.Reset()
	log.Info("learning regime", "games", games)

	started := time.Now()

	played := 0
	for played < games {
		if err := ctx.Err(); err != nil {
			log.Warn("training interrupted", "played", played)
			return played, fmt.Errorf("training interrupted: %w", err)
		}

		if err := that.playSelf(); err != nil {
			return played, fmt.Errorf("failed to play game %d: %w", played+1, err)
		}

		played++
	}

	log.Info("learning finished", "played", played, "nodes", that.game.Tree().Size(),
		"root_status", that.game.Tree().Root().Status, "duration", time.Since(started))

	if err := that.saveKnowledge(ctx); err != nil {
		return played, err
	}

	return played, nil
}

// SaveKnowledge - stores the learned tree when a repository is configured.
func (that *GameManager) SaveKnowledge(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.saveKnowledge(ctx)
}

func (that *GameManager) Stats(ctx context.Context) (*Stats, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureGame(ctx); err != nil {
		return nil, err
	}

	return &Stats{
		BoardSize:  that.game.Size(),
		Regime:     that.game.Regime(),
		Nodes:      that.game.Tree().Size(),
		RootStatus: that.game.Tree().Root().Status,
	}, nil
}

func (that *GameManager) playSelf() error {
	figure := entity.PlayerX

	for that.game.Status() == game.StatusContinue {
		if _, err := that.game.MakeMove(figure); err != nil {
			return fmt.Errorf("failed make move: %w", err)
		}

		figure = entity.ToggleMark(figure)
	}

	if err := that.game.GameOver(that.game.Status()); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}

	return nil
}

func (that *GameManager) finishMove(position int) (*MoveResult, error) {
	status := that.game.Status()

	if status != game.StatusContinue {
		if err := that.game.GameOver(status); err != nil {
			return nil, fmt.Errorf("failed to finish game: %w", err)
		}

		that.logger.Info("game is over", "status", status)
	}

	return &MoveResult{Status: status, Position: position}, nil
}

func (that *GameManager) ensureGame(ctx context.Context) error {
	if that.game != nil {
		return nil
	}

	seed := that.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []game.Option{
		game.WithRand(rand.New(rand.NewSource(seed))), //nolint: gosec // move choice is not security sensitive
	}

	knowledge, err := that.loadKnowledge(ctx)
	if err != nil {
		return err
	}

	if knowledge != nil {
		opts = append(opts, game.WithTree(knowledge))
	}

	newGame, err := game.New(that.settings.BoardSize, that.settings.Regime, opts...)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.game = newGame

	return nil
}

func (that *GameManager) loadKnowledge(ctx context.Context) (*tree.Tree, error) {
	log := that.logger.With("method", "loadKnowledge")

	if that.knowledgeRepo == nil {
		return nil, nil
	}

	snapshot, err := that.knowledgeRepo.GetByBoardSize(ctx, string(that.settings.BoardSize))
	if errors.Is(err, apperror.ErrKnowledgeNotFound) {
		log.Info("no stored knowledge, starting from scratch")
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}

	knowledge, err := tree.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore knowledge: %w", err)
	}

	log.Info("knowledge loaded", "nodes", knowledge.Size())

	return knowledge, nil
}

func (that *GameManager) saveKnowledge(ctx context.Context) error {
	if that.knowledgeRepo == nil || that.game == nil {
		return nil
	}

	snapshot := that.game.Tree().Snapshot()
	if err := that.knowledgeRepo.CreateOrUpdate(ctx, string(that.game.Size()), snapshot); err != nil {
		return fmt.Errorf("failed to save knowledge: %w", err)
	}

	that.logger.Info("knowledge saved", "nodes", len(snapshot.Nodes))

	return nil
}
