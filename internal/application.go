package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/config"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/game"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/repository"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-trainer/transport/rest"
)

// RunApp - serves the tictactoe controller until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(log)
	defer cancel()

	gameManager, closeStorage, err := newGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	handlers := rest.NewGameHandlers(logger, gameManager, conf.Game.TrainingGames)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, logger, conf.HTTPPort, rest.NewRouter(handlers)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	if err = gameManager.SaveKnowledge(context.Background()); err != nil {
		log.Error("could not save knowledge", "error", err)
	}

	return nil
}

// RunTraining - plays games against itself and stores what was learned.
func RunTraining(logger *slog.Logger, conf *config.Config, games int) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(log)
	defer cancel()

	gameManager, closeStorage, err := newGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	played, err := gameManager.Train(ctx, games)
	if err != nil {
		return fmt.Errorf("training stopped after %d games: %w", played, err)
	}

	stats, err := gameManager.Stats(ctx)
	if err != nil {
		return fmt.Errorf("could not read stats: %w", err)
	}

	log.Info("training complete", "games", played, "nodes", stats.Nodes, "root_status", stats.RootStatus)

	return nil
}

func newGameManager(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.GameManager, func(), error) {
	log := logger.With("component", "app")

	settings := usecase.Settings{
		BoardSize: game.BoardSize(conf.Game.BoardSize),
		Regime:    game.Regime(conf.Game.Regime),
		Seed:      conf.Game.Seed,
	}

	if _, err := settings.BoardSize.Side(); err != nil {
		return nil, nil, err
	}

	if err := settings.Regime.Validate(); err != nil {
		return nil, nil, err
	}

	if !conf.Redis.Enabled {
		log.Info("redis is disabled, knowledge is kept in memory")
		return usecase.NewGameManager(logger, nil, settings), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	knowledgeRepo := repository.NewKnowledgeRepository(redisStorage, conf.Redis.KeyPrefix)

	return usecase.NewGameManager(logger, knowledgeRepo, settings), closeStorage, nil
}

func withSignals(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
