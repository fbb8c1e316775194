package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-env/internal/config"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/render"
	"github.com/rocketscienceinc/tictactoe-env/internal/repository"
	"github.com/rocketscienceinc/tictactoe-env/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-env/internal/usecase"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrUnknownMode  = errors.New("unknown session mode")
)

// RunApp - runs the configured session on the console.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	controller, err := tictactoe.NewGameController(conf.Settings())
	if err != nil {
		return fmt.Errorf("could not create environment: %w", err)
	}
	controller.Seed(conf.Environment.Seed)

	transitionRepo, closeRepo, err := initTransitionRepo(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	movers, err := initMovers(conf.Session.Mode, controller)
	if err != nil {
		return err
	}

	runner := usecase.NewEpisodeRunner(logger, controller, render.NewConsole(os.Stdout), transitionRepo)

	log.Info("Starting session", "episodes", conf.Session.Episodes, "mode", conf.Session.Mode)

	_, err = runner.RunSession(ctx, conf.Session.Episodes, movers)
	switch {
	case errors.Is(err, usecase.ErrPlayerQuit), errors.Is(err, io.EOF):
		log.Info("Player left the session")
		return nil
	case errors.Is(err, context.Canceled):
		log.Info("Application context canceled, shutting down")
		return nil
	case err != nil:
		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}

// initTransitionRepo - connects the redis transition sink, or discards transitions when it is disabled.
func initTransitionRepo(ctx context.Context, conf *config.Config) (repository.TransitionRepository, func() error, error) {
	if !conf.Redis.Enabled {
		return repository.NewNopTransitionRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewTransitionRepository(redisStorage, conf.Redis.TTL), redisStorage.Close, nil
}

func initMovers(mode string, controller *tictactoe.GameController) (map[entity.Mark]usecase.MoveSource, error) {
	sampling := usecase.NewSamplingMover(controller)

	switch mode {
	case config.ModeHuman:
		return map[entity.Mark]usecase.MoveSource{
			entity.MarkO: usecase.NewConsoleMover(os.Stdin, os.Stdout),
			entity.MarkX: sampling,
		}, nil
	case config.ModeAuto:
		return map[entity.Mark]usecase.MoveSource{
			entity.MarkO: sampling,
			entity.MarkX: sampling,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}
