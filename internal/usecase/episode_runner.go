package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
)

// maxInvalidAttempts bounds how often a mover may be re-asked within one turn.
const maxInvalidAttempts = 5

var ErrMoverNotFound = errors.New("no move source for mark")

// MoveSource chooses the next action for the mark to move.
type MoveSource interface {
	NextMove(ctx context.Context, obs tictactoe.Observation, actions []int) (int, error)
}

type environment interface {
	Reset() tictactoe.Observation
	Step(action int) (tictactoe.StepResult, error)
	AvailableActions() []int
	Status() entity.GameStatus
}

type presenter interface {
	ShowEpisode(episode int) error
	ShowTurn(mark entity.Mark) error
	ShowBoard(board entity.Board) error
	ShowResult(status entity.GameStatus) error
}

type transitionRepo interface {
	Append(ctx context.Context, transition *entity.Transition) error
}

type EpisodeResult struct {
	EpisodeID string
	Steps     int
	Reward    int
	Status    entity.GameStatus
}

type SessionSummary struct {
	Episodes int
	Wins     map[entity.Mark]int
	Draws    int
}

// EpisodeRunner plays whole episodes against an environment it owns exclusively.
type EpisodeRunner struct {
	logger *slog.Logger

	env            environment
	presenter      presenter
	transitionRepo transitionRepo
}

func NewEpisodeRunner(logger *slog.Logger, env environment, presenter presenter, transitionRepo transitionRepo) *EpisodeRunner {
	return &EpisodeRunner{
		logger: logger.With("component", "episode_runner"),

		env:            env,
		presenter:      presenter,
		transitionRepo: transitionRepo,
	}
}

// RunSession - plays the given number of episodes one after another.
func (that *EpisodeRunner) RunSession(ctx context.Context, episodes int, movers map[entity.Mark]MoveSource) (*SessionSummary, error) {
	log := that.logger.With("method", "RunSession")

	summary := &SessionSummary{
		Wins: map[entity.Mark]int{},
	}

	for episode := 1; episode <= episodes; episode++ {
		result, err := that.RunEpisode(ctx, episode, movers)
		if err != nil {
			return summary, fmt.Errorf("failed to run episode %d: %w", episode, err)
		}

		summary.Episodes++
		if result.Status.IsWon() {
			summary.Wins[result.Status.Winner]++
		} else {
			summary.Draws++
		}
	}

	log.Info("session finished",
		"episodes", summary.Episodes,
		"wins_o", summary.Wins[entity.MarkO],
		"wins_x", summary.Wins[entity.MarkX],
		"draws", summary.Draws,
	)

	return summary, nil
}

// RunEpisode - resets the environment and plays until it reports done.
func (that *EpisodeRunner) RunEpisode(ctx context.Context, episode int, movers map[entity.Mark]MoveSource) (*EpisodeResult, error) {
	episodeID := uuid.NewString()
	log := that.logger.With("method", "RunEpisode", "episode", episode, "episodeID", episodeID)

	obs := that.env.Reset()
	if err := that.presenter.ShowEpisode(episode); err != nil {
		return nil, err
	}

	for step := 1; ; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("episode interrupted: %w", err)
		}

		mover, ok := movers[obs.Mark]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMoverNotFound, obs.Mark)
		}

		if err := that.presenter.ShowTurn(obs.Mark); err != nil {
			return nil, err
		}

		action, result, err := that.playTurn(ctx, mover, obs)
		if err != nil {
			return nil, fmt.Errorf("failed to play step %d: %w", step, err)
		}

		status := that.env.Status()
		features := tictactoe.EncodeObservation(obs).RawVector().Data
		transition := &entity.Transition{
			EpisodeID: episodeID,
			Step:      step,
			Mark:      obs.Mark,
			Action:    action,
			Board:     result.Observation.Board,
			Reward:    result.Reward,
			Done:      result.Done,
			Status:    status,
			Features:  features,
		}
		if err = that.transitionRepo.Append(ctx, transition); err != nil {
			return nil, fmt.Errorf("failed to record transition: %w", err)
		}

		log.Debug("step accepted", "step", step, "mark", obs.Mark, "action", action, "reward", result.Reward)

		if err = that.presenter.ShowBoard(result.Observation.Board); err != nil {
			return nil, err
		}

		obs = result.Observation

		if result.Done {
			if err = that.presenter.ShowResult(status); err != nil {
				return nil, err
			}

			log.Info("episode finished", "steps", step, "status", status.State, "winner", status.Winner, "reward", result.Reward)

			return &EpisodeResult{
				EpisodeID: episodeID,
				Steps:     step,
				Reward:    result.Reward,
				Status:    status,
			}, nil
		}
	}
}

// playTurn - asks the mover until the environment accepts an action.
func (that *EpisodeRunner) playTurn(ctx context.Context, mover MoveSource, obs tictactoe.Observation) (int, tictactoe.StepResult, error) {
	log := that.logger.With("method", "playTurn", "mark", obs.Mark)

	for attempt := 1; attempt <= maxInvalidAttempts; attempt++ {
		action, err := mover.NextMove(ctx, obs, that.env.AvailableActions())
		if err != nil && !isInvalidMove(err) {
			return 0, tictactoe.StepResult{}, fmt.Errorf("mover failed: %w", err)
		}

		if err == nil {
			result, stepErr := that.env.Step(action)
			if stepErr == nil {
				return action, result, nil
			}
			if !isInvalidMove(stepErr) {
				return 0, tictactoe.StepResult{}, fmt.Errorf("failed to step: %w", stepErr)
			}
			err = stepErr
		}

		log.Warn("move rejected", "attempt", attempt, "error", err)
	}

	return 0, tictactoe.StepResult{}, apperror.ErrTooManyInvalidMoves
}

func isInvalidMove(err error) bool {
	return errors.Is(err, apperror.ErrInvalidAction) || errors.Is(err, apperror.ErrIllegalMove)
}
