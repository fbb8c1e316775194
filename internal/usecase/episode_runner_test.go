package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/rocketscienceinc/tictactoe-env/internal/render"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockTransitionRepo struct {
	mock.Mock
}

func (that *mockTransitionRepo) Append(ctx context.Context, transition *entity.Transition) error {
	args := that.Called(ctx, transition)
	return args.Error(0)
}

// scriptedMover replays a fixed list of actions.
type scriptedMover struct {
	actions []int
}

func (that *scriptedMover) NextMove(context.Context, tictactoe.Observation, []int) (int, error) {
	if len(that.actions) == 0 {
		return 0, io.EOF
	}

	action := that.actions[0]
	that.actions = that.actions[1:]

	return action, nil
}

func newRunner(t *testing.T, repo transitionRepo) (*EpisodeRunner, *tictactoe.GameController, *bytes.Buffer) {
	t.Helper()

	controller, err := tictactoe.NewGameController(tictactoe.DefaultSettings())
	require.NoError(t, err)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewEpisodeRunner(logger, controller, render.NewConsole(&out), repo), controller, &out
}

func TestEpisodeRunner_RunEpisode(t *testing.T) {
	ctx := context.Background()

	t.Run("O wins on the top row", func(t *testing.T) {
		// Given: O plays 0, 1, 2 and X plays 4, 3
		repo := &mockTransitionRepo{}
		repo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Transition")).Return(nil).Times(5)

		runner, _, out := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{actions: []int{0, 1, 2}},
			entity.MarkX: &scriptedMover{actions: []int{4, 3}},
		}

		// When: the episode is played
		result, err := runner.RunEpisode(ctx, 1, movers)

		// Then: O wins on move 5 with a reward of +1
		require.NoError(t, err)
		assert.Equal(t, 5, result.Steps)
		assert.Equal(t, 1, result.Reward)
		assert.Equal(t, entity.WonBy(entity.MarkO), result.Status)
		assert.NotEmpty(t, result.EpisodeID)

		// And: every step was recorded, the last one as done
		repo.AssertExpectations(t)
		last := repo.Calls[4].Arguments.Get(1).(*entity.Transition)
		assert.True(t, last.Done)
		assert.Equal(t, entity.MarkO, last.Mark)
		assert.Equal(t, 2, last.Action)
		assert.Equal(t, result.EpisodeID, last.EpisodeID)

		// And: the features encode the board O moved from, with O to move
		require.Len(t, last.Features, tictactoe.EncodedLen)
		assert.InDelta(t, 1.0, last.Features[1*3+int(entity.CellO)], 0)
		assert.InDelta(t, 1.0, last.Features[2*3+int(entity.EmptyCell)], 0)
		assert.InDelta(t, 1.0, last.Features[tictactoe.EncodedLen-1], 0)

		assert.Contains(t, out.String(), "==== Episode 1 ====")
		assert.Contains(t, out.String(), "==== Finished: Winner is 'O'! ====")
	})

	t.Run("Occupied cell is asked again", func(t *testing.T) {
		repo := &mockTransitionRepo{}
		repo.On("Append", mock.Anything, mock.Anything).Return(nil)

		runner, _, _ := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{actions: []int{0, 1, 2}},
			// X first tries the occupied cell 0 and an out of range cell
			entity.MarkX: &scriptedMover{actions: []int{0, 9, 4, 3}},
		}

		result, err := runner.RunEpisode(ctx, 1, movers)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Steps)
		repo.AssertNumberOfCalls(t, "Append", 5)
	})

	t.Run("Too many invalid moves", func(t *testing.T) {
		repo := &mockTransitionRepo{}

		runner, _, _ := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{actions: []int{-1, -1, -1, -1, -1}},
		}

		result, err := runner.RunEpisode(ctx, 1, movers)

		require.ErrorIs(t, err, apperror.ErrTooManyInvalidMoves)
		assert.Nil(t, result)
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Error if no mover plays the mark", func(t *testing.T) {
		repo := &mockTransitionRepo{}
		repo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		runner, _, _ := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{actions: []int{4}},
		}

		_, err := runner.RunEpisode(ctx, 1, movers)

		require.ErrorIs(t, err, ErrMoverNotFound)
	})

	t.Run("Error if the transition cannot be recorded", func(t *testing.T) {
		repo := &mockTransitionRepo{}
		repo.On("Append", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		runner, _, _ := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{actions: []int{4}},
			entity.MarkX: &scriptedMover{actions: []int{0}},
		}

		_, err := runner.RunEpisode(ctx, 1, movers)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Mover failure aborts the episode", func(t *testing.T) {
		repo := &mockTransitionRepo{}

		runner, _, _ := newRunner(t, repo)
		movers := map[entity.Mark]MoveSource{
			entity.MarkO: &scriptedMover{},
		}

		_, err := runner.RunEpisode(ctx, 1, movers)

		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("Cancelled context stops the episode", func(t *testing.T) {
		repo := &mockTransitionRepo{}

		runner, _, _ := newRunner(t, repo)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := runner.RunEpisode(cancelled, 1, map[entity.Mark]MoveSource{})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestEpisodeRunner_RunSession(t *testing.T) {
	// Given: both marks are played by the environment's sampler
	repo := &mockTransitionRepo{}
	repo.On("Append", mock.Anything, mock.Anything).Return(nil)

	runner, controller, _ := newRunner(t, repo)
	controller.Seed(1)
	sampling := NewSamplingMover(controller)
	movers := map[entity.Mark]MoveSource{
		entity.MarkO: sampling,
		entity.MarkX: sampling,
	}

	// When: ten episodes are played
	summary, err := runner.RunSession(context.Background(), 10, movers)

	// Then: every episode ends in a win or a draw
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Episodes)
	assert.Equal(t, 10, summary.Wins[entity.MarkO]+summary.Wins[entity.MarkX]+summary.Draws)
}
