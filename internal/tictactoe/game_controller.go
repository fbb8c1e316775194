package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"golang.org/x/exp/rand"
)

// GameController owns the board of the active episode. It is not safe for concurrent use.
type GameController struct {
	settings Settings

	board entity.Board
	mark  entity.Mark
	done  bool

	rng *rand.Rand
}

var _ Environment = (*GameController)(nil)

func NewGameController(settings Settings) (*GameController, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	controller := &GameController{
		settings: settings,
		rng:      rand.New(rand.NewSource(0)),
	}
	controller.Reset()

	return controller, nil
}

// Reset - starts a new episode with an empty board.
func (that *GameController) Reset() Observation {
	that.board = entity.Board{}
	that.mark = that.settings.StartMark
	that.done = false

	return that.Observation()
}

// Step - places the current mark at action and advances the turn.
//
// Once the episode is done, Step returns the last observation with a zero reward
// and leaves the state untouched.
func (that *GameController) Step(action int) (StepResult, error) {
	if action < 0 || action >= entity.BoardSize {
		return StepResult{}, fmt.Errorf("%w: action %d", apperror.ErrInvalidAction, action)
	}

	if that.done {
		return StepResult{Observation: that.Observation(), Done: true}, nil
	}

	if err := that.board.Place(action, that.mark); err != nil {
		return StepResult{}, fmt.Errorf("invalid move: %w", err)
	}

	reward := 0
	if status := CheckGameStatus(that.board); status.IsFinished() {
		that.done = true
		reward = that.settings.Rewards.For(status, that.mark)
	}

	// the mark advances on the final move too
	that.mark = that.mark.Next()

	return StepResult{
		Observation: that.Observation(),
		Reward:      reward,
		Done:        that.done,
	}, nil
}

// AvailableActions - returns the empty cells, or nothing once the episode is done.
func (that *GameController) AvailableActions() []int {
	if that.done {
		return []int{}
	}

	return that.board.EmptyIndices()
}

// Seed - reseeds the source used by SampleAction.
func (that *GameController) Seed(seed uint64) {
	that.rng.Seed(seed)
}

// SampleAction - picks one of the available actions uniformly at random.
func (that *GameController) SampleAction() (int, error) {
	actions := that.AvailableActions()
	if len(actions) == 0 {
		return 0, apperror.ErrNoAvailableActions
	}

	return actions[that.rng.Intn(len(actions))], nil
}

func (that *GameController) Observation() Observation {
	return Observation{
		Board: that.board,
		Mark:  that.mark,
	}
}

func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) Mark() entity.Mark {
	return that.mark
}

func (that *GameController) Done() bool {
	return that.done
}

// Status - evaluates the current board.
func (that *GameController) Status() entity.GameStatus {
	return CheckGameStatus(that.board)
}
