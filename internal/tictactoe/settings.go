package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

// Rewards are paid to the caller on the move that ends an episode.
type Rewards struct {
	O    int
	X    int
	Draw int
}

// For - returns the reward for a terminal status reached by mover's move.
// The polarity is tied to the mark, not to the caller: O winning is O, X winning is X.
func (that Rewards) For(status entity.GameStatus, mover entity.Mark) int {
	switch {
	case status.IsWon() && mover == entity.MarkO:
		return that.O
	case status.IsWon():
		return that.X
	case status.IsDraw():
		return that.Draw
	default:
		return 0
	}
}

// Settings is fixed when a controller is built and never changes afterwards.
type Settings struct {
	StartMark entity.Mark
	Rewards   Rewards
}

func DefaultSettings() Settings {
	return Settings{
		StartMark: entity.MarkO,
		Rewards: Rewards{
			O:    1,
			X:    -1,
			Draw: 0,
		},
	}
}

func (that Settings) Validate() error {
	if !that.StartMark.IsValid() {
		return fmt.Errorf("%w: start mark %q", apperror.ErrInvalidSettings, that.StartMark)
	}

	return nil
}
