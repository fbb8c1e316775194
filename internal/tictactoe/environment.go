package tictactoe

import "github.com/rocketscienceinc/tictactoe-env/internal/entity"

// Environment is the reset/step contract that agents drive.
type Environment interface {
	Reset() Observation
	Step(action int) (StepResult, error)
	AvailableActions() []int
	Seed(seed uint64)
}

// Observation is a point-in-time copy of the board and the mark to move.
type Observation struct {
	Board entity.Board `json:"board"`
	Mark  entity.Mark  `json:"mark"`
}

type StepResult struct {
	Observation Observation `json:"observation"`
	Reward      int         `json:"reward"`
	Done        bool        `json:"done"`
}
