package entity

const (
	StatusInProgress = "in_progress"
	StatusDraw       = "draw"
	StatusWon        = "won"
)

// GameStatus is the verdict derived from a board. Winner is set only for StatusWon.
type GameStatus struct {
	State  string `json:"state"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() GameStatus {
	return GameStatus{State: StatusInProgress}
}

func Draw() GameStatus {
	return GameStatus{State: StatusDraw}
}

func WonBy(mark Mark) GameStatus {
	return GameStatus{State: StatusWon, Winner: mark}
}

func (that GameStatus) IsFinished() bool {
	return that.State != StatusInProgress
}

func (that GameStatus) IsDraw() bool {
	return that.State == StatusDraw
}

func (that GameStatus) IsWon() bool {
	return that.State == StatusWon
}
