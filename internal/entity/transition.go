package entity

// Transition is one accepted step of an episode as seen by a trainer.
type Transition struct {
	EpisodeID string     `json:"episode_id"`
	Step      int        `json:"step"`
	Mark      Mark       `json:"mark"`
	Action    int        `json:"action"`
	Board     Board      `json:"board"`
	Reward    int        `json:"reward"`
	Done      bool       `json:"done"`
	Status    GameStatus `json:"status"`

	// Features is the encoded observation the move was chosen from.
	Features []float64 `json:"features,omitempty"`
}
