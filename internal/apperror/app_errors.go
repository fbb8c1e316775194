package apperror

import "errors"

var (
	ErrInvalidAction       = errors.New("action is out of range")
	ErrIllegalMove         = errors.New("cell is already occupied")
	ErrNoAvailableActions  = errors.New("no available actions")
	ErrInvalidSettings     = errors.New("invalid environment settings")
	ErrEpisodeNotFound     = errors.New("episode not found")
	ErrTooManyInvalidMoves = errors.New("too many invalid moves")
)
