package domain

// Error is a sentinel error value that can be declared as a constant.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoActiveGame     Error = "no active game"
	ErrAwaitingOpponent Error = "waiting for opponent"
	ErrGameOver         Error = "game is over"
	ErrUnknownPlayer    Error = "unknown player"
	ErrNotYourTurn      Error = "not your turn"
	ErrCellOutOfRange   Error = "cell out of range"
	ErrCellRevealed     Error = "cell already revealed"

	ErrGameNotFound   Error = "game not found"
	ErrPlayerNotFound Error = "player not found"
	ErrGameFull       Error = "game is full"
	ErrAlreadyJoined  Error = "already joined"
	ErrNotParticipant Error = "not a participant"
)
