package game

import "fmt"

// Status - состояние партии
type Status int

const (
	SelectingPlayer Status = iota
	WaitingForOpponent
	Joining
	Starting
	Player1Turn
	Player2Turn
	Player1Win
	Player2Win
)

var statusNames = [...]string{
	SelectingPlayer:    "SelectingPlayer",
	WaitingForOpponent: "WaitingForOpponent",
	Joining:            "Joining",
	Starting:           "Starting",
	Player1Turn:        "Player1Turn",
	Player2Turn:        "Player2Turn",
	Player1Win:         "Player1Win",
	Player2Win:         "Player2Win",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// MarshalText lets the status travel as its name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// IsFinished reports whether the status is terminal.
func (s Status) IsFinished() bool {
	return s == Player1Win || s == Player2Win
}

// TurnOf returns the status meaning it is player's turn.
func TurnOf(player int) Status {
	if player == 0 {
		return Player1Turn
	}
	return Player2Turn
}

// WinOf returns the win status for player.
func WinOf(player int) Status {
	if player == 0 {
		return Player1Win
	}
	return Player2Win
}

// Winner returns the winning player for a terminal status.
func (s Status) Winner() (int, bool) {
	switch s {
	case Player1Win:
		return 0, true
	case Player2Win:
		return 1, true
	}
	return 0, false
}
