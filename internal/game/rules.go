package game

import "hazard_duel/internal/domain"

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate derives the status after move. A revealed hazard is checked before
// any line, so it wins even when the same move completes three in a row.
func Evaluate(board domain.Board, move domain.Move) Status {
	status, _ := evaluate(board, move)
	return status
}

// FinishReasonOf reports why a terminal move ended the game.
func FinishReasonOf(board domain.Board, move domain.Move) (domain.FinishReason, bool) {
	status, reason := evaluate(board, move)
	return reason, status.IsFinished()
}

func evaluate(board domain.Board, move domain.Move) (Status, domain.FinishReason) {
	cells := move.RevealedCells

	if h := HazardIndex(board); h >= 0 && cells[h] != domain.Empty {
		// выигрывает тот, кто НЕ открыл мину
		if cells[h] == domain.PlayerSymbols[1] {
			return Player1Win, domain.FinishHazard
		}
		return Player2Win, domain.FinishHazard
	}

	for _, l := range lines {
		s := cells[l[0]]
		if s == domain.Empty || s != cells[l[1]] || s != cells[l[2]] {
			continue
		}
		if s == domain.PlayerSymbols[0] {
			return Player1Win, domain.FinishLine
		}
		return Player2Win, domain.FinishLine
	}

	return TurnOf(1 - move.PlayerID), ""
}
