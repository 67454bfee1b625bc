package domain

import "time"

// GameResult - результат игры для одного игрока
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
)

// FinishReason - как закончилась партия
type FinishReason string

const (
	FinishHazard FinishReason = "hazard"
	FinishLine   FinishReason = "line"
)

// GameHistory - запись истории игры
type GameHistory struct {
	ID         int64        `db:"id" json:"id"`
	GameID     string       `db:"game_id" json:"game_id"`
	PlayerID   string       `db:"player_id" json:"player_id"`
	OpponentID string       `db:"opponent_id" json:"opponent_id"`
	Result     GameResult   `db:"result" json:"result"`
	Reason     FinishReason `db:"reason" json:"reason"`
	Moves      int          `db:"moves" json:"moves"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// ToGameHistory builds one history record per participant of a finished game.
func (g *Game) ToGameHistory(reason FinishReason) []*GameHistory {
	if g.WinnerPlayer == nil || g.Player2ID == nil {
		return nil
	}

	players := [2]string{g.Player1ID, *g.Player2ID}
	var result []*GameHistory
	for seat, playerID := range players {
		res := GameResultLose
		if *g.WinnerPlayer == seat {
			res = GameResultWin
		}
		result = append(result, &GameHistory{
			GameID:     g.ID,
			PlayerID:   playerID,
			OpponentID: players[1-seat],
			Result:     res,
			Reason:     reason,
			Moves:      len(g.Moves),
		})
	}
	return result
}
