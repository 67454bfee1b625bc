package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hazard_games_created_total",
		Help: "Games created",
	})
	GamesJoined = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hazard_games_joined_total",
		Help: "Games joined by a second player",
	})
	MovesApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hazard_moves_applied_total",
		Help: "Moves accepted by the engine",
	})
	MovesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hazard_moves_rejected_total",
			Help: "Moves rejected by the engine",
		},
		[]string{"reason"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hazard_games_finished_total",
			Help: "Finished games by how they ended",
		},
		[]string{"reason"},
	)
	ActiveMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hazard_active_matches",
		Help: "Matches held in memory",
	})
)

func init() {
	prometheus.MustRegister(GamesCreated, GamesJoined, MovesApplied, MovesRejected, GamesFinished, ActiveMatches)
}
