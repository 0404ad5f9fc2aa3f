package domain

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID           uuid.UUID
	Name         string
	RegisteredAt time.Time
	Rating       float64
	RatingRank   int
	GamesPlayed  int

	Glicko2Rating Glicko2Rating
}

// Glicko2Rating is a secondary rating view computed from the same match
// history. Interval is the two deviation confidence interval.
type Glicko2Rating struct {
	Rating   float64
	Interval Interval
}

type Interval struct {
	Min float64
	Max float64
}

// RatingPoint is one entry of a player's rating history.
type RatingPoint struct {
	Date   time.Time
	Rating float64
}

type PlayerStats struct {
	Player Player
	Wins   int
	Loses  int
	Draws  int
}
