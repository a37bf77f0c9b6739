package domain

import (
	"math"
	"time"
)

type Player struct {
	QueriedAt time.Time

	Username string
	Rank     Rank
	Group    string

	Experience    int
	MaxExperience *int

	Kills   int
	Deaths  int
	KDRatio float64

	Premium   bool
	GoldBoxes int
	IsOnline  bool

	Equipment Equipment
}

type Equipment struct {
	Turrets []string
	Hulls   []string
}

// KillDeathRatio treats deaths == 0 as 1 so the ratio stays finite.
// The result is rounded to two decimals to match the site's presentation.
func KillDeathRatio(kills, deaths int) float64 {
	if deaths < 1 {
		deaths = 1
	}

	return math.Round(float64(kills)/float64(deaths)*100) / 100
}
