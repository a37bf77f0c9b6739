package domaintest

import (
	"time"

	"github.com/bennysakos/searchlight/internal/domain"
)

type playerBuilder struct {
	player *domain.Player
}

func (pb *playerBuilder) WithRank(rank domain.Rank) *playerBuilder {
	pb.player.Rank = rank
	return pb
}

func (pb *playerBuilder) WithExperience(experience int) *playerBuilder {
	pb.player.Experience = experience
	return pb
}

func (pb *playerBuilder) WithMaxExperience(maxExperience int) *playerBuilder {
	pb.player.MaxExperience = &maxExperience
	return pb
}

// Sets kills and deaths, and keeps the ratio consistent with them.
func (pb *playerBuilder) WithStats(kills, deaths int) *playerBuilder {
	pb.player.Kills = kills
	pb.player.Deaths = deaths
	pb.player.KDRatio = domain.KillDeathRatio(kills, deaths)
	return pb
}

func (pb *playerBuilder) WithPremium() *playerBuilder {
	pb.player.Premium = true
	return pb
}

func (pb *playerBuilder) WithGoldBoxes(goldBoxes int) *playerBuilder {
	pb.player.GoldBoxes = goldBoxes
	return pb
}

func (pb *playerBuilder) WithGroup(group string) *playerBuilder {
	pb.player.Group = group
	return pb
}

func (pb *playerBuilder) WithOnline() *playerBuilder {
	pb.player.IsOnline = true
	return pb
}

func (pb *playerBuilder) WithEquipment(turrets, hulls []string) *playerBuilder {
	pb.player.Equipment = domain.Equipment{Turrets: turrets, Hulls: hulls}
	return pb
}

func (pb *playerBuilder) Build() domain.Player {
	return *pb.player
}

func (pb *playerBuilder) BuildPtr() *domain.Player {
	// Make a copy, so further mutations to the builder don't affect the returned player
	player := pb.Build()
	return &player
}

func NewPlayerBuilder(username string, queriedAt time.Time) *playerBuilder {
	player := &domain.Player{
		QueriedAt: queriedAt,
		Username:  username,
		Rank:      domain.RankRecruit,
		Equipment: domain.Equipment{Turrets: []string{}, Hulls: []string{}},
	}
	return &playerBuilder{
		player: player,
	}
}
