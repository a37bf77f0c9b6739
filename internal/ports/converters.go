package ports

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bennysakos/searchlight/internal/app"
	"github.com/bennysakos/searchlight/internal/domain"
)

// Response structures that closely match the domain structs with json tags

type PlayerResponse struct {
	Success bool          `json:"success"`
	Player  *PlayerRecord `json:"player"`
	Cause   *string       `json:"cause,omitempty"`
}

type CompareResponse struct {
	Success bool          `json:"success"`
	Player1 *PlayerRecord `json:"player1"`
	Player2 *PlayerRecord `json:"player2"`
	Cause   *string       `json:"cause,omitempty"`
}

type StatusResponse struct {
	Success    bool    `json:"success"`
	State      string  `json:"state"`
	StatusCode int     `json:"statusCode,omitempty"`
	LatencyMS  int64   `json:"latencyMs"`
	Cause      *string `json:"cause,omitempty"`
}

type PlayerRecord struct {
	QueriedAt time.Time `json:"queriedAt"`

	Username string `json:"username"`
	Rank     string `json:"rank"`
	Group    string `json:"group,omitempty"`

	Experience    int  `json:"experience"`
	MaxExperience *int `json:"maxExperience,omitempty"`

	Kills   int    `json:"kills"`
	Deaths  int    `json:"deaths"`
	KDRatio string `json:"kdRatio"`

	Premium   bool `json:"premium"`
	GoldBoxes int  `json:"goldBoxes"`
	IsOnline  bool `json:"isOnline"`

	Equipment EquipmentRecord `json:"equipment"`
}

type EquipmentRecord struct {
	Turrets []string `json:"turrets"`
	Hulls   []string `json:"hulls"`
}

func domainPlayerToRecord(player *domain.Player) *PlayerRecord {
	if player == nil {
		return nil
	}

	return &PlayerRecord{
		QueriedAt: player.QueriedAt,

		Username: player.Username,
		Rank:     player.Rank.String(),
		Group:    player.Group,

		Experience:    player.Experience,
		MaxExperience: player.MaxExperience,

		Kills:   player.Kills,
		Deaths:  player.Deaths,
		KDRatio: fmt.Sprintf("%.2f", player.KDRatio),

		Premium:   player.Premium,
		GoldBoxes: player.GoldBoxes,
		IsOnline:  player.IsOnline,

		Equipment: EquipmentRecord{
			Turrets: player.Equipment.Turrets,
			Hulls:   player.Equipment.Hulls,
		},
	}
}

func PlayerToResponseData(player *domain.Player) ([]byte, error) {
	response := PlayerResponse{
		Success: true,
		Player:  domainPlayerToRecord(player),
	}

	data, err := json.Marshal(response)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to marshal player response: %w", err)
	}

	return data, nil
}

func ComparedPlayersToResponseData(compared app.ComparedPlayers) ([]byte, error) {
	response := CompareResponse{
		Success: true,
		Player1: domainPlayerToRecord(compared.Player1),
		Player2: domainPlayerToRecord(compared.Player2),
	}

	data, err := json.Marshal(response)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to marshal compare response: %w", err)
	}

	return data, nil
}

func RatingsStatusToResponseData(status app.RatingsStatus) ([]byte, error) {
	response := StatusResponse{
		Success:    true,
		State:      string(status.State),
		StatusCode: status.StatusCode,
		LatencyMS:  status.Latency.Milliseconds(),
	}

	data, err := json.Marshal(response)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to marshal status response: %w", err)
	}

	return data, nil
}

func ErrorResponseData(cause string) ([]byte, error) {
	response := PlayerResponse{
		Success: false,
		Cause:   &cause,
	}

	data, err := json.Marshal(response)
	if err != nil {
		return []byte{}, fmt.Errorf("failed to marshal error response: %w", err)
	}

	return data, nil
}
