package app

import (
	"context"
	"time"

	"github.com/bennysakos/searchlight/internal/adapters/playerprovider"
	"github.com/bennysakos/searchlight/internal/logging"
)

type UpstreamState string

const (
	UpstreamReachable   UpstreamState = "reachable"
	UpstreamDegraded    UpstreamState = "degraded"
	UpstreamUnreachable UpstreamState = "unreachable"
)

type RatingsStatus struct {
	State      UpstreamState
	StatusCode int
	Latency    time.Duration
}

// The probe failing is itself a valid status, so this never errors.
type GetRatingsStatus func(ctx context.Context) RatingsStatus

func BuildGetRatingsStatus(ratingsAPI playerprovider.RatingsAPI) GetRatingsStatus {
	return func(ctx context.Context) RatingsStatus {
		statusCode, latency, err := ratingsAPI.CheckStatus(ctx)
		if err != nil {
			logging.FromContext(ctx).Error("Ratings site unreachable", "error", err.Error())
			return RatingsStatus{
				State:   UpstreamUnreachable,
				Latency: latency,
			}
		}

		state := UpstreamReachable
		if statusCode != 200 {
			state = UpstreamDegraded
		}

		return RatingsStatus{
			State:      state,
			StatusCode: statusCode,
			Latency:    latency,
		}
	}
}
