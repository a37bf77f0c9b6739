package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedRatingsAPI struct {
	t          *testing.T
	statusCode int
	latency    time.Duration
	err        error
}

func (m *mockedRatingsAPI) GetProfilePage(ctx context.Context, username string) ([]byte, int, time.Time, error) {
	m.t.Helper()
	m.t.Fatal("should not be called")
	return nil, -1, time.Time{}, nil
}

func (m *mockedRatingsAPI) CheckStatus(ctx context.Context) (int, time.Duration, error) {
	if m.err != nil {
		return -1, m.latency, m.err
	}
	return m.statusCode, m.latency, nil
}

func TestGetRatingsStatus(t *testing.T) {
	t.Parallel()

	t.Run("reachable", func(t *testing.T) {
		t.Parallel()

		ratingsAPI := &mockedRatingsAPI{t: t, statusCode: 200, latency: 120 * time.Millisecond}
		status := BuildGetRatingsStatus(ratingsAPI)(t.Context())

		require.Equal(t, UpstreamReachable, status.State)
		require.Equal(t, 200, status.StatusCode)
		require.Equal(t, 120*time.Millisecond, status.Latency)
	})

	t.Run("degraded", func(t *testing.T) {
		t.Parallel()

		ratingsAPI := &mockedRatingsAPI{t: t, statusCode: 503, latency: 2 * time.Second}
		status := BuildGetRatingsStatus(ratingsAPI)(t.Context())

		require.Equal(t, UpstreamDegraded, status.State)
		require.Equal(t, 503, status.StatusCode)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		ratingsAPI := &mockedRatingsAPI{t: t, latency: 10 * time.Second, err: assert.AnError}
		status := BuildGetRatingsStatus(ratingsAPI)(t.Context())

		require.Equal(t, UpstreamUnreachable, status.State)
		require.Equal(t, 0, status.StatusCode)
		require.Equal(t, 10*time.Second, status.Latency)
	})
}
