package domaintest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Returns a unique valid username so parallel tests don't share cache keys.
func NewUsername(t *testing.T) string {
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return "tanker-" + id.String()[:8]
}
