package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	t.Run("connection reset by peer", func(t *testing.T) {
		t.Parallel()

		err := `temporarily unavailable: Get "https://ratings.ranked-rtanks.online/user/Alpha": read tcp [dead:beef:feb1:d745::c001]:64079->[dead:beef::6811:112a]:443: read: connection reset by peer`
		want := `temporarily unavailable: Get "https://ratings.ranked-rtanks.online/user/<username>": read tcp <host>-><host>: read: connection reset by peer`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("context deadline", func(t *testing.T) {
		t.Parallel()

		err := `temporarily unavailable: Get "https://ratings.ranked-rtanks.online/user/Tank_Hunter-99": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		want := `temporarily unavailable: Get "https://ratings.ranked-rtanks.online/user/<username>": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("correlation ids", func(t *testing.T) {
		t.Parallel()

		err := `request deadbeef-8315-465d-9d44-cfc238c64f71 failed`
		want := `request <uuid> failed`
		require.Equal(t, want, sanitizeError(err))
	})
	t.Run("misc ipv6", func(t *testing.T) {
		t.Parallel()

		ips := []string{
			`1:2:3:4:5:6:7:8`,
			`1::`,
			`1:2:3:4:5:6:7::`,
			`1::8`,
			`1:2:3:4:5:6::8`,
			`1:2:3:4:5:6::8`,
			`1::7:8`,
			`1:2:3:4:5::7:8`,
			`1:2:3:4:5::8`,
			`1::6:7:8`,
			`1:2:3:4::6:7:8`,
			`1:2:3:4::8`,
			`1::5:6:7:8`,
			`1:2:3::5:6:7:8`,
			`1:2:3::8`,
			`1::4:5:6:7:8`,
			`1:2::4:5:6:7:8`,
			`1:2::8`,
			`1::3:4:5:6:7:8`,
			`1::3:4:5:6:7:8`,
			`1::8`,
			`::2:3:4:5:6:7:8`,
			`::8`,
			`::`,
		}
		for _, ip := range ips {
			t.Run(ip, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, "<host>", sanitizeError(fmt.Sprintf("[%s]:1234", ip)))
			})
		}
	})
	t.Run("profile requests", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			error string
			want  string
		}{
			{
				error: `failed to send request: Get "https://ratings.ranked-rtanks.online/user/ZteelyX": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`,
				want:  `failed to send request: Get "https://ratings.ranked-rtanks.online/user/<username>": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`,
			},
			{
				// Cyrillic usernames appear on the site
				error: `failed to send request: Get "https://ratings.ranked-rtanks.online/user/Танкист": connection refused`,
				want:  `failed to send request: Get "https://ratings.ranked-rtanks.online/user/<username>": connection refused`,
			},
			{
				// Constructed - no match
				error: `failed to send request: Get "https://ratings.ranked-rtanks.online/user/player with spaces": failed`,
				want:  `failed to send request: Get "https://ratings.ranked-rtanks.online/user/player with spaces": failed`,
			},
			{
				// Constructed - don't match eagerly
				error: `failed to send request: Get "https://ratings.ranked-rtanks.online/user/someplayer": failed due to "some sort of error"`,
				want:  `failed to send request: Get "https://ratings.ranked-rtanks.online/user/<username>": failed due to "some sort of error"`,
			},
			{
				// Constructed - don't match eagerly
				error: `failed to send request: Get "https://ratings.ranked-rtanks.online/user/someplayer":"someextraerrorhere"`,
				want:  `failed to send request: Get "https://ratings.ranked-rtanks.online/user/<username>":"someextraerrorhere"`,
			},
		}
		for _, tc := range cases {
			t.Run(tc.error, func(t *testing.T) {
				t.Parallel()

				require.Equal(t, tc.want, sanitizeError(tc.error))
			})
		}
	})
}
