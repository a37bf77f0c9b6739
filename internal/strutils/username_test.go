package strutils_test

import (
	"strings"
	"testing"

	"github.com/bennysakos/searchlight/internal/strutils"
	"github.com/stretchr/testify/require"
)

const EMPTY_USERNAME = "username is empty"
const INVALID_CHARACTER = "invalid character in username"
const TOO_LONG = "username too long"

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input          string
		expected       string
		errorSubstring string
	}{
		{
			// Plain username
			input:    "Alpha",
			expected: "Alpha",
		},
		{
			// Case is preserved
			input:    "aLpHa",
			expected: "aLpHa",
		},
		{
			// Surrounding whitespace is trimmed
			input:    "  Alpha\t\n",
			expected: "Alpha",
		},
		{
			// Digits and symbols
			input:    "Tank_Hunter-99",
			expected: "Tank_Hunter-99",
		},
		{
			// Dots are allowed
			input:    "mr.smoky",
			expected: "mr.smoky",
		},
		{
			// Cyrillic names appear on the site
			input:    "Танкист",
			expected: "Танкист",
		},
		{
			// Longest allowed username
			input:    strings.Repeat("a", 30),
			expected: strings.Repeat("a", 30),
		},
		{
			input:          "",
			errorSubstring: EMPTY_USERNAME,
		},
		{
			input:          "   \t ",
			errorSubstring: EMPTY_USERNAME,
		},
		{
			input:          strings.Repeat("a", 31),
			errorSubstring: TOO_LONG,
		},
		{
			// Embedded whitespace is not trimmed and not allowed
			input:          "Al pha",
			errorSubstring: INVALID_CHARACTER,
		},
		{
			input:          "Alpha!",
			errorSubstring: INVALID_CHARACTER,
		},
		{
			input:          "../../etc/passwd",
			errorSubstring: INVALID_CHARACTER,
		},
		{
			input:          "Alpha/Beta",
			errorSubstring: INVALID_CHARACTER,
		},
		{
			input:          "name?premium=1",
			errorSubstring: INVALID_CHARACTER,
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			normalized, err := strutils.NormalizeUsername(c.input)
			if c.errorSubstring != "" {
				require.ErrorContains(t, err, c.errorSubstring)
				return
			}

			require.NoError(t, err)
			require.Equal(t, c.expected, normalized)
		})
	}
}
