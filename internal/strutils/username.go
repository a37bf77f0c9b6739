package strutils

import (
	"fmt"
	"strings"
	"unicode"
)

const VALID_USERNAME_SYMBOLS = "_-."

const MAX_USERNAME_LENGTH = 30

// Trims surrounding whitespace and validates length and character set.
// Case is preserved; lookups case-fold separately so the display name
// keeps the site's casing.
func NormalizeUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", fmt.Errorf("username is empty. input: '%s'", username)
	}

	length := 0
	for _, char := range trimmed {
		length++
		if length > MAX_USERNAME_LENGTH {
			return "", fmt.Errorf("username too long. input: '%s'", username)
		}

		if unicode.IsLetter(char) || unicode.IsDigit(char) || strings.ContainsRune(VALID_USERNAME_SYMBOLS, char) {
			continue
		}
		return "", fmt.Errorf("invalid character in username. input: '%s'", username)
	}

	return trimmed, nil
}
