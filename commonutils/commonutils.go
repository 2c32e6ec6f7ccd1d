package commonutils

import (
	"strconv"
	"strings"
)

const (
	FormatTable = "table"
	FormatJson  = "json"

	maskedSuffix   = "****"
	revealedPrefix = 4
)

func IsFlagPositiveNumber(flag string) bool {
	num, err := strconv.Atoi(flag)
	if err != nil {
		return false
	}
	return num > 0
}

// IsValidFormat reports whether format is one of the output formats the commands support.
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatTable, FormatJson:
		return true
	}
	return false
}

// MaskSecret hides all but the first characters of a secret. Short secrets are masked
// entirely; an empty secret stays empty.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	runes := []rune(secret)
	if len(runes) <= 2*revealedPrefix {
		return maskedSuffix
	}
	return string(runes[:revealedPrefix]) + maskedSuffix
}
