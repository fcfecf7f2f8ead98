package draft

import (
	"math"
	"strconv"
	"strings"
)

// ParseMoney converts user input in major currency units to integer cents.
// A comma decimal separator is normalized to a dot. Empty or non-numeric
// input parses to 0 cents without error: an unpriced row is not a failure,
// it simply contributes nothing until priced.
func ParseMoney(value string) int64 {
	normalized := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if normalized == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(parsed * 100))
}

// FormatMoney renders integer cents back to a major-unit string with two
// decimals, the inverse used when loading an order into a draft for editing.
func FormatMoney(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// ParseQuantity parses a quantity input, returning 0 for anything that is
// not a positive integer.
func ParseQuantity(value string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || qty <= 0 {
		return 0
	}
	return qty
}
