package audit

import (
	"fmt"
	"math"
	"strconv"
)

const (
	million  = 1_000_000
	thousand = 1_000
)

// roundHalfUp1 rounds to one decimal place with ties going up, so 1.25
// displays as 1.3 rather than banker's-rounded 1.2.
func roundHalfUp1(n float64) float64 {
	return math.Floor(n*10+0.5) / 10
}

// FormatNumber compacts large figures for display: 18500 -> "18.5K",
// 1250000 -> "1.3M".
func FormatNumber(n float64) string {
	if n >= million {
		return fmt.Sprintf("%.1fM", roundHalfUp1(n/million))
	}
	if n >= thousand {
		return fmt.Sprintf("%.1fK", roundHalfUp1(n/thousand))
	}
	return strconv.Itoa(int(n))
}

// FormatCurrency renders a dollar amount with two decimals: 0.2199999 ->
// "$0.22".
func FormatCurrency(n float64) string {
	return fmt.Sprintf("$%.2f", n)
}
