package pkg

import "unicode/utf8"

// CalculateGrowth returns the % change between two period counts.
func CalculateGrowth(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100 // 0 -> n reads as 100% on the dashboard
		}
		return 0
	}
	delta := float64(current - previous)
	return int((delta / float64(previous)) * 100)
}

// Truncate cuts s to at most n runes, appending an ellipsis when it cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
