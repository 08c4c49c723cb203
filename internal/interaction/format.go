package interaction

import "strconv"

// FormatCompactCount renders n the way feed cards show counts:
// 999 -> "999", 1500 -> "1.5k", 2500000 -> "2.5m". The fraction is rounded
// half-up to one decimal.
func FormatCompactCount(n int) string {
	return formatCompact(n, "k", "m")
}

// FormatCompactCountUpper is the reels variant with upper-case suffixes.
func FormatCompactCountUpper(n int) string {
	return formatCompact(n, "K", "M")
}

func formatCompact(n int, thousand, million string) string {
	switch {
	case n >= 1_000_000:
		return tenths(n, 1_000_000) + million
	case n >= 1_000:
		return tenths(n, 1_000) + thousand
	default:
		return strconv.Itoa(n)
	}
}

// tenths formats n/div with one decimal, rounded half-up.
func tenths(n, div int) string {
	t := (int64(n)*10 + int64(div)/2) / int64(div)
	return strconv.FormatInt(t/10, 10) + "." + strconv.FormatInt(t%10, 10)
}
