package tempo

import (
	"fmt"
	"strconv"
)

// FormatAmount renders a resource amount for terminal-width displays:
// billions as "N.NB", millions as "N.NM", thousands as "N.NK", and anything
// smaller as a plain integer.
func FormatAmount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
