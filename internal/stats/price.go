package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePattern matches the operator's formatted price strings: an
// optional leading currency symbol followed by a decimal amount,
// e.g. "£1.50" or "£0.00".
var pricePattern = regexp.MustCompile(`^(\p{Sc})?\s*([0-9]+(?:\.[0-9]+)?)$`)

// parsePrice extracts the currency symbol and numeric amount from a
// formatted price. ok is false for malformed strings; those rides are
// excluded from monetary totals rather than treated as free.
func parsePrice(s string) (symbol string, amount float64, ok bool) {
	m := pricePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", 0, false
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, false
	}
	return m[1], v, true
}

// eBikeMarkers are the line-item title fragments that identify an
// electric bike rental in a ride's price breakdown.
var eBikeMarkers = []string{"e-bike", "ebike", "electric"}

func isEBikeLine(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range eBikeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
