// Package resolver matches the free-text ride addresses rendered by the
// operator's ride history against the station directory. The addresses
// are not canonical station names, so matching is a chain of heuristics
// tried in order; the first one that produces a station wins.
package resolver

import (
	"strings"

	"cycleledger.app/internal/models"
)

// matcher is one heuristic in the chain. It receives the raw address and
// returns the matched station, or nil.
type matcher func(address string, stations []models.Station) *models.Station

// The chain is ordered from most to least reliable. Keeping each
// heuristic as its own function keeps them independently testable and
// makes adding a new one a one-line change.
var chain = []matcher{
	matchContainment,
	matchTerminalCode,
	matchTokenOverlap,
}

// Resolve maps a free-text address to a station, or nil when no
// heuristic matches. It is deterministic: identical inputs always yield
// the identical station.
func Resolve(address string, stations []models.Station) *models.Station {
	if strings.TrimSpace(address) == "" {
		return nil
	}
	for _, match := range chain {
		if st := match(address, stations); st != nil {
			return st
		}
	}
	return nil
}

// Resolver memoizes Resolve results per distinct address string for one
// computation pass. Aggregators resolve the same handful of addresses
// over and over, so this turns repeated O(stations) scans into map hits.
// It is not safe for concurrent use; each pass builds its own Resolver.
type Resolver struct {
	stations []models.Station
	memo     map[string]*models.Station
}

// New creates a Resolver over a fixed station directory snapshot.
func New(stations []models.Station) *Resolver {
	return &Resolver{
		stations: stations,
		memo:     make(map[string]*models.Station),
	}
}

// Resolve matches a nullable address against the directory, caching the
// result (including misses) by the raw address string.
func (r *Resolver) Resolve(address *string) *models.Station {
	if address == nil {
		return nil
	}
	if st, seen := r.memo[*address]; seen {
		return st
	}
	st := Resolve(*address, r.stations)
	r.memo[*address] = st
	return st
}

// matchContainment matches when the normalized address contains the
// normalized station name as a substring, or vice versa. Stations are
// scanned in directory order and the first hit wins, so a station whose
// name is a short substring of another's can shadow it. That is a known
// limitation of the source data's address format, kept as-is.
func matchContainment(address string, stations []models.Station) *models.Station {
	addr := normalize(address)
	if addr == "" {
		return nil
	}
	for i := range stations {
		name := normalize(stations[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(addr, name) || strings.Contains(name, addr) {
			return &stations[i]
		}
	}
	return nil
}

// matchTerminalCode looks for a contiguous 6-digit run in the address and
// matches it against the operator-assigned terminal codes.
func matchTerminalCode(address string, stations []models.Station) *models.Station {
	code := findSixDigitRun(address)
	if code == "" {
		return nil
	}
	for i := range stations {
		if stations[i].TerminalName == code {
			return &stations[i]
		}
	}
	return nil
}

// matchTokenOverlap tokenizes both sides and accepts the first station
// sharing at least two tokens with the address. A token counts as shared
// when it contains, or is contained by, any station token.
func matchTokenOverlap(address string, stations []models.Station) *models.Station {
	addrTokens := tokenize(address)
	if len(addrTokens) == 0 {
		return nil
	}
	for i := range stations {
		nameTokens := tokenize(stations[i].Name)
		if len(nameTokens) == 0 {
			continue
		}
		matches := 0
		for _, at := range addrTokens {
			for _, nt := range nameTokens {
				if strings.Contains(at, nt) || strings.Contains(nt, at) {
					matches++
					break
				}
			}
		}
		if matches >= 2 {
			return &stations[i]
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenize splits on whitespace and commas and keeps lowercase tokens
// longer than two characters, dropping noise words like "st" or road
// number fragments.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// findSixDigitRun returns the first run of digits in s that is exactly
// six digits long. Longer runs do not qualify; terminal codes are always
// six digits.
func findSixDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start == 6 {
				return s[start:i]
			}
			start = -1
		}
	}
	if start >= 0 && len(s)-start == 6 {
		return s[start:]
	}
	return ""
}
