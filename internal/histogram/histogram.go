// Package histogram bins ride durations and ride start times into
// gap-free, labeled histograms. The three axes (duration, time-of-day,
// calendar) share one engine and differ only in their binning policy.
package histogram

import (
	"sort"

	"cycleledger.app/internal/models"
)

// Axis is the binning policy for one histogram dimension. Bin starts are
// int64 values in an axis-specific unit (seconds, minutes-since-midnight
// or epoch milliseconds).
type Axis struct {
	// Align returns the start of the first bin given the minimum
	// observed value.
	Align func(min int64) int64
	// Next returns the start of the bin following the one at start.
	Next func(start int64) int64
	// Label renders a human-readable range label for the bin at start.
	Label func(start int64) string
	// Domain, when non-nil, pins the binning range regardless of the
	// observed values (the time-of-day axis always spans a full day).
	Domain *DomainBounds
}

// DomainBounds is a fixed inclusive value range for an axis.
type DomainBounds struct {
	Min int64
	Max int64
}

// Bucketize bins values according to the axis policy. Bins are
// contiguous from the aligned minimum to the maximum, zero-count bins
// included. ok is false when there are no values to bin; the caller
// renders that as "no data", not as an error.
func Bucketize(values []int64, axis Axis) (models.Histogram, bool) {
	if len(values) == 0 {
		return models.Histogram{}, false
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if axis.Domain != nil {
		lo, hi = axis.Domain.Min, axis.Domain.Max
	}

	var starts []int64
	var labels []string
	for s := axis.Align(lo); s <= hi; s = axis.Next(s) {
		starts = append(starts, s)
		labels = append(labels, axis.Label(s))
	}

	counts := make([]int, len(starts))
	for _, v := range values {
		// Last bin start <= v.
		i := sort.Search(len(starts), func(i int) bool { return starts[i] > v }) - 1
		if i < 0 || i >= len(counts) {
			continue
		}
		counts[i]++
	}

	return models.Histogram{Labels: labels, Counts: counts}, true
}
