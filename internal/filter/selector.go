package filter

import (
	"math"
	"sort"
)

// selectIndices picks the token indices to keep: the top K by score with
// stable index tie-breaks, unioned with every critical-tier token, then a
// single gap-fill pass. The returned slice is in ascending index order.
func (f *Filter) selectIndices(scores []float64) []int {
	n := len(scores)
	k := int(math.Ceil(float64(n) * f.cfg.TargetRatio))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	kept := make(map[int]bool, k)
	for _, idx := range order[:k] {
		kept[idx] = true
	}

	// Critical and protected tokens are unconditional members, even when
	// they alone exceed K.
	for i, s := range scores {
		if s >= criticalTier {
			kept[i] = true
		}
	}

	f.gapFill(kept, scores)

	result := make([]int, 0, len(kept))
	for i := range kept {
		result = append(result, i)
	}
	sort.Ints(result)
	return result
}

// gapFill promotes the best unselected token inside any oversized gap
// between consecutive anchors (kept tokens scoring above the anchor
// threshold). One token per gap, anchors fixed before the pass, no
// recursion.
func (f *Filter) gapFill(kept map[int]bool, scores []float64) {
	const anchorThreshold = 0.8

	var anchors []int
	for i := range kept {
		if scores[i] > anchorThreshold {
			anchors = append(anchors, i)
		}
	}
	sort.Ints(anchors)

	for i := 1; i < len(anchors); i++ {
		a, b := anchors[i-1], anchors[i]
		if b-a <= f.cfg.MinGapBetweenCritical {
			continue
		}

		best := -1
		for j := a + 1; j < b; j++ {
			if kept[j] {
				continue
			}
			// Strict > keeps the lowest index on ties.
			if best < 0 || scores[j] > scores[best] {
				best = j
			}
		}
		if best >= 0 {
			kept[best] = true
		}
	}
}
