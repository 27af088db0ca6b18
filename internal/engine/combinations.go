package engine

import (
	"math"
	"slices"
)

// epsilon guards the floor/ceil boundaries so that exact multiples like
// 9.0/3.0 are not lost to floating-point noise. Length and target
// comparisons in this package never test float equality directly.
const epsilon = 1e-9

// generateCombinations enumerates every integer combination of lengths whose
// sum lies within tolerance of target, capped per length by maxPieces.
//
// The recursion walks the length vector from the last index down, so the
// enumeration order is stable for a fixed input ordering: the last length's
// count is the outermost loop, counts ascending. Callers rely on that order
// for deterministic tie-breaking between equally scored combinations.
func generateCombinations(target, tolerance float64, lengths []float64, maxPieces []int) [][]int {
	if len(lengths) == 0 {
		return nil
	}

	var combos [][]int
	counts := make([]int, len(lengths))

	var recurse func(k int, remaining float64)
	recurse = func(k int, remaining float64) {
		length := lengths[k]

		if k == 0 {
			// Base case: the count must reach remaining within tolerance
			// but never exceed it. Negative counts are meaningless, so the
			// lower bound is clamped at zero.
			minCount := int(math.Ceil((remaining-tolerance)/length - epsilon))
			if minCount < 0 {
				minCount = 0
			}
			maxCount := int(math.Floor(remaining/length + epsilon))
			if mp := maxPieces[0]; maxCount > mp {
				maxCount = mp
			}
			for n := minCount; n <= maxCount; n++ {
				counts[0] = n
				combos = append(combos, slices.Clone(counts))
			}
			counts[0] = 0
			return
		}

		maxCount := int(math.Floor(remaining/length + epsilon))
		if mp := maxPieces[k]; maxCount > mp {
			maxCount = mp
		}
		for n := 0; n <= maxCount; n++ {
			rest := remaining - float64(n)*length
			if rest < -tolerance-epsilon {
				break
			}
			counts[k] = n
			recurse(k-1, rest)
		}
		counts[k] = 0
	}

	recurse(len(lengths)-1, target)
	return combos
}

// combinedLength returns the total length of a combination.
func combinedLength(combination []int, lengths []float64) float64 {
	var total float64
	for i, c := range combination {
		total += float64(c) * lengths[i]
	}
	return total
}

// isZeroCombination reports whether a combination uses no pieces at all.
// Such a combination can appear once the tolerance has escalated past a
// target; applying it would make no progress, so the search skips it.
func isZeroCombination(combination []int) bool {
	for _, c := range combination {
		if c != 0 {
			return false
		}
	}
	return true
}
