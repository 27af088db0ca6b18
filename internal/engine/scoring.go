package engine

import "math"

// Scorer computes the heuristic scores used to choose between candidate
// combinations. Length and waste scores depend only on the active length and
// target vectors; they are cached and recomputed whenever those change.
type Scorer struct {
	PcsWeight    float64
	WasteWeight  float64
	LengthWeight float64

	lengthScores []float64
	wasteScores  []float64
}

// NewScorer returns a scorer with the given weights.
func NewScorer(pcsWeight, wasteWeight, lengthWeight float64) *Scorer {
	return &Scorer{
		PcsWeight:    pcsWeight,
		WasteWeight:  wasteWeight,
		LengthWeight: lengthWeight,
	}
}

// LengthScore favors using the longest stock first: length relative to the
// longest available length, scaled by the length weight.
func (s *Scorer) LengthScore(length float64, lengths []float64) float64 {
	maxLength := maxOf(lengths)
	if maxLength == 0 {
		return 0
	}
	return length / maxLength * s.LengthWeight
}

// CalculateLengthScores recomputes the cached per-length scores.
func (s *Scorer) CalculateLengthScores(lengths []float64) []float64 {
	s.lengthScores = make([]float64, len(lengths))
	for i, l := range lengths {
		s.lengthScores[i] = s.LengthScore(l, lengths)
	}
	return s.lengthScores
}

// SoloWasteScore measures the inherent waste potential of one length: the
// smallest remainder it leaves against any target, normalized by the largest
// target. Higher raw waste yields a higher score; this deliberately mirrors
// the reference heuristic.
func (s *Scorer) SoloWasteScore(length float64, targets []float64) float64 {
	if length <= 0 || len(targets) == 0 {
		return 0
	}
	waste := math.MaxFloat64
	for _, t := range targets {
		w := t - math.Floor(t/length+epsilon)*length
		if w < waste {
			waste = w
		}
	}
	maxTarget := maxOf(targets)
	if maxTarget == 0 {
		return 0
	}
	return waste / maxTarget * s.WasteWeight
}

// CalculateWasteScores recomputes the cached per-length waste scores.
func (s *Scorer) CalculateWasteScores(lengths, targets []float64) []float64 {
	s.wasteScores = make([]float64, len(lengths))
	for i, l := range lengths {
		s.wasteScores[i] = s.SoloWasteScore(l, targets)
	}
	return s.wasteScores
}

// PieceScores favors draining abundant stock: each length's share of the
// total remaining pieces, scaled by the pieces weight.
func (s *Scorer) PieceScores(pieces []int) []float64 {
	scores := make([]float64, len(pieces))
	var total int
	for _, p := range pieces {
		total += p
	}
	if total == 0 {
		return scores
	}
	for i, p := range pieces {
		scores[i] = float64(p) / float64(total) * s.PcsWeight
	}
	return scores
}

// ScoreCombination computes the composite score of a combination: per used
// length, the piece share plus the waste share plus half the length share,
// each share vector normalized to sum to one, weighted by the piece count.
func (s *Scorer) ScoreCombination(combination []int, pieces []int) float64 {
	wasteShares := normalize(s.wasteScores)
	lengthShares := normalize(s.lengthScores)
	pcsScores := s.PieceScores(pieces)

	var score float64
	for i, c := range combination {
		if c == 0 {
			continue
		}
		weight := pcsScores[i]
		if i < len(wasteShares) {
			weight += wasteShares[i]
		}
		if i < len(lengthShares) {
			weight += 0.5 * lengthShares[i]
		}
		score += float64(c) * weight
	}
	return score
}

// normalize scales a vector to sum to one, or returns zeros if the sum is 0.
func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total
	}
	return out
}

func maxOf(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
