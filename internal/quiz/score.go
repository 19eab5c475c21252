package quiz

import "math"

// Band is the qualitative label for a score. Bands are display-only:
// nothing downstream branches on them.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGreat     Band = "great"
	BandGood      Band = "good"
	BandPractice  Band = "keep practicing"
)

// Score is a computed session result.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`

	// Percent is round(100*Correct/Total), an integer in [0,100].
	Percent int `json:"percent"`

	Band Band `json:"band"`
}

// NewScore computes the percentage and band for correct out of total.
func NewScore(correct, total int) Score {
	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(correct) / float64(total)))
	}
	return Score{
		Correct: correct,
		Total:   total,
		Percent: pct,
		Band:    BandFor(pct),
	}
}

// BandFor maps a percentage to its band. Thresholds are inclusive
// lower bounds: 90 excellent, 75 great, 60 good.
func BandFor(percent int) Band {
	switch {
	case percent >= 90:
		return BandExcellent
	case percent >= 75:
		return BandGreat
	case percent >= 60:
		return BandGood
	default:
		return BandPractice
	}
}
