package area

import (
	"github.com/arthur-debert/omnipak/pkg/diff"
)

// Candidate is a target line that may hold an operation's anchor.
type Candidate struct {
	Index int
	Score float64
}

// Candidates scores key against every line of target and keeps the best k.
//
// The list stays sorted by descending score. A line is inserted when the
// list has room or when it scores at least as well as the current worst,
// ahead of any entries with the same score, and the tail is then trimmed
// to k. Among equal scorers the later lines therefore come first and the
// earliest ones are the first to fall off.
func Candidates(target []string, key string, k int) []Candidate {
	sim := diff.NewSimilarity(key)
	list := make([]Candidate, 0, k+1)

	for i, line := range target {
		full := len(list) >= k
		if full && sim.UpperBound(line) < list[len(list)-1].Score {
			continue
		}
		score := sim.Score(line)
		if full && score < list[len(list)-1].Score {
			continue
		}

		pos := len(list)
		for p, c := range list {
			if c.Score <= score {
				pos = p
				break
			}
		}
		list = append(list, Candidate{})
		copy(list[pos+1:], list[pos:])
		list[pos] = Candidate{Index: i, Score: score}
		if len(list) > k {
			list = list[:k]
		}
	}
	return list
}

// AreaScore sums the per-position similarity of two areas.
func AreaScore(a, b []string) float64 {
	var total float64
	for k := range a {
		total += diff.Ratio(a[k], b[k])
	}
	return total
}
