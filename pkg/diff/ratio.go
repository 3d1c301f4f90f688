package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// MaxRatio is the similarity of identical lines.
const MaxRatio = 100.0

func chars(s string) []string {
	return strings.Split(s, "")
}

// Ratio returns the 0-100 similarity of a and b, based on the size of their
// common subsequences.
func Ratio(a, b string) float64 {
	if a == b {
		return MaxRatio
	}
	m := difflib.NewMatcherWithJunk(chars(a), chars(b), false, nil)
	return m.Ratio() * MaxRatio
}

// Similarity scores many lines against one fixed line. The fixed line is
// indexed once.
type Similarity struct {
	key     string
	matcher *difflib.SequenceMatcher
}

// NewSimilarity prepares scoring against key.
func NewSimilarity(key string) *Similarity {
	return &Similarity{
		key:     key,
		matcher: difflib.NewMatcherWithJunk(nil, chars(key), false, nil),
	}
}

// Score returns Ratio(line, key).
func (s *Similarity) Score(line string) float64 {
	if line == s.key {
		return MaxRatio
	}
	s.matcher.SetSeq1(chars(line))
	return s.matcher.Ratio() * MaxRatio
}

// UpperBound returns a cheap bound that Score(line) never exceeds.
func (s *Similarity) UpperBound(line string) float64 {
	if line == s.key {
		return MaxRatio
	}
	s.matcher.SetSeq1(chars(line))
	return s.matcher.QuickRatio() * MaxRatio
}
