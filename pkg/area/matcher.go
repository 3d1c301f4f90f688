package area

import (
	"github.com/arthur-debert/omnipak/pkg/diff"
	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/logging"
)

// Matcher locates and applies edit operations.
type Matcher struct {
	opts Options
}

// NewMatcher returns a Matcher using normalized opts.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts.Normalize()}
}

// Options returns the effective options.
func (m *Matcher) Options() Options {
	return m.opts
}

// Locate returns the index in target that best matches the anchor of op,
// whose anchor index refers to source. Ties go to the candidate evaluated
// last.
func (m *Matcher) Locate(target []string, op diff.Op, source []string) (int, error) {
	if len(target) == 0 {
		return -1, errors.New(errors.ErrAreaMatch, "no candidate line: target file is empty").
			WithDetail("anchor", op.LookupKey)
	}

	candidates := Candidates(target, op.LookupKey, m.opts.Accuracy)
	if len(candidates) == 0 {
		return -1, errors.New(errors.ErrAreaMatch, "no candidate line for anchor").
			WithDetail("anchor", op.LookupKey)
	}

	want := Extract(source, op.Anchor, m.opts.Size)
	best, bestScore := -1, -1.0
	for _, c := range candidates {
		score := AreaScore(want, Extract(target, c.Index, m.opts.Size))
		if score >= bestScore {
			best, bestScore = c.Index, score
		}
	}
	return best, nil
}

// Apply performs every operation of script on a copy of target and returns
// the result. An operation that cannot be placed aborts the whole script.
func (m *Matcher) Apply(target []string, script *diff.Script) ([]string, error) {
	logger := logging.GetLogger("area")
	out := append([]string(nil), target...)

	for _, op := range script.Ops {
		if op.Placement == diff.End && op.Kind == diff.Add && len(out) > 0 {
			out = append(out, op.Line)
			continue
		}

		idx, err := m.Locate(out, op, script.Lines(op.Source))
		if err != nil {
			return nil, err
		}

		switch {
		case op.Kind == diff.Remove:
			out = append(out[:idx], out[idx+1:]...)
		case op.Placement == diff.Before:
			out = insert(out, idx, op.Line)
		default:
			out = insert(out, idx+1, op.Line)
		}
		logger.Trace().
			Str("op", op.Kind.String()).
			Str("line", op.Line).
			Int("index", idx).
			Msg("Applied operation")
	}
	return out, nil
}

func insert(lines []string, at int, line string) []string {
	lines = append(lines, "")
	copy(lines[at+1:], lines[at:])
	lines[at] = line
	return lines
}
