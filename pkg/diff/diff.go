package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind is the type of an edit operation.
type Kind int

const (
	Add Kind = iota
	Remove
)

func (k Kind) String() string {
	if k == Remove {
		return "remove"
	}
	return "add"
}

// Placement says where an added line goes relative to its anchor.
type Placement int

const (
	// Before inserts immediately before the anchor line.
	Before Placement = iota
	// After inserts immediately after the anchor line.
	After
	// End appends to the file; used when the original had no lines at all.
	End
)

// Source names the file an anchor index refers to.
type Source int

const (
	SourceOriginal Source = iota
	SourceModified
)

// Op is one line-level edit.
type Op struct {
	Kind Kind
	// Line is the text added or removed.
	Line string
	// LookupKey is the anchor line text used to find the edit position.
	LookupKey string
	// Anchor is the index of LookupKey in the file named by Source.
	Anchor    int
	Source    Source
	Placement Placement
}

func (o Op) String() string {
	sign := "+"
	if o.Kind == Remove {
		sign = "-"
	}
	return fmt.Sprintf("%s%s", sign, o.Line)
}

// Script is the edit script from Original to Modified.
type Script struct {
	Original []string
	Modified []string
	Ops      []Op
}

// Lines returns the file an op's anchor refers to.
func (s *Script) Lines(src Source) []string {
	if src == SourceModified {
		return s.Modified
	}
	return s.Original
}

// Empty reports whether the two files were identical.
func (s *Script) Empty() bool {
	return len(s.Ops) == 0
}

// Compute aligns original with modified and returns the edit script.
// Removals of a replaced block come before its additions.
func Compute(original, modified []string) *Script {
	s := &Script{Original: original, Modified: modified}
	m := difflib.NewMatcher(original, modified)

	for _, oc := range m.GetOpCodes() {
		switch oc.Tag {
		case 'e':
			continue
		case 'd':
			s.removes(oc.I1, oc.I2)
		case 'i':
			s.adds(oc.I1, oc.I1-1, oc.J1, oc.J2)
		case 'r':
			s.removes(oc.I1, oc.I2)
			s.adds(oc.I2, oc.I1-1, oc.J1, oc.J2)
		}
	}
	return s
}

func (s *Script) removes(i1, i2 int) {
	for i := i1; i < i2; i++ {
		s.Ops = append(s.Ops, Op{
			Kind:      Remove,
			Line:      s.Original[i],
			LookupKey: s.Original[i],
			Anchor:    i,
			Source:    SourceOriginal,
		})
	}
}

// adds emits additions of Modified[j1:j2]. They anchor before
// Original[before] when it exists, otherwise after Original[after], each
// later line chaining after the one added just before it.
func (s *Script) adds(before, after, j1, j2 int) {
	for j := j1; j < j2; j++ {
		op := Op{Kind: Add, Line: s.Modified[j]}
		switch {
		case before < len(s.Original):
			op.LookupKey, op.Anchor, op.Source, op.Placement = s.Original[before], before, SourceOriginal, Before
		case j > j1:
			op.LookupKey, op.Anchor, op.Source, op.Placement = s.Modified[j-1], j-1, SourceModified, After
		case after >= 0:
			op.LookupKey, op.Anchor, op.Source, op.Placement = s.Original[after], after, SourceOriginal, After
		default:
			op.Anchor, op.Placement = -1, End
		}
		s.Ops = append(s.Ops, op)
	}
}

// Unified renders the script as a unified diff for reports.
func (s *Script) Unified(fromName, toName string, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(s.Original),
		B:        withNewlines(s.Modified),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	})
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSuffix(l, "\r") + "\n"
	}
	return out
}
