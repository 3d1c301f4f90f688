package index

import (
	"strings"

	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/pak"
)

// Tier identifies which table answered a lookup.
type Tier int

const (
	TierNone Tier = iota
	// TierLightning is the hand-maintained override table.
	TierLightning
	// TierQuick is the prefix index derived from the source archives.
	TierQuick
)

func (t Tier) String() string {
	switch t {
	case TierLightning:
		return "lightning"
	case TierQuick:
		return "quick"
	default:
		return "none"
	}
}

// Lister reads the directory of an archive without decompressing it.
type Lister interface {
	List(path string) ([]*pak.Header, error)
}

// Index is the two-tier search index.
type Index struct {
	overrides Overrides
	derived   map[string][]string
	skipped   []string
}

// Build lists every source archive once and records, for each prefix, the
// archives holding at least one entry under it. Archives that fail to list
// are logged and left out; see Skipped.
func Build(lister Lister, archives []string, overrides Overrides) *Index {
	logger := logging.GetLogger("index")
	done := logging.LogOperationStart(logger, "index build")
	defer done()

	if overrides == nil {
		overrides = Overrides{}
	}
	idx := &Index{overrides: overrides, derived: make(map[string][]string)}

	for _, archive := range archives {
		headers, err := lister.List(archive)
		if err != nil {
			logger.Warn().Err(err).Str("archive", archive).Msg("Skipping unreadable source archive")
			idx.skipped = append(idx.skipped, archive)
			continue
		}
		for _, h := range headers {
			if h.IsDir() {
				continue
			}
			prefix := Prefix(h.Name)
			if prefix == "" {
				continue
			}
			idx.derived[prefix] = appendUnique(idx.derived[prefix], archive)
		}
	}

	logger.Info().
		Int("archives", len(archives)).
		Int("prefixes", len(idx.derived)).
		Int("overrides", len(idx.overrides)).
		Msg("Search index built")
	return idx
}

// Lookup returns the archives that may contain name, lightning tier first.
// A lightning entry also covers the folders below it. ok is false when
// neither tier knows the prefix; the caller then treats the file as new.
func (idx *Index) Lookup(name string) (archives []string, tier Tier, ok bool) {
	prefix := Prefix(name)
	if prefix == "" {
		return nil, TierNone, false
	}
	for p := prefix; p != ""; p = parent(p) {
		if a, found := idx.overrides[p]; found && len(a) > 0 {
			return a, TierLightning, true
		}
	}
	if a, found := idx.derived[prefix]; found {
		return a, TierQuick, true
	}
	return nil, TierNone, false
}

// Skipped returns the archives that could not be listed during Build.
func (idx *Index) Skipped() []string {
	return idx.skipped
}

// Prefixes returns the number of derived prefixes.
func (idx *Index) Prefixes() int {
	return len(idx.derived)
}

func parent(prefix string) string {
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		return prefix[:i]
	}
	return ""
}
