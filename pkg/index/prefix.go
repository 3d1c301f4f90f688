package index

import (
	"strings"

	"github.com/arthur-debert/omnipak/pkg/pak"
)

// PrefixDepth is the number of leading path segments that form a prefix.
const PrefixDepth = 3

// Prefix returns the folder prefix used as index key for name. Trailing
// segments that look like file names (contain a dot) are dropped, so a
// prefix always names a folder. An empty result means name has no folder
// and cannot be indexed.
func Prefix(name string) string {
	segs := strings.Split(pak.Key(name), "/")
	if len(segs) > PrefixDepth {
		segs = segs[:PrefixDepth]
	}
	for len(segs) > 0 {
		last := segs[len(segs)-1]
		if last != "" && !strings.Contains(last, ".") {
			break
		}
		segs = segs[:len(segs)-1]
	}
	return strings.Join(segs, "/")
}
