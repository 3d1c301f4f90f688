package merge

import (
	"github.com/beevik/etree"

	"github.com/arthur-debert/omnipak/pkg/pak"
)

// checkXML parses a merged XML entry. Fuzzy placement can break nesting;
// the result is still written, the caller only warns.
func checkXML(e *pak.Entry) error {
	if !e.Mergeable() || e.Ext() != ".xml" {
		return nil
	}
	doc := etree.NewDocument()
	return doc.ReadFromBytes(e.Bytes())
}
