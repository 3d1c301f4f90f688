package index

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/omnipak/pkg/errors"
)

// DiscoverArchives walks root and returns every *.pak file in lexical
// order, skipping the paths in exclude.
func DiscoverArchives(root string, exclude ...string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	var archives []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".pak") {
			return nil
		}
		if abs, err := filepath.Abs(p); err == nil && skip[abs] {
			return nil
		}
		archives = append(archives, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot scan data directory").WithDetail("path", root)
	}
	return archives, nil
}
