// Package report archives every computed diff as a plain text file. Reports
// are diagnostics only: nothing reads them back, and failing to write one
// never stops a merge.
package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/omnipak/pkg/diff"
	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/types"
)

// Ext is the extension of report files.
const Ext = ".diff"

// Writer numbers reports with a counter that keeps increasing across runs.
type Writer struct {
	fs   types.FS
	dir  string
	next int
}

// NewWriter returns a Writer for dir. The counter continues after the
// highest numbered report already present.
func NewWriter(fs types.FS, dir string) *Writer {
	w := &Writer{fs: fs, dir: dir, next: 1}
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return w
	}
	for _, e := range entries {
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), Ext))
		if err == nil && strings.HasSuffix(e.Name(), Ext) && n >= w.next {
			w.next = n + 1
		}
	}
	return w
}

// Write stores the report for one merge operation and returns its path.
// A nil Writer discards reports.
func (w *Writer) Write(mod, path string, script *diff.Script) (string, error) {
	if w == nil {
		return "", nil
	}
	body, err := script.Unified("original/"+path, mod+"/"+path, 3)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render diff")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# mod: %s\n# path: %s\n# operations: %d\n", mod, path, len(script.Ops))
	for _, op := range script.Ops {
		fmt.Fprintf(&b, "#   %s anchor=%d %q\n", op.Kind, op.Anchor, op.LookupKey)
	}
	b.WriteString(body)

	if err := w.fs.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "cannot create reports directory").
			WithDetail("path", w.dir)
	}
	name := filepath.Join(w.dir, fmt.Sprintf("%06d%s", w.next, Ext))
	if err := w.fs.WriteFile(name, []byte(b.String()), 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrFileWrite, "cannot write report").WithDetail("path", name)
	}
	w.next++
	return name, nil
}
