package omnipak

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

// FormatError renders err for the terminal. Coded errors list their
// details (mod, path, archive, ...) one per line so the operator can tell
// which mod and file caused a failure.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(styles.Render(styles.Error, fmt.Sprintf("Error: %v", err)))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(styles.Render(styles.Detail, fmt.Sprintf("%s: %v", k, details[k])))
	}

	if errors.IsErrorCode(err, errors.ErrAreaMatch) {
		b.WriteString("\n")
		b.WriteString(styles.Render(styles.Muted,
			"The mod's edit could not be placed in the merged file. Move the mod earlier or later in the load order, or remove it."))
	}
	return b.String()
}
