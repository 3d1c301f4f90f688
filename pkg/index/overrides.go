package index

import (
	_ "embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/omnipak/pkg/errors"
)

//go:embed lightning.yaml
var builtinOverrides []byte

// Overrides maps a folder prefix to archive paths, in lookup order.
type Overrides map[string][]string

// ParseOverrides reads a YAML table of prefix -> archive names. Relative
// archive names are resolved against dataDir.
func ParseOverrides(data []byte, dataDir string) (Overrides, error) {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse override table")
	}
	out := make(Overrides, len(raw))
	for prefix, archives := range raw {
		key := Prefix(prefix + "/")
		if key == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "override prefix %q does not name a folder", prefix).
				WithDetail("prefix", prefix)
		}
		for _, a := range archives {
			if !filepath.IsAbs(a) {
				a = filepath.Join(dataDir, filepath.FromSlash(a))
			}
			out[key] = appendUnique(out[key], a)
		}
	}
	return out, nil
}

// BuiltinOverrides returns the lightning table shipped with omnipak.
func BuiltinOverrides(dataDir string) Overrides {
	o, err := ParseOverrides(builtinOverrides, dataDir)
	if err != nil {
		panic(err)
	}
	return o
}

// LoadOverrides returns the built-in table extended by the YAML file at
// path. Entries from the file replace built-in entries with the same prefix.
// An empty path yields the built-in table.
func LoadOverrides(path, dataDir string) (Overrides, error) {
	o := BuiltinOverrides(dataDir)
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read override table").
			WithDetail("path", path)
	}
	extra, err := ParseOverrides(data, dataDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "invalid override table").
			WithDetail("path", path)
	}
	for k, v := range extra {
		o[k] = v
	}
	return o, nil
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
