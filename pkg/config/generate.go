package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/omnipak/pkg/errors"
)

const generatedHeader = `# omnipak configuration.
# Only "executable" is required; everything else falls back to the
# built-in defaults. Any key can also be set through the environment,
# e.g. OMNIPAK_MERGE_AREA_SIZE=7.

`

// Generate renders a starter config file holding the defaults and the
// given executable path.
func Generate(executable string) ([]byte, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfg.Executable = executable

	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
	}
	return buf.Bytes(), nil
}
