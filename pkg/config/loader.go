package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	omnierrors "github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/logging"
)

const (
	// FileName is the config file looked up in the search path.
	FileName = "omnipak.toml"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "OMNIPAK_"
	// AppName names the XDG subdirectories.
	AppName = "omnipak"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// sections are the tables of the config file; env names are split after them.
var sections = []string{"merge", "paths", "index"}

// envKey maps OMNIPAK_MERGE_AREA_SIZE to merge.area_size.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// SearchPaths lists the config files tried when no explicit path is given.
func SearchPaths() []string {
	return []string{
		FileName,
		filepath.Join(xdg.ConfigHome, AppName, FileName),
	}
}

// FindFile returns the config file to load. An explicit path must exist;
// otherwise the first existing search path wins and "" means none.
func FindFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", omnierrors.Wrap(err, omnierrors.ErrConfigLoad, "config file not found").
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, omnierrors.Wrap(err, omnierrors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load builds the configuration from defaults, the config file and the
// environment. It does not validate; call Config.Validate.
func Load(explicit string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, omnierrors.Wrap(err, omnierrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path, err := FindFile(explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, omnierrors.Wrap(err, omnierrors.ErrConfigParse, "failed to parse config file").
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Config file loaded")
	} else {
		logger.Debug().Strs("searched", SearchPaths()).Msg("No config file found, using defaults")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, omnierrors.Wrap(err, omnierrors.ErrConfigLoad, "failed to load env vars")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, omnierrors.Wrap(err, omnierrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
