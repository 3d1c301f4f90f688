package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/omnipak/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Executable)
	assert.Equal(t, 5, cfg.Merge.AreaSize)
	assert.Equal(t, 10, cfg.Merge.Accuracy)
	assert.Equal(t, "zzz_omnipak.pak", cfg.Merge.OutputName)
	assert.True(t, cfg.Merge.Reports)
	assert.True(t, cfg.Merge.ValidateXML)
	assert.Contains(t, cfg.Merge.BinaryExtensions, "dds")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
executable = "/games/kcd/Bin/Win64/Game.exe"

[merge]
area_size = 6
binary_extensions = ["dds"]
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, p, cfg.Source)
	assert.Equal(t, "/games/kcd/Bin/Win64/Game.exe", cfg.Executable)
	assert.Equal(t, 6, cfg.Merge.AreaSize)
	assert.Equal(t, 7, cfg.AreaOptions().Size)
	assert.Equal(t, 10, cfg.Merge.Accuracy)
	assert.Equal(t, []string{"dds"}, cfg.Merge.BinaryExtensions)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, `
executable = "/from/file"

[merge]
accuracy = 3
`)
	t.Setenv("OMNIPAK_EXECUTABLE", "/from/env")
	t.Setenv("OMNIPAK_MERGE_ACCURACY", "12")
	t.Setenv("OMNIPAK_MERGE_BINARY_EXTENSIONS", "dds,png")
	t.Setenv("OMNIPAK_PATHS_LOAD_ORDER", "/tmp/order")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Executable)
	assert.Equal(t, 12, cfg.Merge.Accuracy)
	assert.Equal(t, []string{"dds", "png"}, cfg.Merge.BinaryExtensions)
	assert.Equal(t, "/tmp/order", cfg.Paths.LoadOrder)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_BadSyntax(t *testing.T) {
	p := writeConfig(t, "executable = \n[merge\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OMNIPAK_EXECUTABLE", "executable"},
		{"OMNIPAK_MERGE_AREA_SIZE", "merge.area_size"},
		{"OMNIPAK_MERGE_VALIDATE_XML", "merge.validate_xml"},
		{"OMNIPAK_INDEX_OVERRIDES_FILE", "index.overrides_file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Default()
		require.NoError(t, err)
		cfg.Executable = "/game.exe"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no executable", func(c *Config) { c.Executable = " " }, false},
		{"zero accuracy", func(c *Config) { c.Merge.Accuracy = 0 }, false},
		{"zero area", func(c *Config) { c.Merge.AreaSize = 0 }, false},
		{"output with dir", func(c *Config) { c.Merge.OutputName = "sub/out.pak" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestGenerate_RoundTrips(t *testing.T) {
	data, err := Generate("/games/kcd/Bin/Win64/Game.exe")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# omnipak configuration.")

	p := writeConfig(t, string(data))
	cfg, err := Load(p)
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "/games/kcd/Bin/Win64/Game.exe", cfg.Executable)
	assert.Equal(t, def.Merge, cfg.Merge)
	assert.NoError(t, cfg.Validate())
}
