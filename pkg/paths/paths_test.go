package paths

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/omnipak/pkg/config"
	"github.com/arthur-debert/omnipak/pkg/errors"
)

func TestDerive(t *testing.T) {
	root := filepath.Join(t.TempDir(), "KCD")
	exe := filepath.Join(root, "Bin", "Win64", "Game.exe")

	l, err := Derive(exe, config.PathsConfig{}, "zzz_omnipak.pak")
	require.NoError(t, err)

	assert.Equal(t, root, l.Root)
	assert.Equal(t, filepath.Join(root, "Bin", "Win64"), l.ExeDir)
	assert.Equal(t, filepath.Join(root, "Bin", "Win64", "user.cfg"), l.UserConfig)
	assert.Equal(t, filepath.Join(root, "Data"), l.Data)
	assert.Equal(t, filepath.Join(root, "Localization"), l.Localization)
	assert.Equal(t, filepath.Join(root, "omnipak", "mods"), l.Mods)
	assert.Equal(t, filepath.Join(root, "omnipak", "reports"), l.Reports)
	assert.Equal(t, filepath.Join(root, "omnipak", "logs"), l.Logs)
	assert.Equal(t, filepath.Join(root, "omnipak", "load_order"), l.LoadOrder)
	assert.Equal(t, filepath.Join(root, "Data", "zzz_omnipak.pak"), l.Output)
}

func TestDerive_Overrides(t *testing.T) {
	root := filepath.Join(t.TempDir(), "KCD")
	exe := filepath.Join(root, "Bin", "Win64", "Game.exe")
	abs := filepath.Join(t.TempDir(), "my-mods")

	l, err := Derive(exe, config.PathsConfig{
		Mods:      abs,
		Reports:   "diffs",
		Logs:      "~/omnipak-logs",
		LoadOrder: "order.txt",
	}, "out.pak")
	require.NoError(t, err)

	assert.Equal(t, abs, l.Mods)
	assert.Equal(t, filepath.Join(root, "diffs"), l.Reports)
	assert.Equal(t, filepath.Join(xdg.Home, "omnipak-logs"), l.Logs)
	assert.Equal(t, filepath.Join(root, "order.txt"), l.LoadOrder)
	assert.Equal(t, filepath.Join(root, "Data", "out.pak"), l.Output)
}

func TestDerive_NoExecutable(t *testing.T) {
	_, err := Derive("  ", config.PathsConfig{}, "out.pak")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	root := filepath.Join(t.TempDir(), "game")
	cfg.Executable = filepath.Join(root, "Bin", "Win64", "Game.exe")

	l, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Data", cfg.Merge.OutputName), l.Output)
}

func TestXDGDirs(t *testing.T) {
	assert.Equal(t, filepath.Join(xdg.ConfigHome, "omnipak"), ConfigDir())
	assert.Equal(t, filepath.Join(xdg.StateHome, "omnipak"), StateDir())
}
