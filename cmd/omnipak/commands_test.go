package omnipak

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/pak"
	"github.com/arthur-debert/omnipak/pkg/testutil"
	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

func newGame(t *testing.T) (*testutil.Game, string) {
	t.Helper()
	styles.SetPlain(true)
	t.Cleanup(func() { styles.SetPlain(false) })

	g := testutil.NewGame(t, "dds")
	g.DataArchive(t, "Tables.pak",
		pak.NewLinesEntry("libs/tables/rpg/stats.xml", []string{"<Stats>", "<Row a=\"1\"/>", "</Stats>"}))
	g.Mod(t, "a.pak",
		pak.NewLinesEntry("libs/tables/rpg/stats.xml", []string{"<Stats>", "<Row a=\"10\"/>", "</Stats>"}))
	g.Mod(t, "b.pak", pak.NewBinaryEntry("textures/rock.dds", []byte{1, 2, 3}))

	return g, g.Config(t, "[merge]\nbinary_extensions = [\"dds\"]\n")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMergeCmd(t *testing.T) {
	g, cfg := newGame(t)

	out, err := execute(t, "--config", cfg, "merge", "--no-wait")
	require.NoError(t, err)

	assert.Contains(t, out, "Created load order file")
	assert.Contains(t, out, "Composite archive written to "+g.Output())
	assert.Contains(t, out, "Finished in")
	assert.Equal(t, []string{"<Stats>", "<Row a=\"10\"/>", "</Stats>"},
		g.TextEntry(t, g.Output(), "libs/tables/rpg/stats.xml"))
	assert.True(t, testutil.FileExists(t, filepath.Join(g.Root, "omnipak", "reports", "000001.diff")))
}

func TestMergeCmd_DryRun(t *testing.T) {
	g, cfg := newGame(t)

	out, err := execute(t, "--config", cfg, "merge", "--dry-run", "--no-wait", "--no-reports")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run complete")

	assert.False(t, testutil.FileExists(t, g.Output()))
	_, err = os.Stat(filepath.Join(g.Root, "omnipak", "reports"))
	assert.True(t, os.IsNotExist(err))
}

func TestOrderCmds(t *testing.T) {
	g, cfg := newGame(t)

	out, err := execute(t, "--config", cfg, "order", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "  1  a.pak")
	assert.Contains(t, out, "  2  b.pak")

	g.SetOrder(t, "b.pak", "ghost.pak")
	out, err = execute(t, "--config", cfg, "order", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "listed in load order but not found: ghost.pak")
	assert.Contains(t, out, "not in load order, merged first: a.pak")

	_, err = execute(t, "--config", cfg, "order", "reset")
	require.NoError(t, err)
	data, err := os.ReadFile(g.Order)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ghost.pak")
}

func TestIndexLookupCmd(t *testing.T) {
	g, cfg := newGame(t)

	out, err := execute(t, "--config", cfg, "index", "lookup", "libs/tables/rpg/stats.xml", "mods/new/file.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "directory prefixes indexed: 1")
	assert.Contains(t, out, filepath.Join(g.Data, "Tables.pak"))
	assert.Contains(t, out, "mods/new/file.txt: no archive known")
}

func TestGenConfigCmd(t *testing.T) {
	out, err := execute(t, "genconfig", "--executable", "/games/kcd/Bin/Win64/Game.exe")
	require.NoError(t, err)
	assert.Contains(t, out, "executable")
	assert.Contains(t, out, "/games/kcd/Bin/Win64/Game.exe")

	target := filepath.Join(t.TempDir(), "omnipak.toml")
	_, err = execute(t, "genconfig", "-e", "/g/Bin/Win64/Game.exe", "-w", "-o", target)
	require.NoError(t, err)
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, err = execute(t, "genconfig", "-w", "-o", target)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestMissingExecutable(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "omnipak.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[merge]\naccuracy = 3\n"), 0644))

	_, err := execute(t, "--config", cfg, "merge", "--no-wait")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "omnipak version")
}

func TestFormatError(t *testing.T) {
	styles.SetPlain(true)
	defer styles.SetPlain(false)

	err := errors.New(errors.ErrAreaMatch, "no candidate line").
		WithDetail("path", "libs/x.xml").
		WithDetail("mod", "b.pak")
	got := FormatError(err)

	assert.Contains(t, got, "Error: [AREA_MATCH] no candidate line")
	assert.Less(t, strings.Index(got, "mod: b.pak"), strings.Index(got, "path: libs/x.xml"))
	assert.Contains(t, got, "load order")
}

func TestFormatFlag(t *testing.T) {
	t.Cleanup(func() { styles.SetPlain(false) })

	tests := []struct {
		format  string
		wantErr bool
	}{
		{"auto", false},
		{"text", false},
		{"term", false},
		{"bogus", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "--format", tt.format, "version")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "omnipak version")
		})
	}

	_, err := execute(t, "--format", "text", "version")
	require.NoError(t, err)
	assert.True(t, styles.Plain())
}
