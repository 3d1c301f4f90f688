package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/omnipak/pkg/pak"
)

// Game is a fake game installation.
type Game struct {
	Root  string
	Exe   string
	Data  string
	Mods  string
	Order string
	Store *pak.FileStore
}

// NewGame creates an empty installation under a temp dir. Entries with the
// given extensions are treated as binary.
func NewGame(t *testing.T, binaryExtensions ...string) *Game {
	t.Helper()

	root := filepath.Join(t.TempDir(), "game")
	g := &Game{
		Root:  root,
		Exe:   filepath.Join(root, "Bin", "Win64", "Game.exe"),
		Data:  CreateDir(t, root, "Data"),
		Mods:  CreateDir(t, root, filepath.Join("omnipak", "mods")),
		Order: filepath.Join(root, "omnipak", "load_order"),
		Store: pak.NewStore(pak.Options{BinaryExtensions: binaryExtensions}),
	}
	CreateFile(t, filepath.Dir(g.Exe), filepath.Base(g.Exe), "")
	return g
}

// WriteArchive writes entries to path.
func (g *Game) WriteArchive(t *testing.T, path string, entries ...*pak.Entry) string {
	t.Helper()

	a := pak.NewArchive(path)
	for _, e := range entries {
		a.Put(e)
	}
	if err := g.Store.Write(a, path); err != nil {
		t.Fatalf("Failed to write archive %s: %v", path, err)
	}
	return path
}

// DataArchive writes a game archive named name into the data folder.
func (g *Game) DataArchive(t *testing.T, name string, entries ...*pak.Entry) string {
	t.Helper()
	return g.WriteArchive(t, filepath.Join(g.Data, name), entries...)
}

// Mod writes a mod archive named name into the mods folder.
func (g *Game) Mod(t *testing.T, name string, entries ...*pak.Entry) string {
	t.Helper()
	return g.WriteArchive(t, filepath.Join(g.Mods, name), entries...)
}

// SetOrder writes the load order file.
func (g *Game) SetOrder(t *testing.T, names ...string) {
	t.Helper()
	CreateFile(t, filepath.Dir(g.Order), filepath.Base(g.Order), strings.Join(names, "\n")+"\n")
}

// Config writes an omnipak.toml pointing at the installation, followed by
// extra TOML, and returns its path.
func (g *Game) Config(t *testing.T, extra string) string {
	t.Helper()
	content := "executable = '" + g.Exe + "'\n\n" + extra
	return CreateFile(t, t.TempDir(), "omnipak.toml", content)
}

// Output is the composite archive path for the default output name.
func (g *Game) Output() string {
	return filepath.Join(g.Data, "zzz_omnipak.pak")
}

// TextEntry reads name from the archive at path and returns its lines.
func (g *Game) TextEntry(t *testing.T, path, name string) []string {
	t.Helper()

	e, found, err := g.Store.ReadEntry(path, name)
	if err != nil {
		t.Fatalf("Failed to read %s from %s: %v", name, path, err)
	}
	if !found || e.Text == nil {
		t.Fatalf("No text entry %s in %s", name, path)
	}
	return e.Text.Lines
}
