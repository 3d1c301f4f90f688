package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/pak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves canned directories keyed by archive path.
type fakeLister map[string][]string

func (f fakeLister) List(path string) ([]*pak.Header, error) {
	names, ok := f[path]
	if !ok {
		return nil, errors.New(errors.ErrArchiveFormat, "end of central directory not found")
	}
	headers := make([]*pak.Header, 0, len(names))
	for _, n := range names {
		headers = append(headers, &pak.Header{Name: n})
	}
	return headers, nil
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Libs/Tables/Item/item.xml", "libs/tables/item"},
		{"libs/tables/item/deep/more/x.xml", "libs/tables/item"},
		{"libs/tables/item.xml", "libs/tables"},
		{"Libs\\UI\\hud.xml", "libs/ui"},
		{"readme.txt", ""},
		{"a.b/c.d/e.f", ""},
		{"libs/", "libs"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Prefix(tt.in))
		})
	}
}

func TestBuildAndLookup(t *testing.T) {
	lister := fakeLister{
		"/data/Tables.pak":  {"Libs/Tables/Item/item.xml", "libs/tables/rpg/perk.xml", "Libs/"},
		"/data/Scripts.pak": {"Scripts/Entities/Horse.lua", "scripts/startup.lua"},
		"/data/Patch.pak":   {"libs/tables/item/weapon.xml"},
	}
	idx := Build(lister, []string{"/data/Tables.pak", "/data/Scripts.pak", "/data/Patch.pak", "/data/Broken.pak"}, nil)

	t.Run("registered prefix returns its archives in build order", func(t *testing.T) {
		archives, tier, ok := idx.Lookup("LIBS/tables/item/armor.xml")
		require.True(t, ok)
		assert.Equal(t, TierQuick, tier)
		assert.Equal(t, []string{"/data/Tables.pak", "/data/Patch.pak"}, archives)
	})

	t.Run("top level file registers its folder", func(t *testing.T) {
		archives, _, ok := idx.Lookup("scripts/other.lua")
		require.True(t, ok)
		assert.Equal(t, []string{"/data/Scripts.pak"}, archives)
	})

	t.Run("unknown prefix", func(t *testing.T) {
		_, tier, ok := idx.Lookup("mods/new/thing.xml")
		assert.False(t, ok)
		assert.Equal(t, TierNone, tier)
	})

	t.Run("unreadable archive is skipped", func(t *testing.T) {
		assert.Equal(t, []string{"/data/Broken.pak"}, idx.Skipped())
	})

	t.Run("directory entries register no prefix", func(t *testing.T) {
		// libs/tables/item, libs/tables/rpg, scripts/entities, scripts
		assert.Equal(t, 4, idx.Prefixes())
	})
}

func TestLookupPrefersLightningTier(t *testing.T) {
	overrides, err := ParseOverrides([]byte("libs/ui: [GameData.pak]\n"), "/data")
	require.NoError(t, err)

	lister := fakeLister{"/data/Other.pak": {"libs/ui/hud/hud.xml"}}
	idx := Build(lister, []string{"/data/Other.pak"}, overrides)

	archives, tier, ok := idx.Lookup("libs/ui/hud/minimap.xml")
	require.True(t, ok)
	assert.Equal(t, TierLightning, tier)
	assert.Equal(t, []string{filepath.Join("/data", "GameData.pak")}, archives)
}

func TestLoadOverrides(t *testing.T) {
	builtin := BuiltinOverrides("/data")
	require.NotEmpty(t, builtin["libs/tables/item"])

	file := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(file, []byte("libs/tables/item: [Patch.pak, /abs/Tables.pak]\n"), 0644))

	o, err := LoadOverrides(file, "/data")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/data", "Patch.pak"), "/abs/Tables.pak"}, o["libs/tables/item"])

}

func TestLoadOverrides_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing file", filepath.Join(dir, "absent.yaml"), errors.ErrFileAccess},
		{"malformed yaml", write("bad.yaml", "libs/ui: [a.pak\n"), errors.ErrConfigParse},
		{"prefix without folder", write("flat.yaml", "readme.txt: [a.pak]\n"), errors.ErrConfigValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOverrides(tt.path, "/data")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.path, errors.GetErrorDetails(err)["path"])
		})
	}
}

func TestDiscoverArchives(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"Tables.pak", "sub/Scripts.PAK", "notes.txt", "zzz_omnipak.pak"} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	archives, err := DiscoverArchives(root, filepath.Join(root, "zzz_omnipak.pak"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Tables.pak"),
		filepath.Join(root, "sub", "Scripts.PAK"),
	}, archives)
}

func TestBuildWithRealArchive(t *testing.T) {
	store := pak.NewStore(pak.Options{})
	p := filepath.Join(t.TempDir(), "Tables.pak")
	a := pak.NewArchive(p)
	a.Put(pak.NewTextEntry("Libs/Tables/Item/item.xml", []byte("<a/>\n")))
	require.NoError(t, store.Write(a, p))

	idx := Build(store, []string{p}, nil)
	archives, _, ok := idx.Lookup("libs/tables/item/item.xml")
	require.True(t, ok)
	assert.Contains(t, archives, p)
}
