package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/omnipak/pkg/config"
	"github.com/arthur-debert/omnipak/pkg/errors"
)

// Fixed offsets from the game root.
const (
	DataDirName         = "Data"
	LocalizationDirName = "Localization"
	UserConfigName      = "user.cfg"
	WorkDirName         = "omnipak"
	ModsDirName         = "mods"
	ReportsDirName      = "reports"
	LogsDirName         = "logs"
	LoadOrderName       = "load_order"

	// rootDepth is how many directories sit between the root and the
	// executable, counting the executable itself.
	rootDepth = 3
)

// Layout holds every path a run touches.
type Layout struct {
	Executable   string
	ExeDir       string
	Root         string
	Data         string
	Localization string
	UserConfig   string

	Work      string
	Mods      string
	Reports   string
	Logs      string
	LoadOrder string
	Output    string
}

// Derive computes the layout for executable. Relative overrides are taken
// relative to the game root.
func Derive(executable string, overrides config.PathsConfig, outputName string) (*Layout, error) {
	if strings.TrimSpace(executable) == "" {
		return nil, errors.New(errors.ErrConfigValid, "executable is not set").WithDetail("key", "executable")
	}
	exe, err := filepath.Abs(expandHome(executable))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid executable path").
			WithDetail("path", executable)
	}

	root := exe
	for i := 0; i < rootDepth; i++ {
		root = filepath.Dir(root)
	}

	l := &Layout{
		Executable:   exe,
		ExeDir:       filepath.Dir(exe),
		Root:         root,
		Data:         filepath.Join(root, DataDirName),
		Localization: filepath.Join(root, LocalizationDirName),
		UserConfig:   filepath.Join(filepath.Dir(exe), UserConfigName),
		Work:         filepath.Join(root, WorkDirName),
	}
	l.Mods = l.resolve(overrides.Mods, filepath.Join(l.Work, ModsDirName))
	l.Reports = l.resolve(overrides.Reports, filepath.Join(l.Work, ReportsDirName))
	l.Logs = l.resolve(overrides.Logs, filepath.Join(l.Work, LogsDirName))
	l.LoadOrder = l.resolve(overrides.LoadOrder, filepath.Join(l.Work, LoadOrderName))
	l.Output = filepath.Join(l.Data, outputName)
	return l, nil
}

// FromConfig derives the layout described by cfg.
func FromConfig(cfg *config.Config) (*Layout, error) {
	return Derive(cfg.Executable, cfg.Paths, cfg.Merge.OutputName)
}

func (l *Layout) resolve(override, fallback string) string {
	if override == "" {
		return fallback
	}
	override = expandHome(override)
	if filepath.IsAbs(override) {
		return filepath.Clean(override)
	}
	return filepath.Join(l.Root, override)
}

// ConfigDir is the per-user config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// StateDir is where logs go before a layout is known.
func StateDir() string {
	return filepath.Join(xdg.StateHome, config.AppName)
}

func expandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}
