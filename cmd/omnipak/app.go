package omnipak

import (
	"github.com/arthur-debert/omnipak/pkg/config"
	"github.com/arthur-debert/omnipak/pkg/filesystem"
	"github.com/arthur-debert/omnipak/pkg/index"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/pak"
	"github.com/arthur-debert/omnipak/pkg/paths"
	"github.com/arthur-debert/omnipak/pkg/types"
)

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	verbosity  int
	configPath string
	format     string
}

// app is everything a command needs once the config is loaded.
type app struct {
	cfg    *config.Config
	layout *paths.Layout
	fs     types.FS
	store  *pak.FileStore
}

func loadApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := paths.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Now that the log dir is known, move the log file there.
	logging.SetupLogger(flags.verbosity, layout.Logs)
	cmdLogger := logging.GetLogger("cmd")
	cmdLogger.Debug().
		Str("config", cfg.Source).
		Str("root", layout.Root).
		Str("data", layout.Data).
		Str("mods", layout.Mods).
		Msg("Configuration loaded")

	return &app{
		cfg:    cfg,
		layout: layout,
		fs:     filesystem.NewOS(),
		store: pak.NewStore(pak.Options{
			BinaryExtensions: cfg.Merge.BinaryExtensions,
			Password:         cfg.Merge.Password,
		}),
	}, nil
}

func (a *app) overrides() (index.Overrides, error) {
	return index.LoadOverrides(a.cfg.Index.OverridesFile, a.layout.Data)
}

// buildIndex indexes the game archives, leaving out the composite output.
func (a *app) buildIndex() (*index.Index, error) {
	overrides, err := a.overrides()
	if err != nil {
		return nil, err
	}
	sources, err := index.DiscoverArchives(a.layout.Data, a.layout.Output)
	if err != nil {
		return nil, err
	}
	return index.Build(a.store, sources, overrides), nil
}
