package merge

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/omnipak/pkg/area"
	"github.com/arthur-debert/omnipak/pkg/diff"
	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/index"
	"github.com/arthur-debert/omnipak/pkg/loadorder"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/pak"
	"github.com/arthur-debert/omnipak/pkg/report"
	"github.com/arthur-debert/omnipak/pkg/types"
	"github.com/rs/zerolog"
)

// Stage is a step of a build.
type Stage string

const (
	StageInit       Stage = "init"
	StageIndexBuilt Stage = "index-built"
	StageMerging    Stage = "merging"
	StageWritten    Stage = "written"
)

// Archives is what the orchestrator needs from the archive store.
type Archives interface {
	pak.Store
	List(path string) ([]*pak.Header, error)
	ReadEntry(path, name string) (*pak.Entry, bool, error)
}

// Options configure one build.
type Options struct {
	DataDir    string
	ModsDir    string
	OrderPath  string
	OutputPath string

	Area      area.Options
	Overrides index.Overrides
	// Reports receives one report per applied diff; nil disables reports.
	Reports     *report.Writer
	ValidateXML bool
	// DryRun skips writing the output archive.
	DryRun bool
}

// Result summarises a build.
type Result struct {
	Stage     Stage
	LoadOrder *loadorder.Result
	Sources   int
	// Output is the composite archive; nil until the mods are processed.
	Output *pak.Archive

	Merged     int
	Introduced int
	Replaced   int
	// FailedMods lists mod archives that could not be read and were skipped.
	FailedMods []string
	// InvalidXML lists merged XML paths that no longer parse.
	InvalidXML []string
	Duration   time.Duration
}

// composite is the evolving merge result for one path.
type composite struct {
	entry *pak.Entry
	// baseline is what mods are diffed against: the original game file, or
	// the first mod's copy when the game has none.
	baseline []string
}

// Orchestrator runs builds.
type Orchestrator struct {
	store   Archives
	fs      types.FS
	matcher *area.Matcher
	opts    Options
	logger  zerolog.Logger

	index      *index.Index
	order      []string
	composites map[string]*composite
}

// New returns an Orchestrator. fs is used for the load order file.
func New(store Archives, fs types.FS, opts Options) *Orchestrator {
	return &Orchestrator{
		store:   store,
		fs:      fs,
		matcher: area.NewMatcher(opts.Area),
		opts:    opts,
		logger:  logging.GetLogger("merge"),
	}
}

// Run performs a full build. Unreadable mod archives are skipped; an edit
// that cannot be placed aborts the run.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{Stage: StageInit}
	o.composites = make(map[string]*composite)
	o.order = nil

	if !o.opts.DryRun {
		if err := os.MkdirAll(filepath.Dir(o.opts.OutputPath), 0755); err != nil {
			return res, errors.Wrap(err, errors.ErrDirCreate, "cannot create output directory").
				WithDetail("path", o.opts.OutputPath)
		}
		unlock, err := acquireLock(o.opts.OutputPath)
		if err != nil {
			return res, err
		}
		defer unlock()
	}

	lo, err := loadorder.Resolve(o.fs, o.opts.ModsDir, o.opts.OrderPath)
	if err != nil {
		return res, err
	}
	res.LoadOrder = lo

	sources, err := index.DiscoverArchives(o.opts.DataDir, o.opts.OutputPath)
	if err != nil {
		return res, err
	}
	res.Sources = len(sources)
	o.index = index.Build(o.store, sources, o.opts.Overrides)
	o.setStage(res, StageIndexBuilt)

	o.setStage(res, StageMerging)
	for i, mod := range lo.Order {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		o.logger.Info().Int("position", i+1).Int("of", len(lo.Order)).Str("mod", mod).Msg("Merging mod")
		if err := o.mergeMod(mod, res); err != nil {
			return res, err
		}
	}

	res.Output = o.composite()
	if o.opts.ValidateXML {
		for _, e := range res.Output.Entries() {
			if err := checkXML(e); err != nil {
				o.logger.Warn().Err(err).Str("path", e.Path).Msg("Merged XML does not parse")
				res.InvalidXML = append(res.InvalidXML, e.Path)
			}
		}
	}

	if !o.opts.DryRun {
		if err := o.store.Write(res.Output, o.opts.OutputPath); err != nil {
			return res, err
		}
		o.setStage(res, StageWritten)
	}

	res.Duration = time.Since(start)
	o.logger.Info().
		Int("mods", len(lo.Order)).
		Int("entries", res.Output.Len()).
		Int("merged", res.Merged).
		Int("introduced", res.Introduced).
		Int("replaced", res.Replaced).
		Dur("duration", res.Duration).
		Msg("Build finished")
	return res, nil
}

func (o *Orchestrator) setStage(res *Result, s Stage) {
	res.Stage = s
	o.logger.Debug().Str("stage", string(s)).Msg("Stage reached")
}

func (o *Orchestrator) mergeMod(mod string, res *Result) error {
	modPath := filepath.Join(o.opts.ModsDir, mod)
	a, err := o.store.Open(modPath)
	if err != nil {
		o.logger.Error().Err(err).Str("mod", mod).Msg("Cannot read mod archive, skipping it")
		res.FailedMods = append(res.FailedMods, mod)
		return nil
	}

	for _, e := range a.Entries() {
		if err := o.mergeEntry(mod, e, res); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) mergeEntry(mod string, e *pak.Entry, res *Result) error {
	key := pak.Key(e.Path)
	logger := o.logger.With().Str("mod", mod).Str("path", e.Path).Logger()

	if !e.Mergeable() {
		if _, ok := o.composites[key]; ok {
			logger.Debug().Msg("Replacing binary entry")
		}
		o.put(key, &composite{entry: e})
		res.Replaced++
		return nil
	}

	c, ok := o.composites[key]
	if !ok || c.entry.Text == nil {
		orig, found := o.locateOriginal(e.Path)
		if !found {
			logger.Debug().Msg("New file introduced by mod")
			o.put(key, &composite{entry: e.Clone(), baseline: e.Text.Lines})
			res.Introduced++
			return nil
		}
		c = &composite{entry: orig.Clone(), baseline: orig.Text.Lines}
		o.put(key, c)
	}

	script := diff.Compute(c.baseline, e.Text.Lines)
	if script.Empty() {
		logger.Debug().Msg("Mod file identical to baseline")
		return nil
	}

	if name, err := o.opts.Reports.Write(mod, e.Path, script); err != nil {
		logger.Warn().Err(err).Msg("Failed to write diff report")
	} else if name != "" {
		logger.Trace().Str("report", name).Msg("Diff report written")
	}

	current := c.entry.Text.Lines
	if len(current) == 0 && len(c.baseline) == 0 {
		c.entry.Text.Lines = append([]string(nil), e.Text.Lines...)
		res.Merged++
		return nil
	}

	merged, err := o.matcher.Apply(current, script)
	if err != nil {
		if oe, isOmni := errors.As(err); isOmni {
			return oe.WithDetail("mod", mod).WithDetail("path", e.Path)
		}
		return errors.Wrap(err, errors.ErrAreaMatch, "cannot place edit").
			WithDetail("mod", mod).WithDetail("path", e.Path)
	}
	c.entry.Text.Lines = merged
	res.Merged++
	logger.Debug().Int("operations", len(script.Ops)).Msg("Merged")
	return nil
}

// locateOriginal finds the game's copy of name through the search index.
func (o *Orchestrator) locateOriginal(name string) (*pak.Entry, bool) {
	archives, tier, ok := o.index.Lookup(name)
	if !ok {
		return nil, false
	}
	for _, archive := range archives {
		e, found, err := o.store.ReadEntry(archive, name)
		if err != nil {
			o.logger.Warn().Err(err).Str("archive", archive).Str("path", name).Msg("Cannot read original")
			continue
		}
		if found && e.Mergeable() {
			o.logger.Trace().Str("tier", tier.String()).Str("archive", archive).Str("path", name).Msg("Original located")
			return e, true
		}
	}
	return nil, false
}

func (o *Orchestrator) put(key string, c *composite) {
	if _, ok := o.composites[key]; !ok {
		o.order = append(o.order, key)
	}
	o.composites[key] = c
}

func (o *Orchestrator) composite() *pak.Archive {
	out := pak.NewArchive(o.opts.OutputPath)
	for _, k := range o.order {
		out.Put(o.composites[k].entry)
	}
	return out
}
