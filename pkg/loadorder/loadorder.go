// Package loadorder decides the sequence in which mod archives are merged.
//
// The order lives in a plain text file, one archive file name per line.
// When the file is missing it is generated from the mods directory listing.
// Inconsistencies between the file and the directory are reported as
// warnings and never stop a run.
package loadorder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/types"
)

// ArchiveExt is the extension of mod archives in the mods directory.
const ArchiveExt = ".pak"

// Result is a resolved load order.
type Result struct {
	// Order lists mod archive file names, lowest precedence first.
	Order []string
	// Created is true when the order file did not exist and was generated.
	Created bool
	// Missing lists names in the order file that are not in the mods directory.
	Missing []string
	// Unlisted lists archives found on disk but absent from the order file.
	// They were prepended to Order.
	Unlisted []string
	// Duplicates lists names that appear more than once in the order file.
	Duplicates []string
}

// Warnings reports whether the order file and directory disagreed.
func (r *Result) Warnings() bool {
	return len(r.Missing) > 0 || len(r.Unlisted) > 0 || len(r.Duplicates) > 0
}

// Discover returns the mod archives in modsDir in directory-listing order.
func Discover(fs types.FS, modsDir string) ([]string, error) {
	entries, err := fs.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot list mods directory").
			WithDetail("path", modsDir)
	}
	var mods []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ArchiveExt) {
			continue
		}
		mods = append(mods, e.Name())
	}
	return mods, nil
}

// Resolve reads the order file at orderPath and reconciles it with the
// archives in modsDir. A missing order file is created from the directory
// listing. Archives listed but missing are skipped; archives present but
// unlisted are put before the listed ones, keeping their discovery order.
func Resolve(fs types.FS, modsDir, orderPath string) (*Result, error) {
	logger := logging.GetLogger("loadorder")

	onDisk, err := Discover(fs, modsDir)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(orderPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read load order file").
				WithDetail("path", orderPath)
		}
		if err := Write(fs, orderPath, onDisk); err != nil {
			return nil, err
		}
		logger.Info().Str("path", orderPath).Int("mods", len(onDisk)).Msg("Created load order file")
		return &Result{Order: onDisk, Created: true}, nil
	}

	present := make(map[string]bool, len(onDisk))
	for _, m := range onDisk {
		present[m] = true
	}

	res := &Result{}
	listed := make(map[string]bool)
	var ordered []string
	for _, name := range Parse(data) {
		if listed[name] {
			logger.Warn().Str("mod", name).Msg("Mod listed more than once in load order file, keeping first")
			res.Duplicates = append(res.Duplicates, name)
			continue
		}
		listed[name] = true
		if !present[name] {
			logger.Warn().Str("mod", name).Msg("Mod in load order file but not in mods folder")
			res.Missing = append(res.Missing, name)
			continue
		}
		ordered = append(ordered, name)
	}

	for _, m := range onDisk {
		if !listed[m] {
			logger.Warn().Str("mod", m).Msg("Mod in mods folder but not in load order file")
			res.Unlisted = append(res.Unlisted, m)
		}
	}

	// TODO: unlisted mods currently get the lowest precedence; revisit once
	// there is a setting to choose between prepending and appending them.
	res.Order = append(append([]string{}, res.Unlisted...), ordered...)
	return res, nil
}

// Parse returns the archive names in an order file. Blank lines and lines
// starting with '#' are ignored.
func Parse(data []byte) []string {
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}

// Write stores order at orderPath, one name per line.
func Write(fs types.FS, orderPath string, order []string) error {
	if err := fs.MkdirAll(filepath.Dir(orderPath), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create load order directory").
			WithDetail("path", orderPath)
	}
	content := strings.Join(order, "\n")
	if len(order) > 0 {
		content += "\n"
	}
	if err := fs.WriteFile(orderPath, []byte(content), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write load order file").
			WithDetail("path", orderPath)
	}
	return nil
}

// Reset deletes the order file and regenerates it from the mods directory.
func Reset(fs types.FS, modsDir, orderPath string) (*Result, error) {
	if err := fs.Remove(orderPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot remove load order file").
			WithDetail("path", orderPath)
	}
	return Resolve(fs, modsDir, orderPath)
}
