package pak

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/klauspost/compress/zip"
)

// FixedModTime keeps written archives reproducible (1980-01-01 UTC).
var FixedModTime = time.Unix(315532800, 0).UTC()

// Store is the archive capability the merge pipeline depends on.
type Store interface {
	Open(path string) (*Archive, error)
	Write(a *Archive, path string) error
}

// Options control how entries are classified and decoded.
type Options struct {
	// BinaryExtensions lists extensions (with or without the leading dot)
	// whose entries are never diffed.
	BinaryExtensions []string
	// Password is the credential offered for encrypted entries.
	Password string
}

// FileStore reads and writes archives on the local filesystem.
type FileStore struct {
	binary   map[string]bool
	password string
}

// NewStore returns a FileStore configured with opts.
func NewStore(opts Options) *FileStore {
	s := &FileStore{binary: make(map[string]bool), password: opts.Password}
	for _, ext := range opts.BinaryExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.binary[ext] = true
	}
	return s
}

// IsBinary reports whether entries at name are opaque.
func (s *FileStore) IsBinary(name string) bool {
	return s.binary[strings.ToLower(path.Ext(NormalizePath(name)))]
}

// Classify builds an entry of the right kind for name.
func (s *FileStore) Classify(name string, data []byte) *Entry {
	if s.IsBinary(name) {
		return NewBinaryEntry(name, data)
	}
	return NewTextEntry(name, data)
}

// Open reads every file entry of the archive at p. A missing archive is
// first created empty. Directory records and names without an extension are
// skipped.
func (s *FileStore) Open(p string) (*Archive, error) {
	logger := logging.GetLogger("pak")

	if _, err := os.Stat(p); os.IsNotExist(err) {
		logger.Debug().Str("archive", p).Msg("Archive missing, creating empty container")
		if err := s.Write(NewArchive(p), p); err != nil {
			return nil, err
		}
	}

	d, err := load(p)
	if err != nil {
		return nil, err
	}
	headers, err := d.readDirectory()
	if err != nil {
		return nil, err
	}

	a := NewArchive(p)
	for _, h := range headers {
		if !isFileRecord(h) {
			continue
		}
		data, err := d.readData(h, s.password)
		if err != nil {
			return nil, err
		}
		if _, dup := a.Get(h.Name); dup {
			logger.Debug().Str("archive", p).Str("entry", h.Name).Msg("Duplicate entry, keeping the later one")
		}
		a.Put(s.Classify(h.Name, data))
	}

	logger.Trace().Str("archive", p).Int("entries", a.Len()).Msg("Archive read")
	return a, nil
}

// List returns the central directory records of the archive at p without
// decompressing anything.
func (s *FileStore) List(p string) ([]*Header, error) {
	d, err := load(p)
	if err != nil {
		return nil, err
	}
	return d.readDirectory()
}

// ReadEntry decodes the single entry name from the archive at p. The bool
// result is false when the archive has no such entry.
func (s *FileStore) ReadEntry(p, name string) (*Entry, bool, error) {
	d, err := load(p)
	if err != nil {
		return nil, false, err
	}
	headers, err := d.readDirectory()
	if err != nil {
		return nil, false, err
	}
	want := Key(name)
	for i := len(headers) - 1; i >= 0; i-- {
		h := headers[i]
		if !isFileRecord(h) || Key(h.Name) != want {
			continue
		}
		data, err := d.readData(h, s.password)
		if err != nil {
			return nil, false, err
		}
		return s.Classify(h.Name, data), true, nil
	}
	return nil, false, nil
}

// Write serialises a to p, replacing any existing file. Entry names are
// lower-cased.
func (s *FileStore) Write(a *Archive, p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create archive directory").
			WithDetail("archive", p)
	}
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create archive").WithDetail("archive", p)
	}

	zw := zip.NewWriter(f)
	for _, e := range a.Entries() {
		h := &zip.FileHeader{Name: Key(e.Path), Method: zip.Deflate, Modified: FixedModTime}
		h.SetMode(0644)
		w, err := zw.CreateHeader(h)
		if err != nil {
			_ = f.Close()
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot add %s", e.Path).WithDetail("archive", p)
		}
		if _, err := w.Write(e.Bytes()); err != nil {
			_ = f.Close()
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", e.Path).WithDetail("archive", p)
		}
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, errors.ErrFileWrite, "cannot finish archive").WithDetail("archive", p)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot close archive").WithDetail("archive", p)
	}
	return nil
}

// load reads the whole file so the handle can be closed right away.
func load(p string) (*decoder, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrFileNotFound, "archive not found").WithDetail("archive", p)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read archive").WithDetail("archive", p)
	}
	return newDecoder(p, data), nil
}

func isFileRecord(h *Header) bool {
	if h.IsDir() {
		return false
	}
	return strings.Contains(path.Base(h.Name), ".")
}
