package pak

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/klauspost/compress/flate"
	"golang.org/x/text/encoding/charmap"
)

const (
	localHeaderSig   = 0x04034b50
	centralHeaderSig = 0x02014b50
	endOfCentralSig  = 0x06054b50

	localHeaderLen   = 30
	centralHeaderLen = 46
	endOfCentralLen  = 22
	maxCommentLen    = 0xffff

	flagEncrypted       = 0x1
	flagPatched         = 0x20
	flagStrongEncrypted = 0x40
	flagUTF8            = 0x800

	methodStore   = 0
	methodDeflate = 8
)

// Header is a central directory record.
type Header struct {
	Name             string
	Flags            uint16
	Method           uint16
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
	Offset           uint32
}

// IsDir reports whether the record names a directory.
func (h *Header) IsDir() bool {
	return len(h.Name) > 0 && h.Name[len(h.Name)-1] == '/'
}

// decoder reads entries out of an in-memory container.
type decoder struct {
	archive string
	r       io.ReaderAt
	size    int64
}

func formatErr(archive, format string, args ...interface{}) *errors.OmnipakError {
	return errors.Newf(errors.ErrArchiveFormat, format, args...).WithDetail("archive", archive)
}

// readDirectory parses the end-of-central-directory record and every
// central directory header.
func (d *decoder) readDirectory() ([]*Header, error) {
	if d.size < endOfCentralLen {
		return nil, formatErr(d.archive, "file too small to be an archive")
	}

	tailLen := int64(endOfCentralLen + maxCommentLen)
	if tailLen > d.size {
		tailLen = d.size
	}
	tail := make([]byte, tailLen)
	if _, err := d.r.ReadAt(tail, d.size-tailLen); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrArchiveFormat, "cannot read end of central directory").
			WithDetail("archive", d.archive)
	}

	eocd := -1
	for i := len(tail) - endOfCentralLen; i >= 0; i-- {
		if binary.LittleEndian.Uint32(tail[i:]) == endOfCentralSig {
			eocd = i
			break
		}
	}
	if eocd < 0 {
		return nil, formatErr(d.archive, "end of central directory not found")
	}

	rec := tail[eocd:]
	count := binary.LittleEndian.Uint16(rec[10:])
	cdSize := binary.LittleEndian.Uint32(rec[12:])
	cdOffset := binary.LittleEndian.Uint32(rec[16:])
	if count == 0xffff || cdSize == 0xffffffff || cdOffset == 0xffffffff {
		return nil, errors.New(errors.ErrArchiveUnsupported, "zip64 archives").
			WithDetail("archive", d.archive)
	}
	if int64(cdOffset)+int64(cdSize) > d.size {
		return nil, formatErr(d.archive, "central directory extends past end of file")
	}

	cd := make([]byte, cdSize)
	if _, err := d.r.ReadAt(cd, int64(cdOffset)); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrArchiveFormat, "cannot read central directory").
			WithDetail("archive", d.archive)
	}

	headers := make([]*Header, 0, count)
	pos := 0
	for i := 0; i < int(count); i++ {
		if pos+centralHeaderLen > len(cd) {
			return nil, formatErr(d.archive, "truncated central directory")
		}
		b := cd[pos:]
		if binary.LittleEndian.Uint32(b) != centralHeaderSig {
			return nil, formatErr(d.archive, "bad magic number for central directory")
		}
		nameLen := int(binary.LittleEndian.Uint16(b[28:]))
		extraLen := int(binary.LittleEndian.Uint16(b[30:]))
		commentLen := int(binary.LittleEndian.Uint16(b[32:]))
		end := centralHeaderLen + nameLen + extraLen + commentLen
		if pos+end > len(cd) {
			return nil, formatErr(d.archive, "truncated central directory")
		}
		flags := binary.LittleEndian.Uint16(b[8:])
		headers = append(headers, &Header{
			Name:             decodeName(b[centralHeaderLen:centralHeaderLen+nameLen], flags),
			Flags:            flags,
			Method:           binary.LittleEndian.Uint16(b[10:]),
			CRC32:            binary.LittleEndian.Uint32(b[16:]),
			CompressedSize:   binary.LittleEndian.Uint32(b[20:]),
			UncompressedSize: binary.LittleEndian.Uint32(b[24:]),
			Offset:           binary.LittleEndian.Uint32(b[42:]),
		})
		pos += end
	}
	return headers, nil
}

// readData validates the local header of h and returns the inflated bytes.
// The central directory flags are authoritative for name decoding.
func (d *decoder) readData(h *Header, password string) ([]byte, error) {
	lh := make([]byte, localHeaderLen)
	n, err := d.r.ReadAt(lh, int64(h.Offset))
	if n != localHeaderLen {
		return nil, formatErr(d.archive, "truncated file header").WithDetail("entry", h.Name)
	}
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrArchiveFormat, "cannot read file header").
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}
	if binary.LittleEndian.Uint32(lh) != localHeaderSig {
		return nil, formatErr(d.archive, "bad magic number for file header").WithDetail("entry", h.Name)
	}

	nameLen := int64(binary.LittleEndian.Uint16(lh[26:]))
	extraLen := int64(binary.LittleEndian.Uint16(lh[28:]))
	rawName := make([]byte, nameLen)
	if _, err := d.r.ReadAt(rawName, int64(h.Offset)+localHeaderLen); err != nil && err != io.EOF {
		return nil, formatErr(d.archive, "truncated file name").WithDetail("entry", h.Name)
	}

	if h.Flags&flagPatched != 0 {
		return nil, errors.New(errors.ErrArchiveUnsupported, "compressed patched data (flag bit 5)").
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}
	if h.Flags&flagStrongEncrypted != 0 {
		return nil, errors.New(errors.ErrArchiveUnsupported, "strong encryption (flag bit 6)").
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}

	if local := decodeName(rawName, h.Flags); local != h.Name {
		return nil, formatErr(d.archive, "file name in directory %q and header %q differ", h.Name, local).
			WithDetail("entry", h.Name)
	}

	if h.Flags&flagEncrypted != 0 {
		if password == "" {
			return nil, errors.Newf(errors.ErrArchiveEncrypted, "file %s is encrypted, password required for extraction", h.Name).
				WithDetail("archive", d.archive).WithDetail("entry", h.Name)
		}
		return nil, errors.New(errors.ErrArchiveUnsupported, "decryption of encrypted entries").
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}

	start := int64(h.Offset) + localHeaderLen + nameLen + extraLen
	if start+int64(h.CompressedSize) > d.size {
		return nil, formatErr(d.archive, "entry data extends past end of file").WithDetail("entry", h.Name)
	}
	section := io.NewSectionReader(d.r, start, int64(h.CompressedSize))

	var data []byte
	switch h.Method {
	case methodStore:
		data, err = io.ReadAll(section)
	case methodDeflate:
		fr := flate.NewReader(section)
		data, err = io.ReadAll(io.LimitReader(fr, int64(h.UncompressedSize)+1))
		_ = fr.Close()
	default:
		return nil, errors.Newf(errors.ErrArchiveUnsupported, "compression method %d", h.Method).
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveFormat, "cannot decompress entry").
			WithDetail("archive", d.archive).WithDetail("entry", h.Name)
	}
	if uint32(len(data)) != h.UncompressedSize {
		return nil, formatErr(d.archive, "entry size %d does not match directory size %d", len(data), h.UncompressedSize).
			WithDetail("entry", h.Name)
	}
	return data, nil
}

// decodeName decodes a raw entry name. Without the UTF-8 flag names are
// CP437, as the ZIP format defines.
func decodeName(raw []byte, flags uint16) string {
	name := string(raw)
	if flags&flagUTF8 == 0 {
		if decoded, err := charmap.CodePage437.NewDecoder().Bytes(raw); err == nil {
			name = string(decoded)
		}
	}
	return NormalizePath(name)
}

func newDecoder(archive string, data []byte) *decoder {
	return &decoder{archive: archive, r: bytes.NewReader(data), size: int64(len(data))}
}
