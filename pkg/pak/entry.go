package pak

import (
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Kind tells whether an entry can be merged line by line.
type Kind int

const (
	// KindText entries are decoded into lines and merged.
	KindText Kind = iota
	// KindBinary entries are opaque and replaced wholesale.
	KindBinary
)

func (k Kind) String() string {
	if k == KindBinary {
		return "binary"
	}
	return "text"
}

// Encoding is the character encoding a text entry was decoded with.
type Encoding string

const (
	EncodingUTF8 Encoding = "utf-8"
	// EncodingFallback is used for any entry that is not valid UTF-8.
	EncodingFallback Encoding = "windows-1252"
)

// Text is the decoded form of a mergeable entry.
type Text struct {
	Lines           []string
	Encoding        Encoding
	TrailingNewline bool
}

// Entry is one file inside an archive.
type Entry struct {
	Path string
	Kind Kind
	Text *Text
	Data []byte
}

// Ext returns the lower-cased extension of the entry path, including the dot.
func (e *Entry) Ext() string {
	return strings.ToLower(path.Ext(e.Path))
}

// Mergeable reports whether the entry holds text.
func (e *Entry) Mergeable() bool {
	return e.Kind == KindText
}

// Bytes returns the encoded content of the entry.
func (e *Entry) Bytes() []byte {
	if e.Kind == KindBinary {
		return e.Data
	}
	return e.Text.Bytes()
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := &Entry{Path: e.Path, Kind: e.Kind}
	if e.Data != nil {
		c.Data = append([]byte(nil), e.Data...)
	}
	if e.Text != nil {
		c.Text = &Text{
			Lines:           append([]string(nil), e.Text.Lines...),
			Encoding:        e.Text.Encoding,
			TrailingNewline: e.Text.TrailingNewline,
		}
	}
	return c
}

// NewBinaryEntry wraps raw bytes as an opaque entry.
func NewBinaryEntry(name string, data []byte) *Entry {
	return &Entry{Path: NormalizePath(name), Kind: KindBinary, Data: data}
}

// NewTextEntry decodes data into lines.
func NewTextEntry(name string, data []byte) *Entry {
	return &Entry{Path: NormalizePath(name), Kind: KindText, Text: DecodeText(data)}
}

// NewLinesEntry builds a UTF-8 text entry from lines.
func NewLinesEntry(name string, lines []string) *Entry {
	return &Entry{
		Path: NormalizePath(name),
		Kind: KindText,
		Text: &Text{Lines: lines, Encoding: EncodingUTF8, TrailingNewline: len(lines) > 0},
	}
}

// DecodeText splits data into lines. Valid UTF-8 is kept as is; anything
// else is decoded with the Windows-1252 fallback.
func DecodeText(data []byte) *Text {
	t := &Text{Encoding: EncodingUTF8}
	s := string(data)
	if !utf8.Valid(data) {
		s = decodeFallback(data)
		t.Encoding = EncodingFallback
	}
	if s == "" {
		return t
	}
	if strings.HasSuffix(s, "\n") {
		t.TrailingNewline = true
		s = s[:len(s)-1]
	}
	t.Lines = strings.Split(s, "\n")
	return t
}

// Bytes re-encodes the lines. Lines that cannot be represented in the
// fallback encoding (merged in from a UTF-8 mod) force UTF-8 output.
func (t *Text) Bytes() []byte {
	s := strings.Join(t.Lines, "\n")
	if t.TrailingNewline && len(t.Lines) > 0 {
		s += "\n"
	}
	if t.Encoding == EncodingFallback {
		if encoded, ok := encodeFallback(s); ok {
			return encoded
		}
	}
	return []byte(s)
}

// decodeFallback maps every byte to a rune. The five bytes Windows-1252
// leaves undefined (0x81, 0x8D, 0x8F, 0x90, 0x9D) become the C1 control
// with the same value so that encodeFallback restores them.
func decodeFallback(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		r := charmap.Windows1252.DecodeByte(c)
		if r == utf8.RuneError {
			r = rune(c)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// encodeFallback is the inverse of decodeFallback. ok is false when s holds
// a rune with no single-byte form.
func encodeFallback(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, c)
			continue
		}
		if r >= 0x80 && r <= 0x9f && charmap.Windows1252.DecodeByte(byte(r)) == utf8.RuneError {
			out = append(out, byte(r))
			continue
		}
		return nil, false
	}
	return out, true
}

// NormalizePath converts backslashes to forward slashes and strips leading
// slashes.
func NormalizePath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimLeft(name, "/")
}

// Key is the case-insensitive identity of a path inside an archive.
func Key(name string) string {
	return strings.ToLower(NormalizePath(name))
}
