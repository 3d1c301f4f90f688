// Package pak reads and writes the ZIP-compatible archives ("paks") a game
// ships its data in.
//
// Reading does not go through archive/zip. The decoder walks the central
// directory itself, validates every local file header against it, rejects
// encrypted and patch-compressed entries, and only then inflates the data.
// That keeps the failure modes explicit: every format problem surfaces as an
// errors.ErrArchiveFormat, ErrArchiveUnsupported or ErrArchiveEncrypted
// naming the archive and the entry.
//
// Entries are materialised either as Text (a sequence of lines that can be
// diffed and merged) or as Binary (opaque bytes). Which one is decided by the
// entry's extension. Text entries remember their encoding and whether they
// ended in a newline, so writing an archive reproduces the bytes it was read
// from.
//
// An archive is read completely into memory and its file handle is closed
// before Open returns; no archive stays open across a merge run.
package pak
