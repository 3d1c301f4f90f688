package pak

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"
)

// rawEntry describes one stored record for buildRawZip. CentralName
// defaults to LocalName, Payload to Data and Size to len(Data).
type rawEntry struct {
	LocalName   string
	CentralName string
	Flags       uint16
	Method      uint16
	Data        []byte
	Payload     []byte
	Size        uint32
	BadMagic    bool
}

// deflate compresses data the way the writer does.
func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildRawZip assembles a container byte by byte so tests can produce
// records that no zip writer would emit.
func buildRawZip(t *testing.T, entries []rawEntry) []byte {
	t.Helper()
	var body, cd bytes.Buffer
	le := binary.LittleEndian

	for _, e := range entries {
		central := e.CentralName
		if central == "" {
			central = e.LocalName
		}
		crc := crc32.ChecksumIEEE(e.Data)
		offset := uint32(body.Len())
		payload := e.Payload
		if payload == nil {
			payload = e.Data
		}
		size := e.Size
		if size == 0 {
			size = uint32(len(e.Data))
		}

		sig := uint32(localHeaderSig)
		if e.BadMagic {
			sig = 0xdeadbeef
		}
		require.NoError(t, binary.Write(&body, le, sig))
		require.NoError(t, binary.Write(&body, le, []uint16{20, e.Flags, e.Method, 0, 0}))
		require.NoError(t, binary.Write(&body, le, []uint32{crc, uint32(len(payload)), size}))
		require.NoError(t, binary.Write(&body, le, []uint16{uint16(len(e.LocalName)), 0}))
		body.WriteString(e.LocalName)
		body.Write(payload)

		require.NoError(t, binary.Write(&cd, le, uint32(centralHeaderSig)))
		require.NoError(t, binary.Write(&cd, le, []uint16{20, 20, e.Flags, e.Method, 0, 0}))
		require.NoError(t, binary.Write(&cd, le, []uint32{crc, uint32(len(payload)), size}))
		require.NoError(t, binary.Write(&cd, le, []uint16{uint16(len(central)), 0, 0, 0, 0}))
		require.NoError(t, binary.Write(&cd, le, []uint32{0, offset}))
		cd.WriteString(central)
	}

	cdOffset := uint32(body.Len())
	body.Write(cd.Bytes())
	require.NoError(t, binary.Write(&body, le, uint32(endOfCentralSig)))
	require.NoError(t, binary.Write(&body, le, []uint16{0, 0, uint16(len(entries)), uint16(len(entries))}))
	require.NoError(t, binary.Write(&body, le, []uint32{uint32(cd.Len()), cdOffset}))
	require.NoError(t, binary.Write(&body, le, uint16(0)))
	return body.Bytes()
}

func writeRawZip(t *testing.T, entries []rawEntry) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.pak")
	require.NoError(t, os.WriteFile(p, buildRawZip(t, entries), 0644))
	return p
}
