package lib

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gingerrexayers/fa2-go/internal/fa2/types"
)

// buildTestArchive is a helper that builds an archive from the given entries
// and fails the test on any builder error.
func buildTestArchive(t *testing.T, entries []types.Entry) []byte {
	t.Helper()
	archive, err := Build(entries)
	require.NoError(t, err, "Build() failed during test setup")
	return archive
}

func TestRoundTrip(t *testing.T) {
	original := []types.Entry{
		{Name: "a.txt", Data: []byte("hi")},
		{Name: "b.dat", Data: make([]byte, 20)},
		{Name: "boundary.bin", Data: make([]byte, 32)}, // exact multiple of 16
		{Name: "empty.txt", Data: nil},
		{Name: "this_name_is_definitely_too_long.txt", Data: []byte("truncated but intact")},
	}
	archive := buildTestArchive(t, original)

	parsed, err := Parse(archive)
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i, entry := range parsed {
		wantName := original[i].Name
		if len(wantName) >= NameFieldSize {
			// The stored name is the truncated form; content must still be exact.
			wantName = wantName[:MaxNameBytes]
		}
		assert.Equal(t, wantName, entry.Name, "entry %d name", i)
		assert.Equal(t, original[i].Data, entry.Data, "entry %d content", i)
		assert.Equal(t, uint32(len(original[i].Data)), entry.OriginalSize, "entry %d original size", i)
		assert.Equal(t, entry.OriginalSize, entry.StoredSize, "entry %d stored size", i)
	}
}

func TestRoundTripEmptyArchive(t *testing.T) {
	archive := buildTestArchive(t, nil)

	parsed, err := Parse(archive)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestParseHeaderRejectsBadImages(t *testing.T) {
	valid := buildTestArchive(t, []types.Entry{{Name: "a.txt", Data: []byte("hi")}})

	t.Run("image shorter than the header", func(t *testing.T) {
		_, err := ParseHeader(valid[:10])
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("wrong signature", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 'Z'
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("compressed index flag", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[4:8], 1)
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, ErrUnsupportedCompression)
	})

	t.Run("index offset inside the header", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[8:12], 8)
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("truncated index table", func(t *testing.T) {
		_, err := ParseHeader(valid[:len(valid)-1])
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("entry count disagrees with image length", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[12:16], 7)
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("hostile offsets cannot overflow", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[8:12], 0xFFFFFFF0)
		binary.LittleEndian.PutUint32(bad[12:16], 0xFFFFFFFF)
		_, err := ParseHeader(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})
}

func TestParseRejectsBadRecords(t *testing.T) {
	// Single entry: data at 16..18 padded to 32, index record at 32..64.
	makeValid := func(t *testing.T) []byte {
		return buildTestArchive(t, []types.Entry{{Name: "a.txt", Data: []byte("hi")}})
	}
	const recordStart = 32

	t.Run("per-entry compressed flag", func(t *testing.T) {
		bad := makeValid(t)
		bad[recordStart+NameFieldSize] = 1 // first reserved byte
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnsupportedCompression)
	})

	t.Run("stored size disagrees with original size", func(t *testing.T) {
		bad := makeValid(t)
		binary.LittleEndian.PutUint32(bad[recordStart+28:recordStart+32], 3)
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("entry data runs past the index table", func(t *testing.T) {
		bad := makeValid(t)
		binary.LittleEndian.PutUint32(bad[recordStart+24:recordStart+28], 1000)
		binary.LittleEndian.PutUint32(bad[recordStart+28:recordStart+32], 1000)
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("data region does not reach the index table", func(t *testing.T) {
		bad := makeValid(t)
		// Sizes of 0 leave the 16 padded data bytes unaccounted for.
		binary.LittleEndian.PutUint32(bad[recordStart+24:recordStart+28], 0)
		binary.LittleEndian.PutUint32(bad[recordStart+28:recordStart+32], 0)
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})

	t.Run("name field without a terminator", func(t *testing.T) {
		bad := buildTestArchive(t, []types.Entry{{Name: "12345678901234", Data: []byte("hi")}})
		bad[recordStart+MaxNameBytes] = 'X' // overwrite the only NUL
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrCorruptArchive)
	})
}
