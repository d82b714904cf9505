package lib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/gingerrexayers/fa2-go/internal/fa2/types"
)

// --- Builder errors ---

var (
	// ErrNameCollision is returned when two entries map to the same stored
	// 15-byte name. A reader has no other way to tell two entries apart, so
	// colliding names (exact duplicates, or distinct long names that truncate
	// to the same 14-byte prefix) make the archive ambiguous.
	ErrNameCollision = errors.New("entries collide on stored name")

	// ErrUnsortedEntries is returned when the input is not in lexicographic
	// name order. Sorted input is an explicit precondition of Build, since
	// entry order fixes both the data-region layout and the index order.
	ErrUnsortedEntries = errors.New("entries are not sorted by name")

	// ErrEntryTooLarge is returned when an entry's content cannot be
	// represented in the format's 32-bit size fields.
	ErrEntryTooLarge = errors.New("entry exceeds 32-bit size limit")
)

// SortEntries sorts entries lexicographically by their raw name strings.
// This is the canonical ordering every archive produced by this packer uses;
// callers of Build are expected to have applied it (or an equivalent sort).
func SortEntries(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}

// EncodeName converts a name to its stored 15-byte form: the UTF-8 bytes of
// the name, truncated to 14 bytes if they would not otherwise fit, followed
// by a null terminator and zero padding to exactly 15 bytes.
func EncodeName(name string) [NameFieldSize]byte {
	var field [NameFieldSize]byte
	raw := []byte(name)
	if len(raw) >= NameFieldSize {
		raw = raw[:MaxNameBytes]
	}
	// The array's remaining bytes are already zero, which provides both the
	// terminator and the padding.
	copy(field[:], raw)
	return field
}

// storedName returns the human-readable form of an encoded name field.
func storedName(field [NameFieldSize]byte) string {
	if i := bytes.IndexByte(field[:], 0); i >= 0 {
		return string(field[:i])
	}
	return string(field[:])
}

// Build serializes entries into a complete FA2 archive image.
//
// The input must already be in lexicographic name order and every entry must
// have a unique stored name; Build fails fast with ErrUnsortedEntries or
// ErrNameCollision otherwise. The output is fully determined by the input:
// no timestamps, no random elements. Zero entries is legal and produces a
// 16-byte archive whose index offset is 16.
//
// Layout: the 16-byte header, then each entry's content padded with zero
// bytes to a 16-byte boundary, then one 32-byte index record per entry in
// the same order. The total length is always
//
//	16 + sum(Align16(len(entry.Data))) + 32*len(entries)
func Build(entries []types.Entry) ([]byte, error) {
	// 1. Validate the ordering precondition and stored-name uniqueness.
	seen := make(map[[NameFieldSize]byte]string, len(entries))
	for i := range entries {
		if i > 0 && entries[i].Name < entries[i-1].Name {
			return nil, fmt.Errorf("%w: %q follows %q", ErrUnsortedEntries, entries[i].Name, entries[i-1].Name)
		}
		if int64(len(entries[i].Data)) > math.MaxUint32-0xF {
			return nil, fmt.Errorf("%w: %q is %d bytes", ErrEntryTooLarge, entries[i].Name, len(entries[i].Data))
		}
		encoded := EncodeName(entries[i].Name)
		if prev, dup := seen[encoded]; dup {
			return nil, fmt.Errorf("%w: %q and %q both store as %q",
				ErrNameCollision, prev, entries[i].Name, storedName(encoded))
		}
		seen[encoded] = entries[i].Name
	}

	// 2. Assemble the data region, tracking each entry's size for the index.
	// Offsets are implicit in the format: entry i starts at
	// DataBaseOffset + sum(Align16(size) of entries 0..i-1).
	var data bytes.Buffer
	records := make([]types.IndexRecord, 0, len(entries))
	indexOffset := uint32(DataBaseOffset)
	for i := range entries {
		size := uint32(len(entries[i].Data))
		stored := size // no compression path exists
		data.Write(entries[i].Data)
		if pad := Align16(size) - size; pad > 0 {
			data.Write(make([]byte, pad))
		}
		if Align16(size) > math.MaxUint32-indexOffset {
			return nil, fmt.Errorf("%w: archive exceeds 32-bit addressing", ErrEntryTooLarge)
		}
		indexOffset += Align16(size)

		records = append(records, types.IndexRecord{
			Name:         EncodeName(entries[i].Name),
			OriginalSize: size,
			StoredSize:   stored,
		})
	}

	// 3. Serialize header, data region and index table into one image.
	out := bytes.NewBuffer(make([]byte, 0, int(indexOffset)+len(records)*IndexRecordSize))
	header := types.Header{
		Signature:   Signature,
		Flags:       0, // index table is not compressed
		IndexOffset: indexOffset,
		EntryCount:  uint32(len(entries)),
	}
	// Writing fixed-size structs to a bytes.Buffer cannot fail.
	_ = binary.Write(out, binary.LittleEndian, header)
	out.Write(data.Bytes())
	for _, record := range records {
		_ = binary.Write(out, binary.LittleEndian, record)
	}

	return out.Bytes(), nil
}
