package lib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gingerrexayers/fa2-go/internal/fa2/types"
)

// --- Reader errors ---

var (
	// ErrBadSignature is returned when the archive does not start with the
	// FA2 magic value.
	ErrBadSignature = errors.New("not an FA2 archive")

	// ErrCorruptArchive is returned when the header or index describe a
	// layout that does not match the archive's actual bytes.
	ErrCorruptArchive = errors.New("corrupt FA2 archive")

	// ErrUnsupportedCompression is returned when the global flags or a
	// per-entry flag indicate compression. This packer never emits
	// compressed entries, so a reader is not required to handle them.
	ErrUnsupportedCompression = errors.New("compressed FA2 entries are not supported")
)

// ParseHeader decodes and validates the fixed 16-byte header of an archive
// image. It checks the signature and that the declared index offset and
// entry count are consistent with the image's length: the index table must
// begin at or after the data-region base and run exactly to the end of the
// image.
func ParseHeader(archive []byte) (types.Header, error) {
	if len(archive) < HeaderSize {
		return types.Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptArchive, len(archive))
	}

	header := types.Header{
		Signature:   binary.LittleEndian.Uint32(archive[0:4]),
		Flags:       binary.LittleEndian.Uint32(archive[4:8]),
		IndexOffset: binary.LittleEndian.Uint32(archive[8:12]),
		EntryCount:  binary.LittleEndian.Uint32(archive[12:16]),
	}

	if header.Signature != Signature {
		return types.Header{}, fmt.Errorf("%w: signature 0x%08X", ErrBadSignature, header.Signature)
	}
	if header.Flags != 0 {
		return types.Header{}, fmt.Errorf("%w: index flags 0x%08X", ErrUnsupportedCompression, header.Flags)
	}
	if header.IndexOffset < DataBaseOffset {
		return types.Header{}, fmt.Errorf("%w: index offset %d overlaps the header", ErrCorruptArchive, header.IndexOffset)
	}
	// All arithmetic in uint64 so a hostile header cannot overflow.
	expectedLen := uint64(header.IndexOffset) + uint64(header.EntryCount)*IndexRecordSize
	if expectedLen != uint64(len(archive)) {
		return types.Header{}, fmt.Errorf("%w: header describes %d bytes, image has %d",
			ErrCorruptArchive, expectedLen, len(archive))
	}

	return header, nil
}

// Parse reconstructs the entries of an FA2 archive image. It is the inverse
// of Build: entries come back in index order with their exact content bytes,
// so Build followed by Parse is lossless for any input Build accepts.
//
// Each entry's data offset is derived, as the format requires, by summing
// the 16-byte-aligned stored sizes of all preceding entries starting from
// the data-region base. Parse verifies that this summation lands exactly on
// the declared index offset.
func Parse(archive []byte) ([]types.Entry, error) {
	header, err := ParseHeader(archive)
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, header.EntryCount)
	offset := uint64(DataBaseOffset)
	recordBase := uint64(header.IndexOffset)

	for i := uint32(0); i < header.EntryCount; i++ {
		raw := archive[recordBase+uint64(i)*IndexRecordSize:][:IndexRecordSize]

		var record types.IndexRecord
		// Reading a fixed-size struct from an exactly-sized buffer cannot fail.
		_ = binary.Read(bytes.NewReader(raw), binary.LittleEndian, &record)

		if record.Reserved[0] != 0 {
			return nil, fmt.Errorf("%w: entry %d", ErrUnsupportedCompression, i)
		}
		if record.StoredSize != record.OriginalSize {
			return nil, fmt.Errorf("%w: entry %d stored size %d != original size %d",
				ErrCorruptArchive, i, record.StoredSize, record.OriginalSize)
		}
		if bytes.IndexByte(record.Name[:], 0) < 0 {
			return nil, fmt.Errorf("%w: entry %d name is not null-terminated", ErrCorruptArchive, i)
		}
		if offset+uint64(record.StoredSize) > uint64(header.IndexOffset) {
			return nil, fmt.Errorf("%w: entry %d data runs past the index table", ErrCorruptArchive, i)
		}

		// Copy the content out so entries do not alias the archive buffer.
		data := make([]byte, record.StoredSize)
		copy(data, archive[offset:offset+uint64(record.StoredSize)])

		entries = append(entries, types.Entry{
			Name:         storedName(record.Name),
			Data:         data,
			OriginalSize: record.OriginalSize,
			StoredSize:   record.StoredSize,
		})
		offset += uint64(Align16(record.StoredSize))
	}

	// The padded data region must account for every byte up to the index.
	if offset != uint64(header.IndexOffset) {
		return nil, fmt.Errorf("%w: data region ends at %d, index begins at %d",
			ErrCorruptArchive, offset, header.IndexOffset)
	}

	return entries, nil
}
