// Package types defines the shared data structures for the fa2 application.
package types

// Entry represents one logical file stored in an FA2 archive. Name is the
// human-readable identifier (the base name of the source file) and Data is
// the raw content. OriginalSize and StoredSize are filled in when an entry
// is parsed back out of an archive; they are equal for every entry this
// packer produces, since no compression path exists.
type Entry struct {
	Name         string
	Data         []byte
	OriginalSize uint32
	StoredSize   uint32
}

// Header is the fixed 16-byte record at the start of every FA2 archive.
// All fields are unsigned 32-bit little-endian integers on disk.
type Header struct {
	Signature   uint32 // constant FA2 magic value
	Flags       uint32 // 0 means the index table is not compressed
	IndexOffset uint32 // absolute byte offset of the index table
	EntryCount  uint32 // number of index records
}

// IndexRecord is the fixed 32-byte per-entry record in the index table.
// Name holds the null-terminated, zero-padded stored name. Reserved's first
// byte is the per-entry compressed flag (always 0 here); the remaining eight
// bytes are unused and zero-filled. The record carries no offset field:
// a reader derives each entry's data offset by summing the 16-byte-aligned
// sizes of all preceding entries, starting from the data-region base.
type IndexRecord struct {
	Name         [15]byte
	Reserved     [9]byte
	OriginalSize uint32
	StoredSize   uint32
}
