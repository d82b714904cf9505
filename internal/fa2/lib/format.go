// Package lib contains the core, reusable services for the fa2 application.
package lib

// --- FA2 layout constants ---

// Signature is the 4-byte magic value at the start of every FA2 archive
// ("FA2\0" read as a little-endian uint32).
const Signature uint32 = 0x00324146

// HeaderSize is the size of the fixed archive header in bytes.
const HeaderSize = 16

// DataBaseOffset is the absolute offset where the data region begins.
// It always equals the header size; the first entry's content starts here.
const DataBaseOffset = HeaderSize

// IndexRecordSize is the size of one index-table record in bytes.
const IndexRecordSize = 32

// NameFieldSize is the width of the stored name field in an index record,
// including the null terminator.
const NameFieldSize = 15

// MaxNameBytes is the longest encoded name that fits in the name field.
// Names of NameFieldSize bytes or more are truncated to this length before
// the terminator is appended.
const MaxNameBytes = NameFieldSize - 1

// IgnoreFilename is the name of the file containing user-defined ignore
// patterns for the directory lister.
const IgnoreFilename = ".fa2ignore"

// Align16 rounds a byte length up to the next multiple of 16. Values that
// are already a multiple of 16 are unchanged, including 0. Each stored file
// is padded to this boundary so subsequent entries start 16-byte aligned.
func Align16(n uint32) uint32 {
	return (n + 0xF) &^ 0xF
}
