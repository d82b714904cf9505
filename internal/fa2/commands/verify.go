// Package commands contains the command-line interface for the fa2 application.
package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gingerrexayers/fa2-go/internal/fa2/lib"
)

// Verify is the main function for the 'verify' command. It parses an
// archive, checking every structural invariant (signature, header layout,
// index bounds, alignment of the data region), and reports a summary. For
// archives whose entries are in canonical sorted order — everything this
// packer produces — it additionally rebuilds the image from the parsed
// entries and confirms the result is byte-identical.
func Verify(archivePath string) error {
	absArchivePath, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", archivePath, err)
	}

	image, err := os.ReadFile(absArchivePath)
	if err != nil {
		return fmt.Errorf("could not read archive: %w", err)
	}

	header, err := lib.ParseHeader(image)
	if err != nil {
		return fmt.Errorf("invalid archive header: %w", err)
	}

	entries, err := lib.Parse(image)
	if err != nil {
		return fmt.Errorf("invalid archive: %w", err)
	}

	fmt.Printf("Archive \"%s\":\n", absArchivePath)
	fmt.Printf("   - Signature:    0x%08X\n", header.Signature)
	fmt.Printf("   - Index offset: %d\n", header.IndexOffset)
	fmt.Printf("   - Entry count:  %d\n", header.EntryCount)
	fmt.Printf("   - Total size:   %d bytes\n", len(image))

	sorted := sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	if !sorted {
		// Entries from a foreign packer may be in arbitrary order; that is
		// structurally valid, it just cannot be repacked byte-identically.
		fmt.Println("✅ Archive is structurally valid (entries are not in canonical order).")
		return nil
	}

	rebuilt, err := lib.Build(entries)
	if err != nil {
		return fmt.Errorf("archive parses but cannot be rebuilt: %w", err)
	}
	if !bytes.Equal(rebuilt, image) {
		return fmt.Errorf("archive parses but repacking produced a different image")
	}

	fmt.Println("✅ Archive is valid and byte-stable under repacking.")
	return nil
}
