// Package commands contains the command-line interface for the fa2 application.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gingerrexayers/fa2-go/internal/fa2/lib"
)

// ErrNotDirectory is returned when the pack source exists but is not a
// directory.
var ErrNotDirectory = errors.New("source is not a directory")

// Pack is the main function for the 'pack' command. It lists the regular
// files directly inside sourceDir, reads them all, builds an FA2 archive in
// memory and writes it to outputPath atomically. No output file is created
// or replaced until every input has been read and the full image built.
func Pack(sourceDir, outputPath string) error {
	// 1. Initial setup and validation.
	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", sourceDir, err)
	}
	info, err := os.Stat(absSourceDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", absSourceDir)
	}
	if err != nil {
		return fmt.Errorf("could not stat %s: %w", absSourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, absSourceDir)
	}

	fmt.Printf("📦 Packing \"%s\"...\n", absSourceDir)

	// 2. Gather the entries in sorted name order.
	entries, err := lib.CollectEntries(absSourceDir)
	if err != nil {
		return fmt.Errorf("error reading source files: %w", err)
	}

	fmt.Printf("   - Found %d file(s) to pack...\n", len(entries))

	// 3. Build the full archive image in memory.
	archive, err := lib.Build(entries)
	if err != nil {
		return fmt.Errorf("error building archive: %w", err)
	}

	// 4. Write it out; a failed build must never leave a truncated archive.
	if err := lib.WriteFileAtomic(outputPath, archive); err != nil {
		return fmt.Errorf("error writing archive: %w", err)
	}

	fmt.Printf("✅ FA2 archive \"%s\" created successfully with %d file(s).\n", outputPath, len(entries))
	return nil
}
