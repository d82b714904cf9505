// Package commands contains the command-line interface for the fa2 application.
package commands

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gingerrexayers/fa2-go/internal/fa2/lib"
)

// formatBytes is a utility to convert bytes into a human-readable string (KB, MB, GB).
func formatBytes(bytes int64, decimals int) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const k = 1024
	if decimals < 0 {
		decimals = 0
	}
	sizes := []string{"Bytes", "KB", "MB", "GB", "TB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	return fmt.Sprintf("%.*f %s", decimals, float64(bytes)/math.Pow(k, float64(i)), sizes[i])
}

// List is the main function for the 'list' command. It parses an existing
// FA2 archive and prints its index table. Data offsets are not stored in the
// format; they are derived the same way a reader locates entries, by summing
// the aligned sizes of preceding entries.
func List(archivePath string) error {
	absArchivePath, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("could not resolve absolute path for %s: %w", archivePath, err)
	}

	image, err := os.ReadFile(absArchivePath)
	if err != nil {
		return fmt.Errorf("could not read archive: %w", err)
	}

	entries, err := lib.Parse(image)
	if err != nil {
		return fmt.Errorf("could not parse archive: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("Archive \"%s\" is empty.\n", absArchivePath)
		return nil
	}

	fmt.Printf("Entries in \"%s\":\n", absArchivePath)
	fmt.Printf("%-16s %-10s %-15s %s\n", "NAME", "OFFSET", "ORIGINAL SIZE", "STORED SIZE")
	fmt.Printf("%-16s %-10s %-15s %s\n", "==============", "========", "=============", "=============")

	offset := uint32(lib.DataBaseOffset)
	var totalSize int64
	for _, entry := range entries {
		fmt.Printf("%-16s %-10d %-15s %s\n",
			entry.Name,
			offset,
			formatBytes(int64(entry.OriginalSize), 2),
			formatBytes(int64(entry.StoredSize), 2),
		)
		offset += lib.Align16(entry.StoredSize)
		totalSize += int64(entry.OriginalSize)
	}

	fmt.Printf("\n%d file(s), %s of content.\n", len(entries), formatBytes(totalSize, 2))
	return nil
}
