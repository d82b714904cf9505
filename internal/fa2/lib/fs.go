package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/denormal/go-gitignore"

	"github.com/gingerrexayers/fa2-go/internal/fa2/types"
)

// defaultIgnorePatterns contains the patterns that are always excluded from
// packing. The ignore file itself is metadata, not content.
var defaultIgnorePatterns = []string{
	IgnoreFilename,
}

var (
	// ignoreCache stores compiled gitignore.GitIgnore objects so the
	// .fa2ignore file is read and parsed at most once per directory. The key
	// is the canonical absolute path of the source directory. Access is
	// serialized by a mutex because the gitignore library is not safe for
	// concurrent use.
	ignoreCache = make(map[string]gitignore.GitIgnore)
	cacheMutex  = &sync.Mutex{}
)

// isNameIgnored reports whether a file name directly inside dir matches the
// ignore patterns for that directory.
func isNameIgnored(dir, name string) bool {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	canonicalDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		canonicalDir = dir // Fallback on error.
	}

	matcher, found := ignoreCache[canonicalDir]
	if !found {
		matcher = loadIgnoreMatcher(canonicalDir)
		ignoreCache[canonicalDir] = matcher
	}

	// The lister is non-recursive, so the relative path is just the name.
	match := matcher.Match(name)
	if match == nil {
		// If the relative name doesn't work, try the absolute path.
		match = matcher.Match(filepath.Join(canonicalDir, name))
	}
	if match == nil {
		return false
	}
	return match.Ignore()
}

// loadIgnoreMatcher compiles the default patterns plus any patterns found in
// the directory's .fa2ignore file into a gitignore matcher.
func loadIgnoreMatcher(dir string) gitignore.GitIgnore {
	rawPatterns := make([]string, len(defaultIgnorePatterns))
	copy(rawPatterns, defaultIgnorePatterns)

	ignoreFilePath := filepath.Join(dir, IgnoreFilename)
	if content, err := os.ReadFile(ignoreFilePath); err == nil {
		rawPatterns = append(rawPatterns, strings.Split(string(content), "\n")...)
	}

	var finalPatterns []string
	for _, p := range rawPatterns {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			finalPatterns = append(finalPatterns, trimmed)
		}
	}

	reader := strings.NewReader(strings.Join(finalPatterns, "\n"))
	matcher := gitignore.New(
		reader,
		dir,
		// The error handler tells the parser to continue on error.
		func(err gitignore.Error) bool { return false },
	)

	// If the matcher fails to compile, fall back to one that ignores nothing.
	if matcher == nil {
		return gitignore.New(strings.NewReader(""), "", nil)
	}

	return matcher
}

// ResetIgnoreState clears the ignore cache. This is used for testing.
func ResetIgnoreState() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]gitignore.GitIgnore)
}

// ListDirFiles returns the names of the regular files directly inside dir,
// sorted lexicographically. The listing is non-recursive: subdirectories and
// non-regular files are skipped, as are names matched by the directory's
// .fa2ignore patterns.
func ListDirFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		if isNameIgnored(dir, entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	// Sort by filename for determinism; this ordering carries through to the
	// archive's data and index regions.
	sort.Strings(names)
	return names, nil
}

// CollectEntries lists dir and reads every file's content, returning entries
// in sorted name order, ready to hand to Build. Any read failure aborts the
// whole collection.
func CollectEntries(dir string) ([]types.Entry, error) {
	names, err := ListDirFiles(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		entries = append(entries, types.Entry{Name: name, Data: data})
	}
	return entries, nil
}

// WriteFileAtomic writes data to path without ever leaving a corrupt or
// truncated file in place: the bytes go to a temporary file in the same
// directory, are synced to stable storage, and are then renamed over the
// destination in one step.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fa2-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			// Best effort: never leave the temp file behind on failure.
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	// Ensure the data is on stable storage before the rename makes it visible.
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
