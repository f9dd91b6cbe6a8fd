// Package filepaths provides the path helpers behind file-name completion:
// listing a directory with subdirectories marked by a trailing separator,
// splitting typed input into the part already typed and the fragment being
// completed, and suggesting entries that extend that fragment.
//
// Nothing is cached. Every call reads the filesystem as it is at call time.
package filepaths

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const separator = string(os.PathSeparator)

// ListPath lists the entries of rootDir, appending a path separator to every
// entry that is a directory. An empty rootDir lists the current directory.
// Entries come back in the order the filesystem returns them, unsorted.
//
// A rootDir that does not exist or is not a directory yields an empty slice
// and no error. Other filesystem failures (permission denied, I/O errors) are
// returned to the caller.
func ListPath(rootDir string) ([]string, error) {
	if rootDir == "" {
		rootDir = "."
	}

	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		return []string{}, nil
	}

	dir, err := os.Open(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", rootDir, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", rootDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if isDirEntry(rootDir, entry) {
			name += separator
		}
		names = append(names, name)
	}

	return names, nil
}

// isDirEntry reports whether entry is a directory, following symlinks.
func isDirEntry(rootDir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(rootDir, entry.Name()))
	return err == nil && info.IsDir()
}

// CompletePath returns the text to offer for a listing entry currDir given
// the last path component the user typed.
//
// An empty lastDir, or one that currDir already starts with, returns currDir
// unchanged. A lastDir of exactly "~" returns currDir anchored under "~",
// since expansion has already replaced the literal tilde. Any other lastDir
// reports ok == false.
func CompletePath(currDir, lastDir string) (string, bool) {
	if lastDir == "" || strings.HasPrefix(currDir, lastDir) {
		return currDir, true
	}
	if lastDir == "~" {
		if filepath.IsAbs(currDir) {
			return currDir, true
		}
		return lastDir + separator + currDir, true
	}
	return "", false
}

// ParsePath splits rootDir into the directory part and the last component.
// position is the negative character count of lastDir (0 when lastDir is
// empty): the cursor-relative point where replacement text starts.
func ParsePath(rootDir string) (baseDir, lastDir string, position int) {
	if rootDir == "" {
		return "", "", 0
	}

	baseDir, lastDir = splitPath(rootDir)
	if lastDir != "" {
		position = -utf8.RuneCountInString(lastDir)
	}
	return baseDir, lastDir, position
}

// splitPath splits at the last separator. Trailing separators are stripped
// from the head unless the head consists only of separators, so "a/b/" gives
// ("a/b", "") and "/x" gives ("/", "x").
func splitPath(p string) (head, tail string) {
	i := strings.LastIndex(p, separator) + 1
	head, tail = p[:i], p[i:]
	if trimmed := strings.TrimRight(head, separator); trimmed != "" {
		head = trimmed
	}
	return head, tail
}

// SuggestPath suggests entries for a partially typed path, expanding "~" and
// environment variables from the current process environment. See
// Expander.SuggestPath.
func SuggestPath(rootDir string) (iter.Seq[string], error) {
	return NewExpander(nil).SuggestPath(rootDir)
}

// DirPathExists reports whether the directory part of path exists. For
// "/var/log/app/out.log" it checks "/var/log/app". The directory part is
// taken as written, without cleaning, and a path with no directory part
// reports false. It never creates anything.
func DirPathExists(path string) bool {
	dir, _ := splitPath(path)
	if dir == "" {
		return false
	}
	_, err := os.Stat(dir)
	return err == nil
}

// Apply threads value through fns from left to right.
func Apply[T any](value T, fns ...func(T) T) T {
	for _, fn := range fns {
		value = fn(value)
	}
	return value
}

// filterOnce returns a sequence over the entries accepted by keep. Every
// entry is visited at most once across all ranges: a range that stops early
// leaves the rest for the next one, and a drained sequence yields nothing.
func filterOnce(entries []string, keep func(string) bool) iter.Seq[string] {
	next := 0
	return func(yield func(string) bool) {
		for next < len(entries) {
			entry := entries[next]
			next++
			if keep(entry) && !yield(entry) {
				return
			}
		}
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
