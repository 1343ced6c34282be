package shelf

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/ewhitby/pipekit/core/config"
	"github.com/ewhitby/pipekit/core/constants"
)

// Context selects which shelf directory an operation targets. Maya loads
// shelves from the local prefs folder; preset and global are the shared
// studio locations.
type Context string

const (
	Local  Context = "local"
	Preset Context = "preset"
	Global Context = "global"
)

var shelfFileRe = regexp.MustCompile(`^shelf_(\S*?)\.mel$`)

// IsShelfFile reports whether a file name follows the Maya shelf convention
// (shelf_<name>.mel).
func IsShelfFile(name string) bool {
	return shelfFileRe.MatchString(name)
}

// ShortName extracts the shelf name from a shelf file name.
func ShortName(fileName string) (string, bool) {
	m := shelfFileRe.FindStringSubmatch(fileName)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FileName recomposes the full shelf file name from a short shelf name.
func FileName(shortName string) string {
	return constants.ShelfFilePrefix + shortName + constants.ShelfFileExt
}

// DirFor resolves a shelf context to its configured directory. The directory
// must already exist; a context pointing at a missing directory means the
// config is wrong, not that we should create it.
func DirFor(ctx Context, cfg config.Shelves) (string, error) {
	var dir string
	switch ctx {
	case Local:
		dir = cfg.LocalDir
	case Preset:
		dir = cfg.PresetDir
	case Global:
		dir = cfg.GlobalDir
	default:
		return "", fmt.Errorf("invalid shelf context %q: select from local, preset, global", ctx)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("shelf directory %s for context %q is not readable: %w", dir, ctx, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory, check the shelves config", dir)
	}

	return dir, nil
}

// List returns the shelf names found in a context, in reference order.
func List(ctx Context, cfg config.Shelves) ([]string, error) {
	dir, err := DirFor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read shelf directory %s: %w", dir, err)
	}

	var shelves []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := ShortName(entry.Name()); ok {
			shelves = append(shelves, name)
		}
	}

	return SortByReference(shelves, cfg.Order), nil
}

// SortByReference orders shelf names by their position in the reference
// list. Names missing from the reference list sort after the known ones,
// keeping their relative order.
func SortByReference(shelves, reference []string) []string {
	index := func(name string) int {
		for i, ref := range reference {
			if ref == name {
				return i
			}
		}
		return len(reference)
	}

	sorted := make([]string, len(shelves))
	copy(sorted, shelves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return index(sorted[i]) < index(sorted[j])
	})
	return sorted
}
