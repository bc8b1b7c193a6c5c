package uploader

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoPaths       = errors.New("no files matched the provided paths")
	ErrEmptyFile     = errors.New("empty files cannot be uploaded")
	ErrFileOverCap   = errors.New("file exceeds the bundle size cap")
	ErrBundleSizeCap = errors.New("requested bundle size exceeds the maximum")
)

// Group of file paths planned for one bundle.
type PathsGroup struct {
	Paths    []string
	DataSize uint64
}

// ExpandTilde resolves a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// DiscoverPaths expands glob patterns and plain paths into a sorted,
// deduplicated file list. Empty files are rejected at intake.
func DiscoverPaths(patterns []string) (paths []string, err error) {
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		pattern = ExpandTilde(pattern)

		matches, globErr := filepath.Glob(pattern)
		if globErr != nil {
			err = fmt.Errorf("bad glob pattern %s: %w", pattern, globErr)
			return nil, err
		}

		for _, match := range matches {
			info, statErr := os.Stat(match)
			if statErr != nil || info.IsDir() {
				continue
			}
			if info.Size() == 0 {
				return nil, fmt.Errorf("%w: %s", ErrEmptyFile, match)
			}
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}

	if len(paths) == 0 {
		err = ErrNoPaths
		return
	}

	sort.Strings(paths)
	return
}

// GroupPaths packs paths greedily, in order, into groups of at most
// maxBytes. A single file over the cap is an intake error.
func GroupPaths(paths []string, maxBytes uint64) (groups []PathsGroup, err error) {
	var current PathsGroup

	for _, path := range paths {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil, statErr
		}
		size := uint64(info.Size())

		if size > maxBytes {
			return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileOverCap, path, size)
		}

		if current.DataSize+size > maxBytes && len(current.Paths) > 0 {
			groups = append(groups, current)
			current = PathsGroup{}
		}

		current.Paths = append(current.Paths, path)
		current.DataSize += size
	}

	if len(current.Paths) > 0 {
		groups = append(groups, current)
	}

	return
}

// EnsureLogDir returns the status directory, creating
// arloader_<6 base64url chars> next to the first input file when none was
// provided.
func EnsureLogDir(logDir string, firstPath string) (out string, err error) {
	if logDir != "" {
		out = ExpandTilde(logDir)
		err = os.MkdirAll(out, 0o755)
		return
	}

	randBytes := make([]byte, 4)
	_, err = rand.Read(randBytes)
	if err != nil {
		return
	}
	stem := base64.RawURLEncoding.EncodeToString(randBytes)[:6]

	out = filepath.Join(filepath.Dir(firstPath), "arloader_"+stem)
	err = os.MkdirAll(out, 0o755)
	return
}

// ContentType sniffs the mime type of a file, falling back to
// application/octet-stream.
func ContentType(path string) string {
	kind, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return kind.String()
}
