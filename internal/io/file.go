package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
	placeholders   = regexp.MustCompile(`\{([a-z]+)\}`)
)

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never observe a partial file.
//
// The file is created with mode 0644. If the file already exists, it is
// replaced.
//
// Example:
//
//	err := WriteFile(ctx, "/tmp/art/ABBA - Waterloo.jpg", jpegBytes)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")      // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")            // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// FormatFileName expands {key} placeholders in format from fields and
// sanitizes the result. Unknown placeholders expand to nothing.
//
// Example:
//
//	FormatFileName("{artist} - {name}", map[string]string{
//	    "artist": "ABBA",
//	    "name":   "Waterloo",
//	}) // Returns "ABBA - Waterloo"
func FormatFileName(format string, fields map[string]string) string {
	name := placeholders.ReplaceAllStringFunc(format, func(m string) string {
		return fields[m[1:len(m)-1]]
	})
	return SanitizeFileName(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
