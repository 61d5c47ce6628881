// Package ioutils provides file system utilities for storesearch.
//
// This package contains functions for:
//   - Atomic file writing
//   - Filename formatting and sanitization
//   - Directory creation
//
// Functions that accept a context.Context check it before touching the
// file system; the writes themselves are not interruptible.
//
// # File Operations
//
//	// Write data to a file without exposing partial content
//	err := ioutils.WriteFile(ctx, "/path/to/file.jpg", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// FormatFileName fills a naming template first:
//
//	name := ioutils.FormatFileName("{artist} - {name}", fields)
package ioutils
