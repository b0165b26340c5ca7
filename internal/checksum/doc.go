// Package checksum provides file content hashing with normalization support.
//
// Two checksums are computed per source file:
//
//   - Raw checksum: hash of the exact bytes (detects all changes)
//   - Normalized checksum: hash after stripping a UTF-8 BOM, normalizing
//     line endings to LF, and dropping trailing blank lines
//
// The normalized checksum identifies re-downloads of the same disclosure
// that differ only in transfer artifacts; the scanner uses it to skip
// duplicate files within a run.
package checksum
