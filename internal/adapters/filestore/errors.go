// internal/adapters/filestore/errors.go
package filestore

import "errors"

// Error kinds surfaced to the presentation layer. Whole-file failures abort
// the operation; per-record validation failures never do (they are collected
// in the LoadReport instead).
var (
	// ErrNotReadable means the file does not exist or could not be opened.
	ErrNotReadable = errors.New("file not readable")
	// ErrNotWritable means the target directory refused the write.
	ErrNotWritable = errors.New("file not writable")
	// ErrUnsupportedFormat means the extension is unrecognized and content
	// sniffing was inconclusive.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDecode means the file content could not be parsed at all under the
	// detected format.
	ErrDecode = errors.New("file content not decodable")
)
