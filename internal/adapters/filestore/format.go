// internal/adapters/filestore/format.go
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mcanavera/stockroom/internal/core/ports"
)

// sniffLimit bounds how much of a file is read for content sniffing.
const sniffLimit = 512

// DetectFormat resolves the on-disk format of the file at path. The
// extension decides for .json, .yaml/.yml and .csv. For .txt the first
// non-whitespace byte is inspected: '{' or '[' means the file actually
// carries JSON, anything else means the pipe-delimited record format.
// Unrecognized extensions fall back to the same sniff and fail with
// ErrUnsupportedFormat when it is inconclusive.
func DetectFormat(path string) (ports.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return ports.FormatJSON, nil
	case ".yaml", ".yml":
		return ports.FormatYAML, nil
	case ".csv":
		return ports.FormatCSV, nil
	}

	head, err := readHead(path)
	if err != nil {
		return ports.FormatAuto, err
	}
	return detectFromContent(ext, head)
}

// detectFromContent applies the .txt/unknown-extension sniffing rules to
// content already in memory.
func detectFromContent(ext string, content []byte) (ports.Format, error) {
	switch ext {
	case ".json":
		return ports.FormatJSON, nil
	case ".yaml", ".yml":
		return ports.FormatYAML, nil
	case ".csv":
		return ports.FormatCSV, nil
	}

	if b, ok := firstByte(content); ok && (b == '{' || b == '[') {
		return ports.FormatJSON, nil
	}
	if ext == ".txt" {
		return ports.FormatTXT, nil
	}
	return ports.FormatAuto, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// firstByte returns the first non-whitespace byte of content.
func firstByte(content []byte) (byte, bool) {
	for _, b := range content {
		if !unicode.IsSpace(rune(b)) {
			return b, true
		}
	}
	return 0, false
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	defer f.Close()

	head := make([]byte, sniffLimit)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	return head[:n], nil
}
