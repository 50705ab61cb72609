package filestore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcanavera/stockroom/internal/adapters/filestore"
	"github.com/mcanavera/stockroom/internal/core/ports"
	"github.com/mcanavera/stockroom/test/helpers"
)

func TestDetectFormat_ByExtension(t *testing.T) {
	tests := []struct {
		path string
		want ports.Format
	}{
		{"inventory.json", ports.FormatJSON},
		{"inventory.JSON", ports.FormatJSON},
		{"inventory.yaml", ports.FormatYAML},
		{"inventory.yml", ports.FormatYAML},
		{"inventory.csv", ports.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			// Extension-only detection never touches the file.
			got, err := filestore.DetectFormat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_TxtSniffsJSON(t *testing.T) {
	dir := t.TempDir()

	jsonObj := helpers.WriteFile(t, dir, "a.txt", `{"a":1}`)
	got, err := filestore.DetectFormat(jsonObj)
	require.NoError(t, err)
	assert.Equal(t, ports.FormatJSON, got)

	jsonArr := helpers.WriteFile(t, dir, "b.txt", "\n  [1, 2]")
	got, err = filestore.DetectFormat(jsonArr)
	require.NoError(t, err)
	assert.Equal(t, ports.FormatJSON, got)

	delimited := helpers.WriteFile(t, dir, "c.txt", "PRD-0001|Apple|Food & Beverages||10|0.5|fresh\n")
	got, err = filestore.DetectFormat(delimited)
	require.NoError(t, err)
	assert.Equal(t, ports.FormatTXT, got)

	empty := helpers.WriteFile(t, dir, "d.txt", "")
	got, err = filestore.DetectFormat(empty)
	require.NoError(t, err)
	assert.Equal(t, ports.FormatTXT, got)
}

func TestDetectFormat_UnknownExtension(t *testing.T) {
	dir := t.TempDir()

	sniffable := helpers.WriteFile(t, dir, "inventory.dat", `[{"name":"x"}]`)
	got, err := filestore.DetectFormat(sniffable)
	require.NoError(t, err)
	assert.Equal(t, ports.FormatJSON, got)

	inconclusive := helpers.WriteFile(t, dir, "notes.dat", "just some text")
	_, err = filestore.DetectFormat(inconclusive)
	assert.ErrorIs(t, err, filestore.ErrUnsupportedFormat)
}

func TestDetectFormat_MissingFile(t *testing.T) {
	_, err := filestore.DetectFormat("does/not/exist.txt")
	assert.ErrorIs(t, err, filestore.ErrNotReadable)
}
