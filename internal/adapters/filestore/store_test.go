package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcanavera/stockroom/internal/adapters/filestore"
	"github.com/mcanavera/stockroom/internal/core/domain"
	"github.com/mcanavera/stockroom/internal/core/ports"
	"github.com/mcanavera/stockroom/test/helpers"
)

func newStore(t *testing.T) *filestore.FileStore {
	t.Helper()
	return filestore.New(filestore.DefaultOptions(), helpers.TestLogger())
}

func TestFileStore_RoundTrip(t *testing.T) {
	formats := []string{"json", "yaml", "csv", "txt"}

	for _, ext := range formats {
		t.Run(ext, func(t *testing.T) {
			store := newStore(t)
			inv := helpers.SampleInventory(t)
			path := filepath.Join(t.TempDir(), "inventory."+ext)
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, inv, path, ports.FormatAuto))

			loaded, report, err := store.Load(ctx, path)
			require.NoError(t, err)
			assert.True(t, report.Clean(), "unexpected skipped records: %v", report.Skipped)
			assert.True(t, inv.Equal(loaded), "round trip changed the inventory")
		})
	}
}

func TestFileStore_SaveInfersJSONForUnknownExtension(t *testing.T) {
	store := newStore(t)
	inv := helpers.SampleInventory(t)
	path := filepath.Join(t.TempDir(), "inventory.backup")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, inv, path, ports.FormatAuto))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('['), data[0])
}

func TestFileStore_LoadSkipsInvalidRecords(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := helpers.WriteFile(t, dir, "inventory.json", `[
		{"product_id": "PRD-0001", "name": "Mouse", "category_main": "Electronics", "quantity": 3, "price": 19.99},
		{"product_id": "PRD-0002", "category_main": "Electronics", "quantity": 1, "price": 5},
		{"product_id": "PRD-0003", "name": "Lamp", "category_main": "Home & Garden", "quantity": 2, "price": 34.5}
	]`)

	inv, report, err := store.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 2, inv.Len())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, path, report.Skipped[0].Path)
	assert.Equal(t, 1, report.Skipped[0].Index)
	assert.Contains(t, report.Skipped[0].Reason, "name is required")
}

func TestFileStore_LoadSkipsDuplicateIDs(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := helpers.WriteFile(t, dir, "inventory.txt",
		"PRD-0001|Mouse|Electronics||3|19.99|\nPRD-0001|Lamp|Home & Garden||2|34.5|\n")

	inv, report, err := store.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.Len())
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 1, report.Skipped[0].Index)
	assert.Contains(t, report.Skipped[0].Reason, "duplicate product_id")
}

func TestFileStore_LoadGeneratesMissingIDs(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := helpers.WriteFile(t, dir, "inventory.csv",
		"product_id,name,category_main,category_sub,quantity,price,description\n"+
			",Mouse,Electronics,,3,19.99,\n")

	inv, report, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.True(t, report.Clean())

	items := inv.Items()
	require.Len(t, items, 1)
	assert.Regexp(t, regexp.MustCompile(`^PRD-\d{4}$`), items[0].ProductID)
}

func TestFileStore_LoadSkipsMalformedNumbers(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := helpers.WriteFile(t, dir, "inventory.csv",
		"product_id,name,category_main,category_sub,quantity,price,description\n"+
			"PRD-0001,Mouse,Electronics,,not-a-number,19.99,\n"+
			"PRD-0002,Lamp,Home & Garden,,2,34.5,\n")

	inv, report, err := store.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.Len())
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "not an integer")
}

func TestFileStore_LoadErrors(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := store.Load(ctx, filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, filestore.ErrNotReadable)
	})

	t.Run("malformed_json", func(t *testing.T) {
		path := helpers.WriteFile(t, dir, "broken.json", `[{"name": "Mouse"`)
		_, _, err := store.Load(ctx, path)
		assert.ErrorIs(t, err, filestore.ErrDecode)
	})

	t.Run("csv_without_header", func(t *testing.T) {
		path := helpers.WriteFile(t, dir, "empty.csv", "")
		_, _, err := store.Load(ctx, path)
		assert.ErrorIs(t, err, filestore.ErrDecode)
	})

	t.Run("yaml_not_a_sequence", func(t *testing.T) {
		path := helpers.WriteFile(t, dir, "map.yaml", "name: Mouse\nquantity: 3\n")
		_, _, err := store.Load(ctx, path)
		assert.ErrorIs(t, err, filestore.ErrDecode)
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		path := helpers.WriteFile(t, dir, "notes.dat", "plain text")
		_, _, err := store.Load(ctx, path)
		assert.ErrorIs(t, err, filestore.ErrUnsupportedFormat)
	})
}

func TestFileStore_SaveBacksUpExistingFile(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := filepath.Join(dir, "inventory.json")
	prior := `[{"product_id":"OLD-1","name":"Old","quantity":1,"price":1}]`
	require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

	require.NoError(t, store.Save(ctx, helpers.SampleInventory(t), path, ports.FormatAuto))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, prior, string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, prior, string(current))
}

func TestFileStore_SaveDoesNotBackupNewFile(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := filepath.Join(dir, "inventory.json")
	require.NoError(t, store.Save(ctx, helpers.SampleInventory(t), path, ports.FormatAuto))

	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := filepath.Join(dir, "inventory.yaml")
	require.NoError(t, store.Save(ctx, helpers.SampleInventory(t), path, ports.FormatAuto))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inventory.yaml", entries[0].Name())
}

func TestFileStore_FailedSaveLeavesTargetUntouched(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	path := filepath.Join(dir, "inventory.txt")
	prior := "PRD-0001|Mouse|Electronics||3|19.99|\n"
	require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

	// A field containing the delimiter fails serialization before any byte
	// reaches the disk.
	inv := domain.NewInventory()
	_, err := inv.Add(domain.Item{Name: "Bad|Name", Quantity: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.Error(t, store.Save(ctx, inv, path, ports.FormatAuto))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, prior, string(current), "failed save must leave the target byte-identical")

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "failed serialization must not create a backup")
}

func TestFileStore_SaveToUnwritableDirectory(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	// Using a regular file as the parent directory makes the temp-file
	// creation fail regardless of process privileges.
	blocker := helpers.WriteFile(t, dir, "blocker", "not a directory")
	err := store.Save(ctx, helpers.SampleInventory(t), filepath.Join(blocker, "inventory.json"), ports.FormatAuto)
	assert.ErrorIs(t, err, filestore.ErrNotWritable)
}

func TestFileStore_Convert(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	inv := helpers.SampleInventory(t)
	src := filepath.Join(dir, "inventory.json")
	dst := filepath.Join(dir, "inventory.csv")

	require.NoError(t, store.Save(ctx, inv, src, ports.FormatAuto))

	report, err := store.Convert(ctx, src, dst, ports.FormatAuto)
	require.NoError(t, err)
	assert.True(t, report.Clean())

	loaded, _, err := store.Load(ctx, dst)
	require.NoError(t, err)
	assert.True(t, inv.Equal(loaded))
}

func TestFileStore_Snapshot(t *testing.T) {
	store := newStore(t)
	dir := t.TempDir()
	ctx := context.Background()

	content := `[{"product_id":"PRD-0001","name":"Mouse","quantity":1,"price":2}]`
	path := helpers.WriteFile(t, dir, "inventory.json", content)

	snapPath, err := store.Snapshot(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backups"), filepath.Dir(snapPath))

	data, err := os.ReadFile(snapPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestFileStore_SnapshotMissingFile(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Snapshot(ctx, filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, filestore.ErrNotReadable)
}

func TestFileStore_CustomDelimiterAndPrefix(t *testing.T) {
	opts := filestore.DefaultOptions()
	opts.Delimiter = ";"
	opts.IDPrefix = "SKU"
	store := filestore.New(opts, helpers.TestLogger())

	dir := t.TempDir()
	ctx := context.Background()

	path := helpers.WriteFile(t, dir, "inventory.txt", ";Mouse;Electronics;;3;19.99;\n")

	inv, report, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.True(t, report.Clean())

	items := inv.Items()
	require.Len(t, items, 1)
	assert.Regexp(t, regexp.MustCompile(`^SKU-\d{4}$`), items[0].ProductID)
}
