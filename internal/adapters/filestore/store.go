// internal/adapters/filestore/store.go
package filestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcanavera/stockroom/internal/core/domain"
	"github.com/mcanavera/stockroom/internal/core/ports"
)

// Options configures a FileStore.
type Options struct {
	// Delimiter separates fields in the TXT format. Defaults to "|".
	Delimiter string
	// IDPrefix is used for product ids generated during load when a record
	// carries no id. Defaults to domain.DefaultIDPrefix.
	IDPrefix string
	// BackupEnabled controls the <path>.bak copy before overwrites.
	BackupEnabled bool
	// SnapshotDir receives timestamped copies made by Snapshot. Relative
	// paths resolve against the directory of the snapshotted file.
	SnapshotDir string
	// SnapshotLayout is the time layout for snapshot file names.
	SnapshotLayout string
}

// DefaultOptions returns the options the original tool ships with.
func DefaultOptions() Options {
	return Options{
		Delimiter:      DefaultDelimiter,
		IDPrefix:       domain.DefaultIDPrefix,
		BackupEnabled:  true,
		SnapshotDir:    "backups",
		SnapshotLayout: "20060102_150405",
	}
}

// FileStore persists inventories to flat files in JSON, YAML, CSV or
// delimited TXT form. It holds no lock and performs no multi-process
// coordination; concurrent writers of the same file are undefined behavior
// beyond last-writer-wins via the atomic rename.
type FileStore struct {
	opts   Options
	logger *slog.Logger
}

// Statically assert that *FileStore implements the store ports.
var (
	_ ports.InventoryStore = (*FileStore)(nil)
	_ ports.RegistryStore  = (*FileStore)(nil)
)

// New creates a FileStore. Zero-valued options fall back to defaults.
func New(opts Options, logger *slog.Logger) *FileStore {
	def := DefaultOptions()
	if opts.Delimiter == "" {
		opts.Delimiter = def.Delimiter
	}
	if opts.IDPrefix == "" {
		opts.IDPrefix = def.IDPrefix
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = def.SnapshotDir
	}
	if opts.SnapshotLayout == "" {
		opts.SnapshotLayout = def.SnapshotLayout
	}
	return &FileStore{
		opts:   opts,
		logger: logger.With(slog.String("adapter", "filestore")),
	}
}

// Load reads, decodes and validates the inventory at path. Records failing
// shape validation are skipped and reported; the load itself succeeds as
// long as the file is structurally decodable.
func (s *FileStore) Load(ctx context.Context, path string) (*domain.Inventory, *ports.LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}

	format, err := detectFromContent(strings.ToLower(filepath.Ext(path)), data)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.decode(data, format)
	if err != nil {
		return nil, nil, err
	}

	inv := domain.NewInventoryWithPrefix(s.opts.IDPrefix)
	report := &ports.LoadReport{Path: path}
	for _, rec := range records {
		if rec.err != nil {
			report.Add(rec.index, rec.err.Error())
			continue
		}
		if _, err := inv.Add(rec.item); err != nil {
			report.Add(rec.index, err.Error())
		}
	}

	s.logger.InfoContext(ctx, "loaded inventory",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("items", inv.Len()),
		slog.Int("skipped", len(report.Skipped)))

	return inv, report, nil
}

// Save serializes the inventory in insertion order and writes it atomically:
// the bytes go to a temporary file in the target directory which is then
// renamed over the target, so a crash mid-write never leaves a truncated
// file. An existing target is first copied to <path>.bak (best-effort).
func (s *FileStore) Save(ctx context.Context, inv *domain.Inventory, path string, format ports.Format) error {
	if format == ports.FormatAuto {
		format = ports.FormatForPath(path)
	}

	data, err := s.encode(inv.Items(), format)
	if err != nil {
		return err
	}

	if s.opts.BackupEnabled {
		s.backup(ctx, path)
	}

	if err := s.writeAtomic(path, data); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "saved inventory",
		slog.String("path", path),
		slog.String("format", format.String()),
		slog.Int("items", inv.Len()))

	return nil
}

// Convert loads the inventory at src and saves it to dst, inferring the
// target format from dst when format is FormatAuto.
func (s *FileStore) Convert(ctx context.Context, src, dst string, format ports.Format) (*ports.LoadReport, error) {
	inv, report, err := s.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, inv, dst, format); err != nil {
		return nil, err
	}
	return report, nil
}

// Snapshot copies the file at path into the snapshot directory under a
// timestamped name and returns the snapshot path.
func (s *FileStore) Snapshot(ctx context.Context, path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	defer src.Close()

	dir := s.opts.SnapshotDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(path), dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotWritable, err)
	}

	name := fmt.Sprintf("%s.%s", filepath.Base(path), time.Now().Format(s.opts.SnapshotLayout))
	snapPath := filepath.Join(dir, name)
	if err := copyTo(src, snapPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotWritable, err)
	}

	s.logger.InfoContext(ctx, "snapshot created",
		slog.String("path", path),
		slog.String("snapshot", snapPath))

	return snapPath, nil
}

func (s *FileStore) decode(data []byte, format ports.Format) ([]rawRecord, error) {
	switch format {
	case ports.FormatJSON:
		return decodeJSON(data)
	case ports.FormatYAML:
		return decodeYAML(data)
	case ports.FormatCSV:
		return decodeCSV(data)
	case ports.FormatTXT:
		return decodeTXT(data, s.opts.Delimiter)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *FileStore) encode(items []domain.Item, format ports.Format) ([]byte, error) {
	switch format {
	case ports.FormatJSON:
		return encodeJSON(items)
	case ports.FormatYAML:
		return encodeYAML(items)
	case ports.FormatCSV:
		return encodeCSV(items)
	case ports.FormatTXT:
		return encodeTXT(items, s.opts.Delimiter)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// backup copies an existing target to <path>.bak. Backup failure is logged
// and never fails the save.
func (s *FileStore) backup(ctx context.Context, path string) {
	src, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "backup skipped",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return
	}
	defer src.Close()

	if err := copyTo(src, path+".bak"); err != nil {
		s.logger.WarnContext(ctx, "backup failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// writeAtomic writes data to a uuid-named temporary file next to path and
// renames it over the target. Every failure path removes the temporary file,
// leaving the original target untouched.
func (s *FileStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpName := fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()[:8])
	tmpPath := filepath.Join(dir, tmpName)

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrNotWritable, err)
	}
	return nil
}

func copyTo(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
