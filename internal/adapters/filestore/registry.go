// internal/adapters/filestore/registry.go
package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcanavera/stockroom/internal/core/domain"
)

// categoryGroup is the YAML shape of one main category and its subs.
type categoryGroup struct {
	Name string   `yaml:"name"`
	Subs []string `yaml:"subs,omitempty"`
}

// LoadRegistry reads a category registry from a YAML file.
func (s *FileStore) LoadRegistry(ctx context.Context, path string) (*domain.CategoryRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}

	var groups []categoryGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	reg := domain.NewCategoryRegistry()
	for _, g := range groups {
		reg.AddMain(g.Name)
		for _, sub := range g.Subs {
			reg.AddSub(g.Name, sub)
		}
	}

	s.logger.InfoContext(ctx, "loaded category registry",
		slog.String("path", path),
		slog.Int("categories", reg.Len()))

	return reg, nil
}

// SaveRegistry writes the category registry to a YAML file through the same
// backup and atomic-write path as inventories.
func (s *FileStore) SaveRegistry(ctx context.Context, reg *domain.CategoryRegistry, path string) error {
	groups := make([]categoryGroup, 0, reg.Len())
	for _, main := range reg.Mains() {
		groups = append(groups, categoryGroup{Name: main, Subs: reg.Subs(main)})
	}

	data, err := yaml.Marshal(groups)
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if s.opts.BackupEnabled {
		s.backup(ctx, path)
	}
	if err := s.writeAtomic(path, data); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "saved category registry",
		slog.String("path", path),
		slog.Int("categories", reg.Len()))

	return nil
}
