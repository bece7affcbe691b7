package persistence

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DepartmentSeeder inserts missing department names atomically.
type DepartmentSeeder interface {
	SeedNames(ctx context.Context, names []string) (int, error)
}

// SeedDepartments ensures every name exists. Any failure is returned so startup can abort.
func SeedDepartments(ctx context.Context, seeder DepartmentSeeder, names []string, logger *zap.Logger) error {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return nil
	}

	created, err := seeder.SeedNames(ctx, cleaned)
	if err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}
	if created > 0 {
		logger.Info("seeded departments", zap.Int("created", created))
	} else {
		logger.Info("all departments already exist")
	}
	return nil
}
