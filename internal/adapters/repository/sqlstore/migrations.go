package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationNames lists the driver's up migrations in apply order.
func MigrationNames(driver Driver) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, path.Join("migrations", string(driver)))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// MigrationFile returns the first migration file of the driver whose name
// ends with name + ".sql", e.g. "init.up" or "0001_init.down".
func MigrationFile(driver Driver, name string) (string, []byte, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(name)))
	if err != nil {
		return "", nil, fmt.Errorf("invalid migration name: %w", err)
	}

	dir := path.Join("migrations", string(driver))
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		content, err := fs.ReadFile(migrationsFS, path.Join(dir, entry.Name()))
		if err != nil {
			return "", nil, err
		}
		return entry.Name(), content, nil
	}

	return "", nil, fmt.Errorf("migration file %q not found", name)
}

// Migrate applies every up migration. The schema files are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	names, err := MigrationNames(s.driver)
	if err != nil {
		return err
	}

	for _, name := range names {
		content, err := fs.ReadFile(migrationsFS, path.Join("migrations", string(s.driver), name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}
	return nil
}
