package database

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	dir := filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

func readUpMigrations(t *testing.T) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migration files found")
	}
	var sb strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	upFiles, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}
	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// TestMigrations_ViewTablesExist checks that every table a view joins is
// created by some migration, so EnsureViews cannot fail on a fresh schema.
func TestMigrations_ViewTablesExist(t *testing.T) {
	schema := readUpMigrations(t)
	tablePattern := regexp.MustCompile(`(?i)(?:FROM|JOIN)\s+([a-z_]+)`)

	for _, v := range Views {
		for _, m := range tablePattern.FindAllStringSubmatch(v.Query, -1) {
			table := m[1]
			if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				t.Errorf("view %s references table %s which no migration creates", v.Name, table)
			}
		}
	}
}

// TestMigrations_IdentityConstraints guards the unique keys that duplicate
// registration detection depends on.
func TestMigrations_IdentityConstraints(t *testing.T) {
	schema := readUpMigrations(t)
	for _, want := range []string{
		"UNIQUE KEY uq_users_username (username)",
		"UNIQUE KEY uq_users_email (email)",
		"ENUM('admin', 'coordinator', 'examiner')",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("expected schema to contain %q", want)
		}
	}
}
