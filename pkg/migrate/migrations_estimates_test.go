package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/migrate"
)

func TestEstimatesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_estimates_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no estimates migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS estimates",
		"CREATE TABLE IF NOT EXISTS estimate_line_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_estimates_vendor_invoice_number",
		"CREATE INDEX IF NOT EXISTS idx_estimates_vendor_created",
		"REFERENCES estimates (id) ON DELETE CASCADE",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVendorProfilesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_vendor_profiles_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no vendor profiles migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	if !strings.Contains(string(data), "CREATE TABLE IF NOT EXISTS vendor_profiles") {
		t.Errorf("missing vendor_profiles table statement")
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migration dir should validate: %v", err)
	}
}
