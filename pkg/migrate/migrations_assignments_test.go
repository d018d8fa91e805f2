package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestAssignmentsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_assignments_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS assignments",
		"FOREIGN KEY (supplier_id) REFERENCES suppliers(id)",
		"CHECK (priority BETWEEN 0 AND 3)",
		"CHECK (quoted_total IS NULL OR quoted_total > 0)",
		"DROP TABLE IF EXISTS assignments",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAuditEntriesMigrationIsAppendOnlyFriendly(t *testing.T) {
	content := readMigration(t, "*_create_audit_entries_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS audit_entries",
		"FOREIGN KEY (assignment_id) REFERENCES assignments(id) ON DELETE CASCADE",
		"idx_audit_entries_assignment_changed_at",
		"DROP TABLE IF EXISTS audit_entries",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
