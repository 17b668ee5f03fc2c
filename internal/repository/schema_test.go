package repository

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// tableColumns pulls the column names out of a CREATE TABLE block in the
// migration file, so the repo queries can be checked against the schema
// without a database.
func tableColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()

	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\n\);`)
	match := re.FindStringSubmatch(ddl)
	if match == nil {
		t.Fatalf("migration does not define table %q", table)
	}

	columns := make(map[string]bool)
	for _, line := range strings.Split(match[1], "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.ToLower(fields[0])
		if name == "primary" || name == "foreign" || name == "constraint" || name == "unique" {
			continue
		}
		columns[name] = true
	}
	return columns
}

func TestMigrationMatchesRepoColumns(t *testing.T) {
	raw, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	ddl := string(raw)

	tables := map[string][]string{
		"users":      {"id", "email", "password_hash", "full_name", "phone", "is_active", "last_login_at", "created_at"},
		"contacts":   {"id", "user_id", "name", "phone", "email", "relationship", "is_emergency_contact", "created_at"},
		"checkins":   {"id", "user_id", "expires_at", "active", "created_at"},
		"sos_events": {"id", "user_id", "lat", "lng", "status", "created_at"},
	}

	for table, required := range tables {
		t.Run(table, func(t *testing.T) {
			columns := tableColumns(t, ddl, table)
			for _, col := range required {
				if !columns[col] {
					t.Errorf("repo queries column %q but the %s table does not define it", col, table)
				}
			}
		})
	}
}
