package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

// TestDatabaseSetup wraps the pooled connection used by repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to the database named by TEST_DATABASE_URL.
// Tests that need it skip themselves when the variable is unset, so the
// suite stays runnable without a database.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	return &TestDatabaseSetup{DB: db}
}

// TruncateAllTables wipes every table between tests.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"refresh_tokens",
		"device_fingerprints",
		"attendance_days",
		"allowed_ips",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close shuts the pool down.
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
