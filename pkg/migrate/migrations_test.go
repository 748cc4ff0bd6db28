package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carmodifyx/modifyx-backend/pkg/migrate"
)

func TestMigrationsDirValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestCartItemsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_cart_items.sql")

	checks := []string{
		"CREATE TABLE cart_items",
		"custom_details jsonb",
		"quantity       integer NOT NULL DEFAULT 1 CHECK (quantity >= 1)",
		"kind = 'standard' AND product_id IS NOT NULL",
		"kind = 'custom' AND product_id IS NULL",
		"CREATE INDEX idx_cart_items_user_id",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE orders",
		"order_number     text NOT NULL UNIQUE",
		"same_day_fee",
		"CREATE TABLE order_line_items",
		"REFERENCES orders (id) ON DELETE CASCADE",
		"CREATE INDEX idx_order_line_items_order_id",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
