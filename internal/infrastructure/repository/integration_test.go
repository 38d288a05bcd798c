package repository_test

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testSchemaSQL = `
CREATE TABLE IF NOT EXISTS products (
  sku VARCHAR(255) PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  description TEXT,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ
);
CREATE UNLOGGED TABLE IF NOT EXISTS stg_products (
  job_id TEXT NOT NULL,
  row_index BIGINT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT,
  description TEXT,
  is_active BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS webhooks (
  id BIGSERIAL PRIMARY KEY,
  url VARCHAR(2048) NOT NULL,
  event_type VARCHAR(64) NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func openTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	if err := gdb.Exec(testSchemaSQL).Error; err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}
	cleanupSQL := `
    DELETE FROM stg_products;
    DELETE FROM products;
    DELETE FROM webhooks;
    `
	if err := gdb.Exec(cleanupSQL).Error; err != nil {
		t.Fatalf("failed cleanup: %v", err)
	}

	return gdb, dsn
}
