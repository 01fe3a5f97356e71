package migration

import (
	"strings"
	"testing"
	"testing/fstest"

	"job-board/migrations"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V10__add_index.sql":  {Data: []byte("CREATE INDEX i ON t (c);")},
		"V2__create_t.sql":    {Data: []byte("CREATE TABLE t (c INT);")},
		"README.md":           {Data: []byte("ignored")},
		"v3__lowercase.sql":   {Data: []byte("ignored")},
		"nested/V4__skip.sql": {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 2 || migs[1].Version != 10 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "create_t" {
		t.Fatalf("unexpected name: %s", migs[0].Name)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum, got %q", migs[0].Checksum)
	}
}

func TestLoadMigrations_RejectsDuplicateVersion(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(src); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoadMigrations_RejectsEmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}}
	if _, err := loadMigrations(src); err == nil {
		t.Fatalf("expected error for empty migration")
	}
}

func TestEmbeddedSchema(t *testing.T) {
	migs, err := loadMigrations(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration")
	}
	for _, want := range []string{
		"CREATE TABLE users",
		"CREATE TABLE jobs",
		"CREATE TABLE applications",
		"UNIQUE (job_id, student_id)",
		"ON DELETE CASCADE",
		"users_email_lower_key",
	} {
		if !strings.Contains(migs[0].SQL, want) {
			t.Fatalf("schema missing %q", want)
		}
	}
}
