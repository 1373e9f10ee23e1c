package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "OBJECT_STORE", "LOCAL_STORE_DIR", "METADATA_STORE", "DATABASE_URL", "SQLITE_PATH", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.LocalStoreDir != "./files" {
		t.Fatalf("expected ./files, got %s", cfg.LocalStoreDir)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local object store, got %s", cfg.ObjectStoreType)
	}
	if cfg.MetadataStore != "sqlite" {
		t.Fatalf("expected persistent sqlite metadata store, got %s", cfg.MetadataStore)
	}
	if cfg.SQLitePath != "./filevault.db" {
		t.Fatalf("expected ./filevault.db, got %s", cfg.SQLitePath)
	}
	if cfg.MaxUploadBytes != 1_000_000 {
		t.Fatalf("expected 1000000 byte limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %s", cfg.Env)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("DATABASE_URL", "postgres://localhost/filevault")
	t.Setenv("METADATA_STORE", "")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()

	if cfg.Env != "production" {
		t.Fatalf("expected production, got %s", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3, got %s", cfg.ObjectStoreType)
	}
	if cfg.MetadataStore != "postgres" {
		t.Fatalf("expected postgres inferred from DATABASE_URL, got %s", cfg.MetadataStore)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("expected 2048, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadInvalidMaxUploadFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	if got := Load().MaxUploadBytes; got != defaultMaxUploadBytes {
		t.Fatalf("expected default limit, got %d", got)
	}
}

func TestNormalizeMetadataStore(t *testing.T) {
	tests := []struct {
		raw   string
		dbURL string
		want  string
	}{
		{raw: "sqlite", want: "sqlite"},
		{raw: "PG", want: "postgres"},
		{raw: "memory", dbURL: "postgres://x", want: "memory"},
		{raw: "", dbURL: "postgres://x", want: "postgres"},
		{raw: "bogus", want: "sqlite"},
		{raw: "", want: "sqlite"},
		{raw: " Memory ", want: "memory"},
	}
	for _, tt := range tests {
		if got := normalizeMetadataStore(tt.raw, tt.dbURL); got != tt.want {
			t.Fatalf("normalizeMetadataStore(%q, %q) = %q, want %q", tt.raw, tt.dbURL, got, tt.want)
		}
	}
}
