package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DB_CONNECTION_URI", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != DefaultConnectionURI {
		t.Fatalf("DatabaseURL = %q; want %q", cfg.DatabaseURL, DefaultConnectionURI)
	}
	if cfg.StorageBackend != BackendPostgres {
		t.Fatalf("StorageBackend = %q; want postgres", cfg.StorageBackend)
	}
	if cfg.AppPort != "8080" {
		t.Fatalf("AppPort = %q; want 8080", cfg.AppPort)
	}
	if cfg.APIRateWindow != time.Minute {
		t.Fatalf("APIRateWindow = %v; want 1m", cfg.APIRateWindow)
	}
}

func TestLoadFileBackendDefaultsPath(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "CSV")
	t.Setenv("STORAGE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageBackend != BackendCSV {
		t.Fatalf("StorageBackend = %q; want csv", cfg.StorageBackend)
	}
	if cfg.StoragePath != "tasks.csv" {
		t.Fatalf("StoragePath = %q; want tasks.csv", cfg.StoragePath)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "mongo"}},
		{"redis without addr", map[string]string{"STORAGE_BACKEND": "redis", "REDIS_ADDR": ""}},
		{"zero rate limit", map[string]string{"STORAGE_BACKEND": "memory", "API_RATE_LIMIT": "0"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
