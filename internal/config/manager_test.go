package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManager_LoadDefaults(t *testing.T) {
	cfg, err := NewManager().Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Naver.Display != 100 {
		t.Errorf("Expected default display 100, got %d", cfg.Naver.Display)
	}
	if cfg.Cache.TTLSeconds != 600 {
		t.Errorf("Expected default ttl 600, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Fetch.Workers != 3 {
		t.Errorf("Expected default workers 3, got %d", cfg.Fetch.Workers)
	}
}

func TestManager_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 9301\nfetch:\n  workers: 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	mgr := NewManager()
	cfg, err := mgr.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9301 {
		t.Errorf("Expected port from file, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.Workers != 5 {
		t.Errorf("Expected workers from file, got %d", cfg.Fetch.Workers)
	}
	// Values the file omits keep their defaults.
	if cfg.Naver.Display != 100 {
		t.Errorf("Expected default display 100, got %d", cfg.Naver.Display)
	}

	if got := mgr.GetConfig(); got == nil || got.Server.Port != 9301 {
		t.Errorf("Expected GetConfig to return the loaded config, got %+v", got)
	}
}

func TestManager_EnvironmentOverride(t *testing.T) {
	t.Setenv("NAVERSEARCH_SERVER_PORT", "9400")

	cfg, err := NewManager().Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9400 {
		t.Errorf("Expected port from environment, got %d", cfg.Server.Port)
	}
}

func TestManager_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: -1\n"},
		{"bad display", "naver:\n  display: 500\n"},
		{"bad workers", "fetch:\n  workers: 0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			if _, err := NewManager().Load(path); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}

func TestManager_ReloadRequiresFile(t *testing.T) {
	mgr := NewManager()
	if _, err := mgr.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := mgr.Reload(); err == nil {
		t.Error("Expected reload without a file to fail")
	}
}
