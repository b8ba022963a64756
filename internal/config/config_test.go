package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/healthsync/internal/credentials"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".healthsync", "config.yaml")

	cfg, err := LoadFile(path, false)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.URL != "http://localhost:5000/api" {
		t.Errorf("API.URL = %q, want default", cfg.API.URL)
	}
	if cfg.Auth.TokenEnv != "HEALTHSYNC_TOKEN" {
		t.Errorf("Auth.TokenEnv = %q", cfg.Auth.TokenEnv)
	}
	wantFile := filepath.Join(home, ".healthsync", "auth", "token.json")
	if cfg.Auth.TokenFile != wantFile {
		t.Errorf("Auth.TokenFile = %q, want %q", cfg.Auth.TokenFile, wantFile)
	}
	if def, err := credentials.DefaultTokenFile(); err != nil || def != cfg.Auth.TokenFile {
		t.Errorf("Auth.TokenFile = %q, credentials.DefaultTokenFile() = %q (%v)", cfg.Auth.TokenFile, def, err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}

	// First run writes the annotated template.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if !strings.Contains(string(data), "HEALTHSYNC_API_URL") {
		t.Errorf("template missing env documentation")
	}

	// The template itself must load cleanly.
	if _, err := LoadFile(path, true); err != nil {
		t.Fatalf("LoadFile(template): %v", err)
	}
}

func TestLoadFile_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
api:
  url: "https://api.example.com/v1/"
auth:
  token_file: "/tmp/hs-token.json"
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path, true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.URL != "https://api.example.com/v1" {
		t.Errorf("API.URL = %q, want trailing slash trimmed", cfg.API.URL)
	}
	if cfg.Auth.TokenFile != "/tmp/hs-token.json" {
		t.Errorf("Auth.TokenFile = %q", cfg.Auth.TokenFile)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}

	t.Setenv("HEALTHSYNC_API_URL", "http://10.0.0.5:5000/api")
	cfg, err = LoadFile(path, true)
	if err != nil {
		t.Fatalf("LoadFile with env: %v", err)
	}
	if cfg.API.URL != "http://10.0.0.5:5000/api" {
		t.Errorf("API.URL = %q, want env override", cfg.API.URL)
	}
}

func TestLoadFile_RequiredMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), true)
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"relative url", "api:\n  url: \"/api\"\n"},
		{"ftp url", "api:\n  url: \"ftp://host/api\"\n"},
		{"bad log format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeYAML(t, t.TempDir(), tt.yaml)
			if _, err := LoadFile(path, true); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "api:\n  url: \"https://h.example\"\n")
	t.Setenv("HEALTHSYNC_CONFIG", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "https://h.example" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
}
