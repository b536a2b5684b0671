package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testSection struct {
	Port        int    `mapstructure:"port"`
	MaxBodySize string `mapstructure:"max_body_size"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server        testSection `mapstructure:"server"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "speech-api"}
		cfg.ApplyDefaults()
		if cfg.Environment != EnvDevelopment {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "speech-api" {
			t.Errorf("expected logging service name to follow name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "speech-api", Environment: EnvProduction}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "name"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "environment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.Logging.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error mentioning %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: speech-api
environment: staging
version: "1.0.0"
server:
  port: 8000
  max_body_size: 100MB
`)

	var cfg testConfig
	if err := LoadConfig("speech-api", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "speech-api" {
		t.Errorf("expected name 'speech-api', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: speech-api\nserver:\n  port: 8000\n")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_MAX_BODY_SIZE", "5MB")
	t.Setenv("NAME_SUFFIX", "ignored")

	var cfg testConfig
	if err := LoadConfig("speech-api", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env override 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxBodySize != "5MB" {
		t.Errorf("expected max body size from env, got %q", cfg.Server.MaxBodySize)
	}
	if cfg.Name != "speech-api" {
		t.Errorf("scalar key must not be shadowed by NAME_SUFFIX, got %q", cfg.Name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: speech-api\nserver:\n  port: 8000\n")
	env := writeFile(t, dir, "test.env", "SERVER_MAX_BODY_SIZE=5MB\n")
	t.Cleanup(func() { _ = os.Unsetenv("SERVER_MAX_BODY_SIZE") })

	var cfg testConfig
	if err := LoadConfig("speech-api", &cfg, WithConfigFile(path), WithEnvFile(env)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.MaxBodySize != "5MB" {
		t.Errorf("expected env file value, got %q", cfg.Server.MaxBodySize)
	}
}

func existing(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(path string) bool { return set[path] }
}

func TestResolverSearchesServiceDirs(t *testing.T) {
	r := Resolver{Exists: existing("./cmd/speech-api/config.yml", "./.env")}
	files := r.Resolve("speech-api", "", "")
	if files.ConfigFile != "./cmd/speech-api/config.yml" {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}
}

func TestResolverFallsBackToShortName(t *testing.T) {
	r := Resolver{Exists: existing("../cmd/api/config.yml")}
	if got := r.Resolve("speech-api", "", "").ConfigFile; got != "../cmd/api/config.yml" {
		t.Errorf("unexpected config file %q", got)
	}
}

func TestResolverPrefersExplicitPaths(t *testing.T) {
	files := Resolver{Exists: existing()}.Resolve("speech-api", "a.yml", "b.env")
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("explicit paths not kept: %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("SERVER_MAX_BODY_SIZE")
	want := map[string]bool{
		"server_max_body_size": true,
		"server.max.body.size": true,
		"server.max_body_size": true,
		"server.max.body_size": true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d variants, got %v", len(want), got)
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variant %q", v)
		}
	}
}

func TestTopLevelKeys(t *testing.T) {
	keys := topLevelKeys(&testConfig{})
	for key, section := range map[string]bool{"name": false, "logging": true, "server": true, "debug": false} {
		got, ok := keys[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if got != section {
			t.Errorf("key %q: section=%v, want %v", key, got, section)
		}
	}
}
