package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgconfig "github.com/starford/adrkit/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg.Token = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.ADR.Dir != "./adr" || cfg.ADR.Record != "./adr/RECORD.md" {
		t.Errorf("adr defaults = %+v", cfg.ADR)
	}
}

func TestConfigValidate_RequiredFields(t *testing.T) {
	mutations := map[string]func(*Config){
		"adr dir":    func(c *Config) { c.ADR.Dir = "" },
		"adr record": func(c *Config) { c.ADR.Record = "" },
		"index path": func(c *Config) { c.Index.Path = "" },
		"http port":  func(c *Config) { c.App.HTTP.Port = 70000 },
		"auth":       func(c *Config) { c.Auth = AuthConfig{Mode: "token"} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("ADR_TEST_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "adr.yaml")
	yaml := `app:
  log_level: debug
adr:
  dir: ./docs/decisions
  record: ./docs/decisions/RECORD.md
auth:
  mode: token
  token: ${ADR_TEST_TOKEN}
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOptional(path, cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.ADR.Dir != "./docs/decisions" || cfg.Auth.Token != "from-env" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.App.HTTP.Port != 8080 || cfg.Index.Path != "./.adr/index.db" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.ADR.Dir != "./adr" {
		t.Errorf("dir = %q", cfg.ADR.Dir)
	}
}
