package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quepf/deluge-rpc/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists = true for missing file")
	}
	if cfg.Daemon.Host != "127.0.0.1" || cfg.Daemon.Port != 58846 {
		t.Errorf("daemon defaults = %+v", cfg.Daemon)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Addr() != "127.0.0.1:58846" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[daemon]
host = "  seedbox.example  "
port = 5000
username = "ops"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q, exists = %v", resolved, exists)
	}
	if cfg.Daemon.Host != "seedbox.example" {
		t.Errorf("host = %q", cfg.Daemon.Host)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Errorf("data dir not expanded: %q", cfg.Paths.DataDir)
	}
	if got := cfg.HostlistPath(); filepath.Dir(got) != cfg.Paths.DataDir {
		t.Errorf("hostlist path = %q", got)
	}
}

func TestLoadPasswordEnvFallback(t *testing.T) {
	t.Setenv("DELUGE_PASSWORD", "hunter2")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Daemon.Password != "hunter2" {
		t.Errorf("password = %q", cfg.Daemon.Password)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad port":   "[daemon]\nport = 99999\n",
		"bad format": "[logging]\nformat = \"yaml\"\n",
		"bad level":  "[logging]\nlevel = \"loud\"\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(raw), "[daemon]") {
		t.Error("sample missing [daemon] section")
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}
