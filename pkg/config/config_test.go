package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Oura.LookbackDays != 7 {
		t.Fatalf("unexpected lookback %d", c.Oura.LookbackDays)
	}
	if c.Oura.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", c.Oura.Timeout)
	}
	if c.Oura.BaseURL == "" {
		t.Fatalf("base url default missing")
	}
}

func TestLoadMissingAPIKeyIsNotFatal(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Oura.APIKey != "" {
		t.Fatalf("unexpected api key %q", c.Oura.APIKey)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\noura:\n  api_key: from-yaml\n")
	t.Setenv("OURA_API_KEY", "from-env")
	t.Setenv("OURA_DATA_DIR", "/var/lib/oura")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Oura.APIKey != "from-env" {
		t.Fatalf("env override lost: %q", c.Oura.APIKey)
	}
	if c.Storage.DataDir != "/var/lib/oura" {
		t.Fatalf("data dir override lost: %q", c.Storage.DataDir)
	}
}

func TestValidateRejectsBadLookback(t *testing.T) {
	path := writeConfig(t, "environment: test\noura:\n  lookback_days: -1\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
