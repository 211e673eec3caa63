package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123:token"
	return cfg
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode default: %s", cfg.Telegram.RunMode)
	}
	if cfg.AWS.Region != "us-east-1" {
		t.Fatalf("region default: %s", cfg.AWS.Region)
	}
	if cfg.AWS.Table != "SeaScan" {
		t.Fatalf("table default: %s", cfg.AWS.Table)
	}
}

func TestNormalizeActionDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Actions.ComputeAverages = "custom-average"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if cfg.Actions.ComputeAverages != "custom-average" {
		t.Fatalf("override lost: %s", cfg.Actions.ComputeAverages)
	}
	defaults := map[string]string{
		cfg.Actions.GenerateData:     "generatedata",
		cfg.Actions.AllSensorsOn:     "onsensors",
		cfg.Actions.AllSensorsOff:    "offsensors",
		cfg.Actions.BeachSensorOn:    "onsensorbeach",
		cfg.Actions.BeachSensorOff:   "offsensorbeach",
		cfg.Actions.ActiveMonitoring: "activeMonitoring",
	}
	for got, want := range defaults {
		if got != want {
			t.Fatalf("action default %s != %s", got, want)
		}
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := &Config{}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected missing token error")
	}
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("alias not normalized: %s", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookValidation(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("webhook mode without url must fail")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook.URL = "https://bot.example.com/updates"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("valid webhook config rejected: %v", err)
	}
}

func TestNormalizeInvalidRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected invalid run mode error")
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclusion not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected invalid exclusion error")
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  token: "file-token"
aws:
  table: "SeaScanTest"
actions:
  compute_averages: "avg-v2"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Fatalf("env must override file, got %s", cfg.Telegram.Token)
	}
	if cfg.AWS.Table != "SeaScanTest" {
		t.Fatalf("table: %s", cfg.AWS.Table)
	}
	if cfg.Actions.ComputeAverages != "avg-v2" {
		t.Fatalf("action override: %s", cfg.Actions.ComputeAverages)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
