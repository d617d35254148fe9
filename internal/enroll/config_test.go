package enroll

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: test-token\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Core.Telegram.RunMode != "longpoll" {
		t.Fatalf("run_mode = %q, want longpoll default", cfg.Core.Telegram.RunMode)
	}
	if len(cfg.Catalog.Courses) != 4 {
		t.Fatalf("courses = %d, want default catalog", len(cfg.Catalog.Courses))
	}
	if len(cfg.Catalog.Days) == 0 || len(cfg.Catalog.Times) == 0 {
		t.Fatalf("day/time defaults missing")
	}
	if cfg.About.Branches == "" || cfg.About.Teachers == "" {
		t.Fatalf("about defaults missing")
	}
	if cfg.Database.Enabled() {
		t.Fatalf("archive must be disabled without a database host")
	}
}

func TestLoadConfigKeepsCatalogOverrides(t *testing.T) {
	path := writeConfig(t, `telegram:
  token: test-token
catalog:
  courses:
    - name: Chess
      channel_id: -100123
      subcourses:
        ru: ["Дебюты"]
        uz: ["Debyutlar"]
  days: [Sunday]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Catalog.Courses) != 1 || cfg.Catalog.Courses[0].Name != "Chess" {
		t.Fatalf("courses = %+v", cfg.Catalog.Courses)
	}
	if len(cfg.Catalog.Days) != 1 || cfg.Catalog.Days[0] != "Sunday" {
		t.Fatalf("days override lost: %v", cfg.Catalog.Days)
	}
	// Times fall back to the built-in list.
	if len(cfg.Catalog.Times) != 4 {
		t.Fatalf("times default missing: %v", cfg.Catalog.Times)
	}
}

func TestLoadConfigRejectsMissingToken(t *testing.T) {
	if os.Getenv("BOT_TOKEN") != "" {
		t.Skip("BOT_TOKEN set in environment")
	}
	path := writeConfig(t, "telegram:\n  run_mode: longpoll\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected missing token error")
	}
}
