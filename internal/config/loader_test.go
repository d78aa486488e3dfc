package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// chdirTemp switches to a fresh temp directory for the rest of the test and
// points XDG_CONFIG_HOME at an empty directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return tmpDir
}

func writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.MkdirAll(ProjectConfigDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	path := filepath.Join(ProjectConfigDir, ProjectConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Paths.Log != ".countdown/events.jsonl" {
		t.Errorf("Paths.Log = %q", cfg.Paths.Log)
	}
	if cfg.Shutdown.Timeout != 5*time.Second {
		t.Errorf("Shutdown.Timeout = %v, want 5s", cfg.Shutdown.Timeout)
	}
	if len(cfg.Surface.Slots) != 3 {
		t.Errorf("Surface.Slots = %v", cfg.Surface.Slots)
	}
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	chdirTemp(t)

	writeProjectConfig(t, `
paths:
  log: logs/session.jsonl
tui:
  auto_start: true
shutdown:
  timeout: 30s
surface:
  slots: [minutes, seconds]
`)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Paths.Log != "logs/session.jsonl" {
		t.Errorf("Paths.Log = %q, want logs/session.jsonl", cfg.Paths.Log)
	}
	if !cfg.TUI.AutoStart {
		t.Error("TUI.AutoStart should be true from file")
	}
	if cfg.Shutdown.Timeout != 30*time.Second {
		t.Errorf("Shutdown.Timeout = %v, want 30s", cfg.Shutdown.Timeout)
	}
	if len(cfg.Surface.Slots) != 2 {
		t.Errorf("Surface.Slots = %v, want [minutes seconds]", cfg.Surface.Slots)
	}

	// Untouched defaults survive.
	if !cfg.TUI.AltScreen {
		t.Error("TUI.AltScreen default should remain true")
	}
	if cfg.LogRotation.MaxBackups != 3 {
		t.Errorf("LogRotation.MaxBackups = %d, want 3", cfg.LogRotation.MaxBackups)
	}
}

func TestLoadConfig_GlobalThenProject(t *testing.T) {
	chdirTemp(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	globalDir := filepath.Join(xdg, GlobalConfigDir)
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	global := "paths:\n  log: global.jsonl\nevents:\n  buffer_size: 7\n"
	if err := os.WriteFile(filepath.Join(globalDir, GlobalConfigFile), []byte(global), 0644); err != nil {
		t.Fatalf("write global config failed: %v", err)
	}
	writeProjectConfig(t, "paths:\n  log: project.jsonl\n")

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Paths.Log != "project.jsonl" {
		t.Errorf("Paths.Log = %q, project should win", cfg.Paths.Log)
	}
	if cfg.Events.BufferSize != 7 {
		t.Errorf("Events.BufferSize = %d, global value should apply", cfg.Events.BufferSize)
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(configPath, []byte("tui:\n  alt_screen: false\n"), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	v := viper.New()
	v.Set("config", configPath)

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TUI.AltScreen {
		t.Error("TUI.AltScreen should be false from explicit file")
	}
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	v := viper.New()
	v.Set("config", "/nonexistent/path/config.yaml")

	if _, err := LoadConfig(v); err == nil {
		t.Error("LoadConfig should fail for missing explicit config")
	}
}

func TestLoadConfig_OverrideBeatsFile(t *testing.T) {
	chdirTemp(t)
	writeProjectConfig(t, "paths:\n  log: from-file.jsonl\n")

	v := viper.New()
	v.Set("paths.log", "from-flag.jsonl")

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Paths.Log != "from-flag.jsonl" {
		t.Errorf("Paths.Log = %q, want from-flag.jsonl", cfg.Paths.Log)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("COUNTDOWN_SHUTDOWN_TIMEOUT", "45s")
	t.Setenv("COUNTDOWN_SURFACE_SLOTS", "minutes,seconds,done,extra")

	v := viper.New()
	v.SetEnvPrefix("COUNTDOWN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Shutdown.Timeout != 45*time.Second {
		t.Errorf("Shutdown.Timeout = %v, want 45s", cfg.Shutdown.Timeout)
	}
	if len(cfg.Surface.Slots) != 4 {
		t.Errorf("Surface.Slots = %v, want 4 slots from env", cfg.Surface.Slots)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdirTemp(t)
	writeProjectConfig(t, "events:\n  buffer_size: -5\n")

	_, err := LoadConfig(viper.New())
	if err == nil || !strings.Contains(err.Error(), "events.buffer_size") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	chdirTemp(t)
	writeProjectConfig(t, "paths: [unterminated\n")

	if _, err := LoadConfig(viper.New()); err == nil {
		t.Error("LoadConfig should fail on malformed YAML")
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if path := globalConfigPath(); path != "" {
		t.Errorf("globalConfigPath() = %q, want empty when no file exists", path)
	}
}

func TestProjectConfigPath(t *testing.T) {
	chdirTemp(t)
	if path := projectConfigPath(); path != "" {
		t.Errorf("projectConfigPath() = %q, want empty", path)
	}

	writeProjectConfig(t, "tui:\n  auto_start: true\n")
	if path := projectConfigPath(); path == "" {
		t.Error("projectConfigPath() should find .countdown/config.yaml")
	}
}
