package adapter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.IsConfigured() {
		t.Error("empty config should not be configured")
	}
	if cfg.API.MaxRetries != 3 {
		t.Errorf("MaxRetries: got %d, want 3", cfg.API.MaxRetries)
	}
	if cfg.UI.ErrorDuration != 3*time.Second {
		t.Errorf("ErrorDuration: got %v, want 3s", cfg.UI.ErrorDuration)
	}
	if cfg.UI.DefaultFilter != "all" {
		t.Errorf("DefaultFilter: got %q, want all", cfg.UI.DefaultFilter)
	}
	if cfg.Server.Addr != "127.0.0.1:4000" {
		t.Errorf("Server.Addr: got %q", cfg.Server.Addr)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `
api:
  base_url: http://localhost:4000
  user_id: 3052
  timeout: 5s
ui:
  default_filter: active
  error_duration: 1500ms
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(viper.New(), dir)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if !cfg.IsConfigured() {
		t.Error("config should be configured")
	}
	if cfg.API.UserID != 3052 {
		t.Errorf("UserID: got %d, want 3052", cfg.API.UserID)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("Timeout: got %v, want 5s", cfg.API.Timeout)
	}
	if cfg.UI.ErrorDuration != 1500*time.Millisecond {
		t.Errorf("ErrorDuration: got %v", cfg.UI.ErrorDuration)
	}
	// Keys missing from the file keep their defaults
	if cfg.API.MaxRetries != 3 {
		t.Errorf("MaxRetries: got %d, want 3", cfg.API.MaxRetries)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TODOS_API_BASE_URL", "http://example.test")
	t.Setenv("TODOS_API_USER_ID", "7")

	cfg, err := loadConfig(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.API.BaseURL != "http://example.test" || cfg.API.UserID != 7 {
		t.Errorf("API: got %+v", cfg.API)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(viper.New(), dir); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSaveConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://localhost:4000"
	cfg.API.UserID = 3052
	cfg.UI.ErrorDuration = 2 * time.Second

	if err := saveConfig(viper.New(), cfg, dir); err != nil {
		t.Fatalf("saveConfig failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "base_url: http://localhost:4000") {
		t.Errorf("saved config missing base_url:\n%s", data)
	}

	loaded, err := loadConfig(viper.New(), dir)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if loaded.API.UserID != 3052 || loaded.UI.ErrorDuration != 2*time.Second {
		t.Errorf("loaded: got %+v %+v", loaded.API, loaded.UI)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/todos.log")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if want := filepath.Join(home, "todos.log"); got != want {
		t.Errorf("ExpandPath: got %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/var/log/todos.log"); got != "/var/log/todos.log" {
		t.Errorf("absolute path changed: %q", got)
	}
}
