package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/notepad/pkg/config"
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
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Storage.Driver != "file" || cfg.Storage.Path != "./notepad.json" {
		t.Errorf("storage defaults = %+v", cfg.Storage)
	}
}

func TestStorageConfig_PerDriver(t *testing.T) {
	cases := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{"memory needs nothing", StorageConfig{Driver: "memory"}, false},
		{"file needs path", StorageConfig{Driver: "file"}, true},
		{"file with path", StorageConfig{Driver: "file", Path: "n.json"}, false},
		{"sqlite needs path", StorageConfig{Driver: "sqlite"}, true},
		{"sqlite with path", StorageConfig{Driver: "sqlite", Path: "n.db"}, false},
		{"redis needs url", StorageConfig{Driver: "redis"}, true},
		{"redis with url", StorageConfig{Driver: "redis", RedisURL: "redis://localhost:6379/0"}, false},
		{"unknown driver", StorageConfig{Driver: "etcd", Path: "x"}, true},
		{"empty driver", StorageConfig{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestApplicationConfig_MetricsPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.MetricsPath = "metrics"
	if err := cfg.Validate(); err == nil {
		t.Fatal("relative metrics path should fail")
	}
	cfg.App.MetricsPath = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty metrics path disables metrics: %v", err)
	}
}

func TestEventsConfig_NegativeThrottle(t *testing.T) {
	cfg := EventsConfig{RefreshThrottle: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative throttle should fail")
	}
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	t.Setenv("NOTEPAD_TEST_TOKEN", "s3cret")
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `app:
  log_level: debug
  http:
    port: 9000
storage:
  driver: sqlite
  path: ./notes.db
auth:
  mode: token
  token: ${NOTEPAD_TEST_TOKEN}
events:
  refresh_throttle: 2s
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.LoadOptional(path, cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.App.HTTP.Port != 9000 || cfg.App.MetricsPath != "/metrics" {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.KeyPrefix != "notepad:" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Auth.Token != "s3cret" || !cfg.Auth.AuthEnabled() {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Events.RefreshThrottle != 2*time.Second {
		t.Errorf("throttle = %v", cfg.Events.RefreshThrottle)
	}
}
