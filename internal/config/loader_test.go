package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolatedLoader ignores the user's real config files and .env
func isolatedLoader() *Loader {
	return &Loader{}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if loader.dotenvPath != ".env" {
		t.Errorf("Expected .env dotenv path, got %q", loader.dotenvPath)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := isolatedLoader().LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.UI.Layout != "modal" {
		t.Errorf("Expected default layout modal, got %s", cfg.UI.Layout)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
server:
  base_url: "https://reports.example.com"
request:
  timeout: 90s
output:
  default_format: "json"
  verbose: true
ui:
  layout: "panels"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := isolatedLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Server.BaseURL != "https://reports.example.com" {
		t.Errorf("Expected base url from file, got %s", cfg.Server.BaseURL)
	}
	if cfg.Server.Path != "/api/run-analysis" {
		t.Errorf("Expected default path to survive merge, got %s", cfg.Server.Path)
	}
	if cfg.Request.Timeout != 90*time.Second {
		t.Errorf("Expected timeout 90s, got %v", cfg.Request.Timeout)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.UI.Layout != "panels" {
		t.Errorf("Expected layout panels, got %s", cfg.UI.Layout)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid-config.yaml")

	invalidConfigContent := `server:
  base_url: "http://localhost
request:
  timeout: 90s
`
	if err := os.WriteFile(configPath, []byte(invalidConfigContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	if _, err := isolatedLoader().LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigRejectsBadPath(t *testing.T) {
	loader := isolatedLoader()

	if _, err := loader.LoadConfig("config.json"); err == nil {
		t.Error("Expected error for non-yaml extension")
	}
	if _, err := loader.LoadConfig("../../etc/config.yaml"); err == nil {
		t.Error("Expected error for path traversal")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CITYREPORT_SERVER_BASE_URL", "https://env.example.com")
	t.Setenv("CITYREPORT_REQUEST_TIMEOUT", "2m")
	t.Setenv("CITYREPORT_OUTPUT_VERBOSE", "true")
	t.Setenv("CITYREPORT_UI_THEME", "minimal")

	cfg, err := isolatedLoader().LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://env.example.com" {
		t.Errorf("Expected env base url, got %s", cfg.Server.BaseURL)
	}
	if cfg.Request.Timeout != 2*time.Minute {
		t.Errorf("Expected env timeout 2m, got %v", cfg.Request.Timeout)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected env verbose override")
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected env theme minimal, got %s", cfg.UI.Theme)
	}
}

func TestApplyEnvOverridesInvalidValue(t *testing.T) {
	t.Setenv("CITYREPORT_REQUEST_TIMEOUT", "eighteen minutes")

	if _, err := isolatedLoader().LoadConfig(""); err == nil {
		t.Error("Expected error for unparseable duration")
	}
}

func TestLoadDotEnv(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envPath, []byte("CITYREPORT_UI_LAYOUT=panels\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	// godotenv writes into the process environment; make sure it is
	// restored after the test
	t.Setenv("CITYREPORT_UI_LAYOUT", "")
	if err := os.Unsetenv("CITYREPORT_UI_LAYOUT"); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{dotenvPath: envPath}
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UI.Layout != "panels" {
		t.Errorf("Expected layout from .env, got %s", cfg.UI.Layout)
	}
}

func TestSampleConfigsParse(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
				t.Fatalf("sample config does not parse: %v", err)
			}
			if cfg.Request.Timeout != 18*time.Minute {
				t.Errorf("Expected 18m timeout in sample, got %v", cfg.Request.Timeout)
			}
		})
	}
}
