package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
log:
  level: "debug"
  format: "json"
shell:
  prompts: false
mcp:
  name: "fittrack-dev"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadDefaults verifies that an empty path yields the built-in defaults.
func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
	if !cfg.Shell.Prompts {
		t.Error("shell.prompts = false, want true")
	}
	if cfg.MCP.Name != "fittrack" {
		t.Errorf("mcp.name = %q, want %q", cfg.MCP.Name, "fittrack")
	}
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(writeTemp(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "json")
	}
	if cfg.Shell.Prompts {
		t.Error("shell.prompts = true, want false")
	}
	if cfg.MCP.Name != "fittrack-dev" {
		t.Errorf("mcp.name = %q, want %q", cfg.MCP.Name, "fittrack-dev")
	}
}

// TestLoadPartialYAML verifies that keys missing from the file keep their defaults.
func TestLoadPartialYAML(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(writeTemp(t, "config.yaml", "log:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "warn")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
	if !cfg.Shell.Prompts {
		t.Error("shell.prompts = false, want true")
	}
}

// TestEnvOverride verifies that FITTRACK_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FITTRACK_LOG_LEVEL", "error")
	t.Setenv("FITTRACK_SHELL_PROMPTS", "true")

	cfg, err := Load(writeTemp(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "error")
	}
	if !cfg.Shell.Prompts {
		t.Error("shell.prompts = false, want true")
	}
	// Unchanged fields should keep YAML values
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "json")
	}
}

// TestEnvOverrideBadBool verifies that an unparseable prompts flag is rejected.
func TestEnvOverrideBadBool(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FITTRACK_SHELL_PROMPTS", "sometimes")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid FITTRACK_SHELL_PROMPTS")
	}
}

// TestDotEnv verifies that a .env file in the working directory feeds the
// env overrides, and that real environment variables still win.
func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "FITTRACK_MCP_NAME=from-dotenv\nFITTRACK_LOG_FORMAT=json\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("FITTRACK_LOG_FORMAT", "text")
	t.Cleanup(func() { os.Unsetenv("FITTRACK_MCP_NAME") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MCP.Name != "from-dotenv" {
		t.Errorf("mcp.name = %q, want %q", cfg.MCP.Name, "from-dotenv")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

// TestValidationBadLevel verifies that an unknown log level produces a clear error.
func TestValidationBadLevel(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeTemp(t, "config.yaml", "log:\n  level: verbose\n"))
	if err == nil {
		t.Fatal("expected validation error for unknown level")
	}
}

// TestValidationBadFormat verifies that an unknown log format is rejected.
func TestValidationBadFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeTemp(t, "config.yaml", "log:\n  format: xml\n"))
	if err == nil {
		t.Fatal("expected validation error for unknown format")
	}
}

// TestValidationEmptyMCPName verifies that blanking the server name is rejected.
func TestValidationEmptyMCPName(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeTemp(t, "config.yaml", "mcp:\n  name: \"\"\n"))
	if err == nil {
		t.Fatal("expected validation error for empty mcp.name")
	}
}

// TestLoadMissingFile verifies that an explicit but missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoadMalformedYAML verifies that a syntactically broken file is rejected.
func TestLoadMalformedYAML(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeTemp(t, "config.yaml", "log: [unterminated\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
