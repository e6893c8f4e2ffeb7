// Package config tests task file path resolution.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points every lookup at fresh temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	wd := t.TempDir()
	t.Chdir(wd)
	t.Setenv(EnvFile, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveDefault(t *testing.T) {
	wd := isolate(t)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != SourceDefault {
		t.Errorf("Source: got %q, want %q", cfg.Source, SourceDefault)
	}
	if filepath.Base(cfg.File) != DefaultFileName {
		t.Errorf("File: got %q, want basename %q", cfg.File, DefaultFileName)
	}
	got, _ := filepath.EvalSymlinks(filepath.Dir(cfg.File))
	want, _ := filepath.EvalSymlinks(wd)
	if got != want {
		t.Errorf("File dir: got %q, want %q", got, want)
	}
}

func TestResolvePrecedence(t *testing.T) {
	isolate(t)
	writeFile(t, ProjectConfigFile, `file = "from-config.json"`)
	t.Setenv(EnvFile, "from-env.json")

	cfg, err := Resolve("from-flag.json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.File != "from-flag.json" || cfg.Source != SourceFlag {
		t.Errorf("flag: got %q (%s)", cfg.File, cfg.Source)
	}

	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.File != "from-env.json" || cfg.Source != SourceEnv {
		t.Errorf("env: got %q (%s)", cfg.File, cfg.Source)
	}

	t.Setenv(EnvFile, "")
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != SourceConfig {
		t.Errorf("config: got source %q, want %q", cfg.Source, SourceConfig)
	}
	if filepath.Base(cfg.File) != "from-config.json" {
		t.Errorf("config: got file %q", cfg.File)
	}
	if !filepath.IsAbs(cfg.File) {
		t.Errorf("config file path should be absolute, got %q", cfg.File)
	}
}

func TestResolveUserConfig(t *testing.T) {
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	target := filepath.Join(t.TempDir(), "mine.json")
	writeFile(t, filepath.Join(xdg, AppName, UserConfigFile), "file = \""+filepath.ToSlash(target)+"\"\n")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.File != filepath.ToSlash(target) && cfg.File != target {
		t.Errorf("File: got %q, want %q", cfg.File, target)
	}
	if cfg.Source != SourceConfig {
		t.Errorf("Source: got %q, want %q", cfg.Source, SourceConfig)
	}
}

func TestResolveConfigWithoutFileKey(t *testing.T) {
	isolate(t)
	writeFile(t, ProjectConfigFile, "# nothing set\n")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Source != SourceDefault {
		t.Errorf("Source: got %q, want %q", cfg.Source, SourceDefault)
	}
	if cfg.ConfigPath == "" {
		t.Error("ConfigPath should name the file that was read")
	}
}

func TestResolveInvalidConfig(t *testing.T) {
	isolate(t)
	writeFile(t, ProjectConfigFile, "file = [not toml")

	if _, err := Resolve(""); err == nil {
		t.Fatal("expected error for invalid config file")
	}
}
