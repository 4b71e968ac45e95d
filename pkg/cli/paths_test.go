package cli

import (
	"path/filepath"
	"testing"
)

func TestNewPaths_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	paths, err := NewPaths("dreamina")
	if err != nil {
		t.Fatalf("NewPaths error: %v", err)
	}

	if got, want := paths.ConfigFile(), filepath.Join(dir, "dreamina", DefaultConfigFile); got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestPaths_HomeLayout(t *testing.T) {
	tmpDir := t.TempDir()
	paths := &Paths{AppName: "dreamina", HomeDir: tmpDir}

	if got, want := paths.BaseDir(), filepath.Join(tmpDir, DefaultBaseDir); got != want {
		t.Errorf("BaseDir() = %q, want %q", got, want)
	}
	if got, want := paths.AppDir(), filepath.Join(tmpDir, DefaultBaseDir, "dreamina"); got != want {
		t.Errorf("AppDir() = %q, want %q", got, want)
	}

	if err := paths.EnsureAppDir(); err != nil {
		t.Fatalf("EnsureAppDir error: %v", err)
	}
	// idempotent
	if err := paths.EnsureAppDir(); err != nil {
		t.Fatalf("EnsureAppDir second call error: %v", err)
	}
}
