package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
		{"abcdefghij", "abcd**ghij"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := MaskToken(tt.key); got != tt.want {
				t.Errorf("MaskToken(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadConfigWithPath_NewConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dreamina", "config.yaml")

	cfg, err := LoadConfigWithPath("dreamina", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if cfg.AppName != "dreamina" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "dreamina")
	}
	if cfg.Contexts == nil {
		t.Error("Contexts should be initialized")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("loading should not create the config file")
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "dreamina", "config.yaml")

	cfg, err := LoadConfigWithPath("dreamina", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if err := cfg.AddContext("dev", &Context{Token: "sess-1", API: "http://gw:5200", Ratio: "16:9"}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.AddContext("prod", &Context{Token: "sess-2"}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.UseContext("dev"); err != nil {
		t.Fatalf("UseContext error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	loaded, err := LoadConfigWithPath("dreamina", configPath)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}

	if loaded.CurrentContext != "dev" {
		t.Errorf("CurrentContext = %q, want dev", loaded.CurrentContext)
	}
	if got := loaded.ListContexts(); !reflect.DeepEqual(got, []string{"dev", "prod"}) {
		t.Errorf("ListContexts() = %v", got)
	}

	ctx, err := loaded.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext error: %v", err)
	}
	if ctx.Name != "dev" || ctx.Token != "sess-1" || ctx.API != "http://gw:5200" || ctx.Ratio != "16:9" {
		t.Errorf("resolved context = %+v", ctx)
	}
}

func TestConfig_ResolveContext(t *testing.T) {
	cfg := &Config{
		Contexts: map[string]*Context{
			"a": {Name: "a", Token: "ta"},
		},
	}

	ctx, err := cfg.ResolveContext("")
	if err != nil || ctx != nil {
		t.Errorf("ResolveContext(\"\") with no current = (%v, %v), want (nil, nil)", ctx, err)
	}

	ctx, err = cfg.ResolveContext("a")
	if err != nil || ctx.Token != "ta" {
		t.Errorf("ResolveContext(a) = (%v, %v)", ctx, err)
	}

	if _, err := cfg.ResolveContext("missing"); err == nil {
		t.Error("ResolveContext(missing) should fail")
	}
}

func TestConfig_DeleteContext(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg, _ := LoadConfigWithPath("dreamina", configPath)

	if err := cfg.AddContext("dev", &Context{Token: "x"}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.UseContext("dev"); err != nil {
		t.Fatalf("UseContext error: %v", err)
	}
	if err := cfg.DeleteContext("dev"); err != nil {
		t.Fatalf("DeleteContext error: %v", err)
	}

	if cfg.CurrentContext != "" {
		t.Errorf("CurrentContext = %q, want empty after delete", cfg.CurrentContext)
	}
	if err := cfg.DeleteContext("dev"); err == nil {
		t.Error("deleting a missing context should fail")
	}
	if err := cfg.UseContext("dev"); err == nil {
		t.Error("using a missing context should fail")
	}
}

func TestConfig_AddContextEmptyName(t *testing.T) {
	cfg, _ := LoadConfigWithPath("dreamina", filepath.Join(t.TempDir(), "config.yaml"))
	if err := cfg.AddContext(" ", &Context{}); err == nil {
		t.Error("AddContext with blank name should fail")
	}
}

func TestLoadConfigWithPath_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("contexts: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigWithPath("dreamina", configPath); err == nil {
		t.Error("expected parse error")
	}
}
