package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/toolchain"
)

func TestCacheBase_XDGSet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	got := cacheBase()
	want := filepath.Join("/custom/cache", "doclinks")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_HomeDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	got := cacheBase()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	want := filepath.Join(home, ".cache", "doclinks")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_TmpFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")
	got := cacheBase()
	// Should use os.TempDir() when HOME is unset
	if !strings.Contains(got, "doclinks") {
		t.Errorf("expected doclinks in path, got %q", got)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("JAVA_HOME", "")
	t.Setenv("DOCLINKS_TOOLCHAIN", "")
	t.Setenv("DOCLINKS_CACHE_DIR", "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	wantCache := filepath.Join(dir, "cache", "doclinks", "javadoc-links")
	if cfg.CacheDir != wantCache {
		t.Errorf("cache dir: got %q, want %q", cfg.CacheDir, wantCache)
	}
	if cfg.Output != filepath.Join(wantCache, "javadoc.options") {
		t.Errorf("output: got %q", cfg.Output)
	}
	if cfg.Toolchain != "17" {
		t.Errorf("toolchain: got %q, want 17", cfg.Toolchain)
	}
	if cfg.Timeout().Seconds() != 30 {
		t.Errorf("timeout: got %s", cfg.Timeout())
	}

	url := cfg.Resolver()(component.ID{Group: "g", Name: "a", Version: "1"})
	if url != "https://javadoc.io/doc/g/a/1/" {
		t.Errorf("default resolver: got %q", url)
	}
}

func TestLoad_ConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)

	configDir := filepath.Join(dir, "config", "doclinks")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
toolchain = "1.8"

[fetch]
requests_per_second = 2.5

[links]
rules = [
  { group = "group", template = "https://group.com/{name}/{version}/" },
  "https://mirror.local/{group}/{name}/{version}/",
]
`
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCLINKS_FETCH_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Toolchain != "1.8" {
		t.Errorf("toolchain: got %q", cfg.Toolchain)
	}
	if cfg.Fetch.RequestsPerSecond != 2.5 {
		t.Errorf("rps: got %v", cfg.Fetch.RequestsPerSecond)
	}
	if cfg.Timeout().Seconds() != 5 {
		t.Errorf("timeout from env: got %s", cfg.Timeout())
	}
	if len(cfg.Links.Rules) != 2 {
		t.Fatalf("rules: got %d", len(cfg.Links.Rules))
	}

	resolve := cfg.Resolver()
	if got := resolve(component.ID{Group: "group", Name: "sub", Version: "0.1"}); got != "https://group.com/sub/0.1/" {
		t.Errorf("group rule: got %q", got)
	}
	if got := resolve(component.ID{Group: "io.netty", Name: "netty", Version: "4"}); got != "https://mirror.local/io.netty/netty/4/" {
		t.Errorf("catch-all rule: got %q", got)
	}
}

func TestLoad_DetectsJavaHome(t *testing.T) {
	dir := isolate(t)

	javaHome := filepath.Join(dir, "jdk")
	if err := os.MkdirAll(javaHome, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(javaHome, "release"), []byte(`JAVA_VERSION="11.0.2"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JAVA_HOME", javaHome)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Toolchain != "11.0.2" {
		t.Errorf("toolchain: got %q", cfg.Toolchain)
	}
}

func TestLoad_JavaHomeVersions(t *testing.T) {
	tests := map[string]string{
		"17.0.4.1":  "17.0.4.1",
		"11.0.20.1": "11.0.20.1",
		"banana":    DefaultToolchain,
	}
	for version, want := range tests {
		dir := isolate(t)

		javaHome := filepath.Join(dir, "jdk")
		if err := os.MkdirAll(javaHome, 0755); err != nil {
			t.Fatal(err)
		}
		release := `JAVA_VERSION="` + version + `"` + "\n"
		if err := os.WriteFile(filepath.Join(javaHome, "release"), []byte(release), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("JAVA_HOME", javaHome)

		cfg, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Toolchain != want {
			t.Errorf("%s: toolchain got %q, want %q", version, cfg.Toolchain, want)
		}
		if _, err := toolchain.NewPolicy(cfg.Toolchain); err != nil {
			t.Errorf("%s: %v", version, err)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	if got := expandHome("~/docs"); got != filepath.Join(home, "docs") {
		t.Errorf("got %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("got %q", got)
	}
}
