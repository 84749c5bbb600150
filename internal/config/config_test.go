package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "offlinegate.yaml", `roots: [App/Sources, App/Tests]
extensions: [".swift", ".h"]
exclude: ["**/Generated/**"]
max_bytes: 2048
strict: true
extra_source_patterns: ["import Alamofire"]
tools:
  nm: /usr/bin/llvm-nm
`)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.Roots) != 2 || cfg.Roots[1] != "App/Tests" {
		t.Fatalf("unexpected roots: %#v", cfg.Roots)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".swift" {
		t.Fatalf("unexpected extensions: %#v", cfg.Extensions)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 2048 {
		t.Fatalf("expected max_bytes=2048, got %#v", cfg.MaxBytes)
	}
	if cfg.Strict == nil || !*cfg.Strict {
		t.Fatalf("expected strict=true")
	}
	if len(cfg.ExtraSourcePatterns) != 1 || cfg.ExtraSourcePatterns[0] != "import Alamofire" {
		t.Fatalf("unexpected extra source patterns: %#v", cfg.ExtraSourcePatterns)
	}
	tools := cfg.GetTools()
	if tools.GetNm() != "/usr/bin/llvm-nm" {
		t.Fatalf("expected nm override, got %q", tools.GetNm())
	}
	if tools.GetObjdump() != "objdump" {
		t.Fatalf("expected default objdump, got %q", tools.GetObjdump())
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yaml", "roots: [unterminated\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "offlinegate.yaml", "max_bytes: 1\n")
	writeTemp(t, dir, ".offlinegate.yml", "max_bytes: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 7 {
		t.Fatalf("expected max_bytes=7 from .offlinegate.yml, got %#v", cfg.MaxBytes)
	}
}

func TestLoadLocal_None(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	if !errors.Is(err, ErrNoLocalConfig) {
		t.Fatalf("expected ErrNoLocalConfig, got %v", err)
	}
}

func TestToolsDefaults(t *testing.T) {
	var fc FileConfig
	tools := fc.GetTools()
	if tools.GetNm() != "nm" || tools.GetObjdump() != "objdump" {
		t.Fatalf("unexpected defaults: %q %q", tools.GetNm(), tools.GetObjdump())
	}
	empty := ""
	if (ToolsConfig{Nm: &empty}).GetNm() != "nm" {
		t.Fatalf("empty override should fall back to default")
	}
}

func TestLoadFile_TOML(t *testing.T) {
	dir := t.TempDir()
	_ = writeTemp(t, dir, ".offlinegate.toml", `roots = ["App/Sources"]
max_bytes = 4096
extra_binary_patterns = ["GCDAsyncSocket"]

[tools]
objdump = "/opt/llvm/bin/llvm-objdump"
`)
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if len(cfg.Roots) != 1 || cfg.Roots[0] != "App/Sources" {
		t.Fatalf("unexpected roots: %#v", cfg.Roots)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 4096 {
		t.Fatalf("expected max_bytes=4096, got %#v", cfg.MaxBytes)
	}
	if len(cfg.ExtraBinaryPatterns) != 1 || cfg.ExtraBinaryPatterns[0] != "GCDAsyncSocket" {
		t.Fatalf("unexpected extra binary patterns: %#v", cfg.ExtraBinaryPatterns)
	}
	if got := cfg.GetTools().GetObjdump(); got != "/opt/llvm/bin/llvm-objdump" {
		t.Fatalf("expected objdump override, got %q", got)
	}

	bad := writeTemp(t, dir, "bad.toml", "roots = [\n")
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("expected TOML parse error")
	}
}
