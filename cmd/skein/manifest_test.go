package main

import (
	"os"
	"path/filepath"
	"testing"

	"skein/internal/driver"
)

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "skein.toml")
	data := `# test manifest
[grammar]
name = "sexpr"
max_depth = 16

[input]
nfc = true

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write skein.toml: %v", err)
	}

	// Поиск идёт вверх от вложенной директории
	nested := filepath.Join(root, "data", "inner")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	man, ok, err := loadManifest(nested)
	if err != nil {
		t.Fatalf("loadManifest error: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	if man.Root != root {
		t.Fatalf("Root = %q, want %q", man.Root, root)
	}
	if man.Config.Grammar.Name != "sexpr" {
		t.Fatalf("grammar name = %q, want sexpr", man.Config.Grammar.Name)
	}
	if man.Config.Grammar.MaxDepth != 16 {
		t.Fatalf("max_depth = %d, want 16", man.Config.Grammar.MaxDepth)
	}
	if !man.Config.Input.NFC {
		t.Fatal("expected input.nfc = true")
	}
	if man.Config.Output.Format != "json" {
		t.Fatalf("output format = %q, want json", man.Config.Output.Format)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	// TempDir не содержит skein.toml, а его родители вне нашего контроля
	// находятся под /tmp, где манифеста тоже нет
	_, ok, err := loadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("loadManifest error: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest")
	}
}

func TestLoadManifestRejectsBadFormat(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "skein.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"yaml\"\n"), 0o600); err != nil {
		t.Fatalf("write skein.toml: %v", err)
	}
	if _, _, err := loadManifest(root); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestResolveGrammarFromExtension(t *testing.T) {
	cases := []struct {
		path string
		want driver.Grammar
	}{
		{"data.json", driver.GrammarJSON},
		{"prog.sexpr", driver.GrammarSexpr},
		{"prog.LISP", driver.GrammarSexpr},
		{"notes.txt", driver.GrammarJSON},
	}
	for _, tc := range cases {
		got, err := resolveGrammar("", tc.path)
		if err != nil {
			t.Fatalf("resolveGrammar(%q) error: %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("resolveGrammar(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
