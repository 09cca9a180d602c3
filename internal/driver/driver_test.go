package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.json", `{"a": [1, 2]}`)

	res, err := ParseFile(path, Options{Grammar: GrammarJSON})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed() {
		t.Fatalf("unexpected parse failure: %+v", res.Err)
	}
	obj, ok := res.Value.(map[string]any)
	if !ok || len(obj) != 1 {
		t.Errorf("value = %#v", res.Value)
	}
}

func TestParseFile_SexprFailureRenders(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lisp", "(a b")

	res, err := ParseFile(path, Options{Grammar: GrammarSexpr})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Failed() {
		t.Fatal("expected parse failure")
	}
	out := res.Render(false)
	if !strings.Contains(out, "error:") || !strings.Contains(out, "(a b") {
		t.Errorf("Render() = %q", out)
	}
}

func TestParseGrammar(t *testing.T) {
	if g, err := ParseGrammar("LISP"); err != nil || g != GrammarSexpr {
		t.Errorf("ParseGrammar(LISP) = %v, %v", g, err)
	}
	if _, err := ParseGrammar("yaml"); err == nil {
		t.Error("expected error for unknown grammar")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `1`)
	writeFile(t, dir, "sub/b.json", `[true]`)
	writeFile(t, dir, "sub/broken.json", `{`)
	writeFile(t, dir, "ignored.txt", `not json`)

	events := make(chan Event, 64)
	results, err := ParseDir(context.Background(), dir, Options{Grammar: GrammarJSON}, events)
	close(events)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	// отсортировано по пути
	if results[0].Path != "a.json" || results[1].Path != "sub/b.json" {
		t.Errorf("order = %v, %v", results[0].Path, results[1].Path)
	}
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	var doneEvents int
	for ev := range events {
		if ev.Stage == StageDone {
			doneEvents++
		}
	}
	if doneEvents != 3 {
		t.Errorf("done events = %d, want 3", doneEvents)
	}
}
