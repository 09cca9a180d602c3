package json

import (
	"math"
	"reflect"
	"testing"

	"skein/internal/parse"
)

func mustParse(t *testing.T, input string) Value {
	t.Helper()
	v, err := ParseString(input, Options{})
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %+v", input, err)
	}
	return v
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`null`, nil},
		{`true`, true},
		{`false`, false},
		{`0`, 0.0},
		{`-12.5`, -12.5},
		{`1e3`, 1000.0},
		{`"hi\nthere"`, "hi\nthere"},
		{`  "padded"  `, "padded"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.input).Interface()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestParse_Composite(t *testing.T) {
	v := mustParse(t, `{ "name": "skein", "tags": [1, 2, 3], "nested": { "ok": true } }`)
	want := map[string]any{
		"name":   "skein",
		"tags":   []any{1.0, 2.0, 3.0},
		"nested": map[string]any{"ok": true},
	}
	if got := v.Interface(); !reflect.DeepEqual(got, want) {
		t.Errorf("Interface() = %#v, want %#v", got, want)
	}

	// порядок полей сохранён
	if v.Fields[0].Name != "name" || v.Fields[2].Name != "nested" {
		t.Errorf("field order = %v", []string{v.Fields[0].Name, v.Fields[1].Name, v.Fields[2].Name})
	}
}

func TestParse_EmptyContainers(t *testing.T) {
	if got := mustParse(t, `[]`).Interface(); !reflect.DeepEqual(got, []any{}) {
		t.Errorf("empty array = %#v", got)
	}
	if got := mustParse(t, `{}`).Interface(); !reflect.DeepEqual(got, map[string]any{}) {
		t.Errorf("empty object = %#v", got)
	}
}

func TestParse_Spans(t *testing.T) {
	v := mustParse(t, `[10, true]`)
	if v.Span.Start.Offset != 0 || v.Span.End.Offset != 10 {
		t.Errorf("array span = %v", v.Span)
	}
	if v.Items[0].Span.Start.Offset != 1 || v.Items[0].Span.End.Offset != 3 {
		t.Errorf("first item span = %v", v.Items[0].Span)
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare word", `nope`},
		{"trailing garbage", `1 x`},
		{"unterminated array", `[1, 2`},
		{"missing colon", `{"a" 1}`},
		{"non-string key", `{1: 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input, Options{}); err == nil {
				t.Errorf("expected failure for %q", tt.input)
			}
		})
	}
}

func TestParse_LabelAtTopLevel(t *testing.T) {
	_, err := ParseString(`,`, Options{})
	if err == nil {
		t.Fatal("expected failure")
	}
	if len(err.Expected) != 1 || err.Expected[0] != parse.MsgPart[rune]("a JSON value") {
		t.Errorf("expected = %v, want {Msg(a JSON value)}", err.Expected)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	deep := ""
	for range 5 {
		deep += "["
	}
	deep += "1"
	for range 5 {
		deep += "]"
	}

	if _, err := ParseString(deep, Options{MaxDepth: 8}); err != nil {
		t.Fatalf("depth 5 under limit 8 failed: %+v", err)
	}

	_, err := ParseString(deep, Options{MaxDepth: 3})
	if err == nil {
		t.Fatal("expected depth failure")
	}
	if err.Kind != parse.ErrCustom {
		t.Fatalf("kind = %v, want custom", err.Kind)
	}
	if err.Payload == nil || err.Payload.Error() != "nesting deeper than 3 levels" {
		t.Errorf("payload = %v", err.Payload)
	}
}

func TestParse_DepthUnwindsBetweenSiblings(t *testing.T) {
	// соседние контейнеры не накапливают глубину
	input := `[[1], [2], [3], [4]]`
	if _, err := ParseString(input, Options{MaxDepth: 2}); err != nil {
		t.Fatalf("sibling containers hit the limit: %+v", err)
	}
}

func TestParse_BigNumber(t *testing.T) {
	v := mustParse(t, `1e308`)
	if math.IsInf(v.Num, 0) {
		t.Error("1e308 should still be finite")
	}
}
