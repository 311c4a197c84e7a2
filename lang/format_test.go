package lang

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestFormat_Text(t *testing.T) {
	prog, err := ParseString(t.Context(), "let x = 1 + 2;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.Format(t.Context(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"Program", "Let x", "Binary +", "Number 1", "Number 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestFormat_TextNesting(t *testing.T) {
	prog, err := ParseString(t.Context(),
		"function f(a) { if (a) { return a; } }")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.Format(t.Context(), &buf, 4); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "FuncDecl f(a)") {
		t.Errorf("expected function header in output:\n%s", out)
	}

	if !strings.Contains(out, "    If") {
		t.Errorf("expected nested If indented by 4:\n%s", out)
	}
}

func TestFormat_JSON(t *testing.T) {
	prog, err := ParseString(t.Context(), `greet("World");`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatJSON(t.Context(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded["kind"] != "Program" {
		t.Errorf("expected kind Program, got %v", decoded["kind"])
	}

	stmts, ok := decoded["statements"].([]any)
	if !ok || len(stmts) != 1 {
		t.Fatalf("expected one statement, got %v", decoded["statements"])
	}
}

func TestFormat_JSONRoundTripsViaMarshaler(t *testing.T) {
	prog, err := ParseString(t.Context(), "1 + 2;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	data, err := json.Marshal(prog)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	if !strings.Contains(string(data), `"kind":"Program"`) {
		t.Errorf("expected marshaled program, got %s", data)
	}
}

func TestFormat_YAML(t *testing.T) {
	prog, err := ParseString(t.Context(), "let answer = 42;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatYAML(t.Context(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "kind: Program") {
		t.Errorf("expected YAML document, got:\n%s", out)
	}

	if !strings.Contains(out, "name: answer") {
		t.Errorf("expected declared name in YAML, got:\n%s", out)
	}
}

func TestFormat_YAMLFlow(t *testing.T) {
	prog, err := ParseString(t.Context(), "1;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatYAML(t.Context(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if !strings.Contains(buf.String(), "{") {
		t.Errorf("expected flow-style YAML, got:\n%s", buf.String())
	}
}
