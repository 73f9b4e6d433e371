package format

import (
	"bytes"
	"strings"
	"testing"
)

type greeting string

func (g greeting) Text() string { return "hello " + string(g) }

func TestWrite_Formats(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": 1}, "json", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := buf.String(); got != "{\"data\":1}\n" {
		t.Fatalf("json: got %q", got)
	}

	buf.Reset()
	if err := Write(&buf, greeting("ada"), "text", false); err != nil {
		t.Fatalf("text: %v", err)
	}
	if got := buf.String(); got != "hello ada\n" {
		t.Fatalf("text: got %q", got)
	}

	buf.Reset()
	if err := Write(&buf, map[string]int{"n": 1}, "text", false); err != nil {
		t.Fatalf("text fallback: %v", err)
	}
	if !strings.Contains(buf.String(), "\"n\": 1") {
		t.Fatalf("text fallback: expected pretty JSON; got %q", buf.String())
	}

	if err := Write(&buf, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTruncateAndPlain(t *testing.T) {
	DisableColor()
	if got := Plain(Status("blocked")); got != "blocked" {
		t.Fatalf("Plain(Status): got %q", got)
	}
	if got := Truncate("abcdefghij", 5); Plain(got) != "abcd…" {
		t.Fatalf("Truncate: got %q", got)
	}
	if got := Swatch("teal", "Eng"); got != "Eng" {
		t.Fatalf("Swatch with unknown color: got %q", got)
	}
}

func TestMarkdown_PlainRendering(t *testing.T) {
	DisableColor()
	out := Plain(Markdown("# Title\n\nSome **bold** text.", 60))
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Fatalf("unexpected markdown output:\n%s", out)
	}
	if Markdown("   ", 60) != "" {
		t.Fatalf("blank markdown should render empty")
	}
}
