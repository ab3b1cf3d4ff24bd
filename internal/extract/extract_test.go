package extract

import (
	"errors"
	"testing"
)

func TestObject_BareJSON(t *testing.T) {
	obj, err := Object(`{"summary": "a tech channel", "confidence_score": 0.9}`, []string{"summary"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	if got := String(obj, "summary"); got != "a tech channel" {
		t.Errorf("summary = %q", got)
	}
}

func TestObject_JSONFenceWithProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n\n```json\n{\"summary\": \"s\", \"themes\": [\"a\", \"b\"]}\n```\n\nLet me know if you need more."
	obj, err := Object(raw, []string{"summary", "themes"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	themes := StringSlice(obj, "themes")
	if len(themes) != 2 || themes[0] != "a" || themes[1] != "b" {
		t.Errorf("themes = %v", themes)
	}
}

func TestObject_PlainFence(t *testing.T) {
	raw := "```\n{\"summary\": \"s\"}\n```"
	obj, err := Object(raw, []string{"summary"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	if String(obj, "summary") != "s" {
		t.Errorf("summary = %q", String(obj, "summary"))
	}
}

func TestObject_JSONFencePreferredOverBraces(t *testing.T) {
	// Prose contains stray braces; the fenced block must win.
	raw := "Note {this is not json}.\n```json\n{\"summary\": \"fenced\"}\n```"
	obj, err := Object(raw, []string{"summary"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	if String(obj, "summary") != "fenced" {
		t.Errorf("summary = %q, want the fenced object", String(obj, "summary"))
	}
}

func TestObject_BraceSpanWithProse(t *testing.T) {
	raw := `Sure! {"summary": "braces"} hope that helps.`
	obj, err := Object(raw, []string{"summary"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	if String(obj, "summary") != "braces" {
		t.Errorf("summary = %q", String(obj, "summary"))
	}
}

func TestObject_NoJSONIsMalformed(t *testing.T) {
	raw := "I could not produce an analysis for this channel."
	_, err := Object(raw, nil)

	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedOutputError", err)
	}
	if malformed.Raw != raw {
		t.Error("MalformedOutputError does not carry the raw text")
	}
}

func TestObject_InvalidJSONIsMalformed(t *testing.T) {
	_, err := Object(`{"summary": unterminated`, nil)
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedOutputError", err)
	}
}

func TestObject_MissingFieldsIsIncomplete(t *testing.T) {
	_, err := Object(`{"summary": "s"}`, []string{"summary", "themes", "target_audience"})

	var incomplete *IncompleteOutputError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %T, want *IncompleteOutputError", err)
	}
	if len(incomplete.Missing) != 2 {
		t.Errorf("missing = %v, want [themes target_audience]", incomplete.Missing)
	}
}

func TestObject_IncompleteDistinctFromMalformed(t *testing.T) {
	_, err := Object(`{"summary": "s"}`, []string{"themes"})
	var malformed *MalformedOutputError
	if errors.As(err, &malformed) {
		t.Error("missing-field failure reported as malformed output")
	}
}

func TestObject_UnclosedFence(t *testing.T) {
	obj, err := Object("```json\n{\"summary\": \"s\"}", []string{"summary"})
	if err != nil {
		t.Fatalf("Object error: %v", err)
	}
	if String(obj, "summary") != "s" {
		t.Errorf("summary = %q", String(obj, "summary"))
	}
}

func TestFloat_Fallback(t *testing.T) {
	obj := map[string]any{"confidence_score": 0.7}
	if got := Float(obj, "confidence_score", 0.85); got != 0.7 {
		t.Errorf("Float = %v, want 0.7", got)
	}
	if got := Float(obj, "absent", 0.85); got != 0.85 {
		t.Errorf("Float fallback = %v, want 0.85", got)
	}
}
