package diag

import (
	"strings"
	"testing"
)

func TestParsingErrorMessageBothEmpty(t *testing.T) {
	e := NewParsingError("abc", 1, nil, nil)
	if got := e.Message(); got != "unknown parsing error" {
		t.Fatalf("expected unknown parsing error message, got %q", got)
	}
}

func TestParsingErrorMessagePositivesOnly(t *testing.T) {
	e := NewParsingError("abc", 1, []string{"A", "B", "C"}, nil)
	if got := e.Message(); got != "expected A, B, or C" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestParsingErrorMessageBoth(t *testing.T) {
	e := NewParsingError("abc", 1, []string{"A"}, []string{"B"})
	if got := e.Message(); got != "unexpected B; expected A" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRenamedRules(t *testing.T) {
	e := NewParsingError("abc", 1, []string{"open_paren"}, []string{"closed_paren"})
	renamed := e.RenamedRules(func(rule string) string {
		switch rule {
		case "open_paren":
			return "("
		case "closed_paren":
			return "closed paren"
		}
		return rule
	})
	if renamed.Kind != CustomError {
		t.Fatalf("expected renamed error to become CustomError")
	}
	if got := renamed.Message(); got != "unexpected closed paren; expected (" {
		t.Fatalf("unexpected renamed message: %q", got)
	}
}

func TestCustomErrorSpanContext(t *testing.T) {
	input := "line one\nline two\nline three"
	err := NewCustomError("bad stuff", input, 9, 17) // "line two"
	if !strings.Contains(err.Error(), "bad stuff") {
		t.Fatalf("expected message in error string, got %q", err.Error())
	}
	if err.Line() != "line two" {
		t.Fatalf("expected line context 'line two', got %q", err.Line())
	}
}

func TestErrorWithPath(t *testing.T) {
	e := NewCustomError("oops", "abc", 0, 1)
	e = e.WithPath("grammar.ygg")
	if !strings.HasPrefix(e.Error(), "grammar.ygg: ") {
		t.Fatalf("expected path prefix, got %q", e.Error())
	}
}
