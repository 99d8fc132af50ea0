package regex

import "testing"

func TestCompileLiteralMatch(t *testing.T) {
	r, err := Compile("abc")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	length, ok := r.MatchAt("abcdef", 0)
	if !ok || length != 3 {
		t.Fatalf("expected match of length 3, got ok=%v len=%d", ok, length)
	}
	if _, ok := r.MatchAt("xyz", 0); ok {
		t.Fatalf("expected no match")
	}
}

func TestCompileCharClass(t *testing.T) {
	r, err := Compile("[a-z]+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	length, ok := r.MatchAt("hello123", 0)
	if !ok || length != 5 {
		t.Fatalf("expected match of length 5, got ok=%v len=%d", ok, length)
	}
}

func TestCompileAlternation(t *testing.T) {
	r, err := Compile("foo|bar")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := r.MatchAt("bar", 0); !ok {
		t.Fatalf("expected 'bar' to match")
	}
	if _, ok := r.MatchAt("foo", 0); !ok {
		t.Fatalf("expected 'foo' to match")
	}
}

func TestCompileOptionalAndStar(t *testing.T) {
	r, err := Compile("ab?c*")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	length, ok := r.MatchAt("accc", 0)
	if !ok || length != 4 {
		t.Fatalf("expected match of length 4 for 'accc', got ok=%v len=%d", ok, length)
	}
	length, ok = r.MatchAt("abcccc", 0)
	if !ok || length != 6 {
		t.Fatalf("expected match of length 6 for 'abcccc', got ok=%v len=%d", ok, length)
	}
}

func TestCompileRepeatBounds(t *testing.T) {
	r, err := Compile(`a{2,4}`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	length, ok := r.MatchAt("aaaaaa", 0)
	if !ok || length != 4 {
		t.Fatalf("expected greedy match capped at 4, got ok=%v len=%d", ok, length)
	}
	if _, ok := r.MatchAt("a", 0); ok {
		t.Fatalf("expected no match below minimum repeat count")
	}
}

func TestMatchAtOffset(t *testing.T) {
	r, err := Compile("[0-9]+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	length, ok := r.MatchAt("id:42", 3)
	if !ok || length != 2 {
		t.Fatalf("expected match of length 2 at offset 3, got ok=%v len=%d", ok, length)
	}
}

func TestEqualIgnoresRawSource(t *testing.T) {
	r1, err := Compile("a|a")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r2, err := Compile("a")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !r1.Equal(r2) {
		t.Fatalf("expected equivalent automatons to compare equal regardless of source text")
	}
}

func TestConstantNameIsStable(t *testing.T) {
	r1, err := Compile("[a-z]+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r2, err := Compile("[a-z]+")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	n1, err := r1.ConstantName()
	if err != nil {
		t.Fatalf("constant name: %v", err)
	}
	n2, err := r2.ConstantName()
	if err != nil {
		t.Fatalf("constant name: %v", err)
	}
	if n1 != n2 {
		t.Fatalf("expected stable constant name, got %q vs %q", n1, n2)
	}
	if len(n1) <= len("REGEX_") {
		t.Fatalf("expected REGEX_<hex> name, got %q", n1)
	}
}

func TestFromTablesRoundTrip(t *testing.T) {
	r, err := Compile("abc|def")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	r2, err := FromTables(r.Raw, r.ForwardLE, r.ForwardBE, r.ReverseLE, r.ReverseBE)
	if err != nil {
		t.Fatalf("from tables: %v", err)
	}
	length, ok := r2.MatchAt("defg", 0)
	if !ok || length != 3 {
		t.Fatalf("expected reconstructed regex to match, got ok=%v len=%d", ok, length)
	}
}
