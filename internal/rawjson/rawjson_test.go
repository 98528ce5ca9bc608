package rawjson

import "testing"

func doc(t *testing.T) map[string]any {
	t.Helper()
	m, err := Decode([]byte(`{
	  "a": {"b": {"s": "hello", "n": 7, "ns": "42", "flag": true, "items": [1, 2]}},
	  "nil": null
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func TestString(t *testing.T) {
	m := doc(t)
	if got := String(m, "def", "a", "b", "s"); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := String(m, "def", "a", "missing"); got != "def" {
		t.Fatalf("missing: got %q", got)
	}
	if got := String(m, "def", "a", "b", "n"); got != "def" {
		t.Fatalf("mistyped: got %q", got)
	}
}

func TestInt(t *testing.T) {
	m := doc(t)
	if got := Int(m, -1, "a", "b", "n"); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := Int(m, -1, "a", "b", "ns"); got != 42 {
		t.Fatalf("numeric string: got %d", got)
	}
	if got := Int(m, -1, "a", "b", "s"); got != -1 {
		t.Fatalf("non-numeric string: got %d", got)
	}
	if got := Int(m, -1, "nope"); got != -1 {
		t.Fatalf("missing: got %d", got)
	}
}

func TestOptionalInt(t *testing.T) {
	m := doc(t)
	if got := OptionalInt(m, "a", "b", "n"); got == nil || *got != 7 {
		t.Fatalf("got %v", got)
	}
	if got := OptionalInt(m, "a", "b", "missing"); got != nil {
		t.Fatalf("missing: got %v", got)
	}
	if got := OptionalInt(m, "a", "b", "flag"); got != nil {
		t.Fatalf("mistyped: got %v", got)
	}
}

func TestBoolAndHas(t *testing.T) {
	m := doc(t)
	if !Bool(m, false, "a", "b", "flag") {
		t.Fatal("flag should be true")
	}
	if Bool(m, false, "a", "b", "s") {
		t.Fatal("mistyped bool should fall back")
	}
	if !Has(m, "a", "b", "items") {
		t.Fatal("items should exist")
	}
	if Has(m, "nil") {
		t.Fatal("null value should not count as present")
	}
	if Has(m, "a", "b", "s", "deeper") {
		t.Fatal("path through a string should fail")
	}
}

func TestMapAndList(t *testing.T) {
	m := doc(t)
	if inner := Map(m, "a", "b"); inner == nil {
		t.Fatal("expected inner object")
	}
	if Map(m, "a", "b", "items") != nil {
		t.Fatal("array is not an object")
	}
	if items := List(m, "a", "b", "items"); len(items) != 2 {
		t.Fatalf("items = %v", items)
	}
	if List(m, "a", "b", "s") != nil {
		t.Fatal("string is not an array")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte(`[1, 2]`)); err == nil {
		t.Fatal("top-level array should not decode into an object")
	}
}
