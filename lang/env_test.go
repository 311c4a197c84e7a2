package lang

import (
	"errors"
	"testing"
)

func TestEnv_DeclareAndLookup(t *testing.T) {
	env := NewEnv(nil)
	env.Declare("x", NumberValue(1))

	value, err := env.Lookup("x")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if value.Num != 1 {
		t.Errorf("expected 1, got %s", value.Inspect())
	}
}

func TestEnv_LookupWalksParents(t *testing.T) {
	outer := NewEnv(nil)
	outer.Declare("x", NumberValue(1))

	inner := NewEnv(NewEnv(outer))

	value, err := inner.Lookup("x")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}

	if value.Num != 1 {
		t.Errorf("expected 1, got %s", value.Inspect())
	}
}

func TestEnv_ShadowingLeavesOuterIntact(t *testing.T) {
	outer := NewEnv(nil)
	outer.Declare("x", NumberValue(1))

	inner := NewEnv(outer)
	inner.Declare("x", NumberValue(2))

	value, _ := inner.Lookup("x")
	if value.Num != 2 {
		t.Errorf("expected inner binding 2, got %s", value.Inspect())
	}

	value, _ = outer.Lookup("x")
	if value.Num != 1 {
		t.Errorf("expected outer binding 1, got %s", value.Inspect())
	}
}

func TestEnv_AssignRebindsWhereDeclared(t *testing.T) {
	outer := NewEnv(nil)
	outer.Declare("x", NumberValue(1))

	inner := NewEnv(outer)

	if err := inner.Assign("x", NumberValue(5)); err != nil {
		t.Fatalf("assign error: %v", err)
	}

	value, _ := outer.Lookup("x")
	if value.Num != 5 {
		t.Errorf("expected outer binding rebound to 5, got %s",
			value.Inspect())
	}
}

func TestEnv_AssignUndeclaredFails(t *testing.T) {
	env := NewEnv(nil)

	err := env.Assign("missing", NumberValue(1))
	if !errors.Is(err, ErrReference) {
		t.Errorf("expected ErrReference, got %v", err)
	}
}

func TestEnv_LookupUndeclaredFails(t *testing.T) {
	env := NewEnv(nil)

	_, err := env.Lookup("missing")
	if !errors.Is(err, ErrReference) {
		t.Errorf("expected ErrReference, got %v", err)
	}
}

func TestEnv_NamesDeduplicatesShadowed(t *testing.T) {
	outer := NewEnv(nil)
	outer.Declare("x", NumberValue(1))
	outer.Declare("y", NumberValue(2))

	inner := NewEnv(outer)
	inner.Declare("x", NumberValue(3))

	names := inner.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("expected [x y], got %v", names)
	}
}
