package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestEnvironment_DefineGet(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", Integer(1))

	v, err := global.Get("x")
	if err != nil || v != Integer(1) {
		t.Fatalf("Get(x) = %v, %v", v, err)
	}

	if _, err := global.Get("missing"); !errors.Is(err, ErrUndefinedVariable) {
		t.Errorf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestEnvironment_Shadowing(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", Integer(1))

	inner := global.Child()
	inner.Define("x", Integer(2))

	if v, _ := inner.Get("x"); v != Integer(2) {
		t.Errorf("inner x = %v, want 2", v)
	}

	if v, _ := global.Get("x"); v != Integer(1) {
		t.Errorf("outer x = %v, want 1", v)
	}

	if inner.Parent() != global {
		t.Error("Child parent mismatch")
	}

	if global.Parent() != nil {
		t.Error("global scope has a parent")
	}
}

func TestEnvironment_Assign(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", Integer(1))

	mid := global.Child()
	inner := mid.Child()

	if err := inner.Assign("x", Integer(5)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if v, _ := global.Get("x"); v != Integer(5) {
		t.Errorf("global x = %v, want 5", v)
	}

	if inner.Len() != 0 || mid.Len() != 0 {
		t.Error("Assign created a binding in an inner scope")
	}

	err := inner.Assign("y", Integer(1))
	if !errors.Is(err, ErrAssignToUndefined) {
		t.Fatalf("expected ErrAssignToUndefined, got %v", err)
	}

	if _, ok := inner.Lookup("y"); ok {
		t.Error("failed Assign created a binding")
	}
}

func TestEnvironment_AssignNearest(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", Integer(1))

	inner := global.Child()
	inner.Define("x", Integer(2))

	if err := inner.Child().Assign("x", Integer(3)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if v, _ := inner.Get("x"); v != Integer(3) {
		t.Errorf("inner x = %v, want 3", v)
	}

	if v, _ := global.Get("x"); v != Integer(1) {
		t.Errorf("global x = %v, want 1", v)
	}
}

func TestEnvironment_Names(t *testing.T) {
	global := NewEnvironment()
	global.Define("b", Integer(1))
	global.Define("a", Integer(1))

	inner := global.Child()
	inner.Define("c", Integer(1))
	inner.Define("a", Integer(2))

	got := slices.Collect(inner.Names())
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if got := slices.Collect(global.Names()); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("global Names() = %v", got)
	}
}
