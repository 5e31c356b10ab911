package record

import "testing"

func TestValues(t *testing.T) {
	type key struct{ name string }
	a, b := &key{"a"}, &key{"b"}

	v := Make(2)
	v.Set(0, a, "first")
	v.Set(1, b, 2)

	if v.Len() != 2 {
		t.Errorf("Len: got %d, want 2", v.Len())
	}
	if got := v.At(0); got != "first" {
		t.Errorf("At(0): got %v", got)
	}
	if got := v.At(5); got != nil {
		t.Errorf("At(5): got %v, want nil", got)
	}
	if got, ok := v.Lookup(b); !ok || got != 2 {
		t.Errorf("Lookup(b): got %v, %v", got, ok)
	}
	if _, ok := v.Lookup(&key{"a"}); ok {
		t.Error("Lookup must compare by identity")
	}
}
