package classfile

import (
	"errors"
	"testing"
)

// fakeResolver records CommonSuperclass calls and returns canned answers.
type fakeResolver struct {
	answers map[[2]string]string
	calls   int
}

func (r *fakeResolver) CommonSuperclass(a, b string) (string, error) {
	r.calls++
	if common, ok := r.answers[[2]string{a, b}]; ok {
		return common, nil
	}
	return "", errors.New("unknown class pair")
}

// ---------------------------------------------------------------------------
// Type table tests
// ---------------------------------------------------------------------------

func TestAddTypeDeduplicates(t *testing.T) {
	st := NewSymbolTable(nil)
	a := st.AddType("java/lang/String")
	b := st.AddType("java/lang/String")
	if a != b {
		t.Errorf("re-add: got %d, want %d", b, a)
	}
	if a != 1 {
		t.Errorf("first type index: got %d, want 1", a)
	}
	if got := st.TypeName(a); got != "java/lang/String" {
		t.Errorf("TypeName: got %q, want %q", got, "java/lang/String")
	}
}

func TestTypeTableSeparateFromPool(t *testing.T) {
	st := NewSymbolTable(nil)
	st.InternUTF8("padding")
	st.InternUTF8("more padding")
	if got := st.AddType("Some/Type"); got != 1 {
		t.Errorf("type index after pool entries: got %d, want 1", got)
	}
	if st.PoolCount() != 3 {
		t.Errorf("AddType changed pool count: got %d, want 3", st.PoolCount())
	}
}

func TestAddUninitializedTypeOffsetsDistinct(t *testing.T) {
	st := NewSymbolTable(nil)
	a := st.AddUninitializedType("Some/Type", 10)
	b := st.AddUninitializedType("Some/Type", 20)
	c := st.AddUninitializedType("Some/Type", 10)
	if a == b {
		t.Error("different creation offsets collapsed to one entry")
	}
	if a != c {
		t.Errorf("same creation offset re-added: got %d, want %d", c, a)
	}
	normal := st.AddType("Some/Type")
	if normal == a || normal == b {
		t.Error("normal type entry collided with uninitialized entry")
	}
}

func TestTypeNameOutOfRangePanics(t *testing.T) {
	st := NewSymbolTable(nil)
	st.AddType("Some/Type")
	defer func() {
		if recover() == nil {
			t.Error("TypeName with unassigned index did not panic")
		}
	}()
	st.TypeName(2)
}

// ---------------------------------------------------------------------------
// Frame merge tests
// ---------------------------------------------------------------------------

func TestMergeTypesMemoizes(t *testing.T) {
	r := &fakeResolver{answers: map[[2]string]string{
		{"A", "B"}: "java/lang/Object",
	}}
	st := NewSymbolTable(r)
	a := st.AddType("A")
	b := st.AddType("B")

	first, err := st.MergeTypes(a, b)
	if err != nil {
		t.Fatalf("MergeTypes failed: %v", err)
	}
	if got := st.TypeName(first); got != "java/lang/Object" {
		t.Errorf("merged type name: got %q, want %q", got, "java/lang/Object")
	}

	second, err := st.MergeTypes(a, b)
	if err != nil {
		t.Fatalf("repeat MergeTypes failed: %v", err)
	}
	if second != first {
		t.Errorf("memoized merge: got %d, want %d", second, first)
	}
	if r.calls != 1 {
		t.Errorf("resolver calls: got %d, want 1", r.calls)
	}
}

func TestMergeTypesOrderSensitive(t *testing.T) {
	r := &fakeResolver{answers: map[[2]string]string{
		{"A", "B"}: "java/lang/Object",
		{"B", "A"}: "java/lang/Object",
	}}
	st := NewSymbolTable(r)
	a := st.AddType("A")
	b := st.AddType("B")

	if _, err := st.MergeTypes(a, b); err != nil {
		t.Fatalf("MergeTypes(a, b) failed: %v", err)
	}
	if _, err := st.MergeTypes(b, a); err != nil {
		t.Fatalf("MergeTypes(b, a) failed: %v", err)
	}
	// The memo keys operands positionally, so the reversed pair resolves
	// again rather than hitting the (a, b) entry.
	if r.calls != 2 {
		t.Errorf("resolver calls: got %d, want 2", r.calls)
	}
}

func TestMergeTypesResolverError(t *testing.T) {
	r := &fakeResolver{answers: map[[2]string]string{}}
	st := NewSymbolTable(r)
	a := st.AddType("A")
	b := st.AddType("B")
	if _, err := st.MergeTypes(a, b); err == nil {
		t.Error("MergeTypes with unknown pair did not fail")
	}
}

func TestMergeTypesNilResolver(t *testing.T) {
	st := NewSymbolTable(nil)
	a := st.AddType("A")
	b := st.AddType("B")
	if _, err := st.MergeTypes(a, b); err == nil {
		t.Error("MergeTypes without resolver did not fail")
	}
}
