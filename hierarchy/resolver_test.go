package hierarchy

import (
	"errors"
	"testing"
)

// newTestResolver builds this class tree:
//
//	java/lang/Object
//	├── animals/Animal
//	│   ├── animals/Dog
//	│   │   └── animals/Puppy
//	│   └── animals/Cat
//	└── tools/Hammer
func newTestResolver() *Resolver {
	r := NewResolver()
	r.AddClass("animals/Animal", Root)
	r.AddClass("animals/Dog", "animals/Animal")
	r.AddClass("animals/Puppy", "animals/Dog")
	r.AddClass("animals/Cat", "animals/Animal")
	r.AddClass("tools/Hammer", Root)
	return r
}

func TestCommonSuperclassIdentity(t *testing.T) {
	r := newTestResolver()
	got, err := r.CommonSuperclass("animals/Dog", "animals/Dog")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != "animals/Dog" {
		t.Errorf("identity merge: got %q, want %q", got, "animals/Dog")
	}
}

func TestCommonSuperclassRootFallback(t *testing.T) {
	r := newTestResolver()
	got, err := r.CommonSuperclass(Root, "animals/Dog")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != Root {
		t.Errorf("root merge: got %q, want %q", got, Root)
	}
}

func TestCommonSuperclassDirectAncestor(t *testing.T) {
	r := newTestResolver()
	got, err := r.CommonSuperclass("animals/Animal", "animals/Puppy")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != "animals/Animal" {
		t.Errorf("ancestor merge: got %q, want %q", got, "animals/Animal")
	}

	// And with the operands swapped.
	got, err = r.CommonSuperclass("animals/Puppy", "animals/Animal")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != "animals/Animal" {
		t.Errorf("reversed ancestor merge: got %q, want %q", got, "animals/Animal")
	}
}

func TestCommonSuperclassSiblings(t *testing.T) {
	r := newTestResolver()
	got, err := r.CommonSuperclass("animals/Dog", "animals/Cat")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != "animals/Animal" {
		t.Errorf("sibling merge: got %q, want %q", got, "animals/Animal")
	}
}

func TestCommonSuperclassUnrelated(t *testing.T) {
	r := newTestResolver()
	got, err := r.CommonSuperclass("animals/Puppy", "tools/Hammer")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != Root {
		t.Errorf("unrelated merge: got %q, want %q", got, Root)
	}
}

func TestCommonSuperclassUnknownClass(t *testing.T) {
	r := newTestResolver()
	_, err := r.CommonSuperclass("animals/Dog", "missing/Class")
	if err == nil {
		t.Fatal("merge with unregistered class did not fail")
	}
	if !errors.Is(err, ErrUnknownClass) {
		t.Errorf("error: got %v, want ErrUnknownClass", err)
	}
}

func TestAddClassReplacesEarlierRegistration(t *testing.T) {
	r := newTestResolver()
	r.AddClass("animals/Cat", "animals/Dog")
	got, err := r.CommonSuperclass("animals/Cat", "animals/Puppy")
	if err != nil {
		t.Fatalf("CommonSuperclass failed: %v", err)
	}
	if got != "animals/Dog" {
		t.Errorf("merge after re-registration: got %q, want %q", got, "animals/Dog")
	}
}
