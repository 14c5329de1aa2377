// Package hierarchy answers common-superclass queries over JVM internal
// class names from an in-memory superclass registry.
package hierarchy

import (
	"errors"
	"fmt"
)

// Root is the internal name of the universal root class.
const Root = "java/lang/Object"

// ErrUnknownClass indicates a class name with no registered superclass.
var ErrUnknownClass = errors.New("unknown class")

// Resolver maps internal class names to their immediate superclass. Classes
// are registered with AddClass before any query that needs to walk through
// them; the root class is always known.
type Resolver struct {
	supers map[string]string
}

// NewResolver creates a resolver knowing only the root class.
func NewResolver() *Resolver {
	return &Resolver{supers: make(map[string]string)}
}

// AddClass registers the immediate superclass of a class, replacing any
// earlier registration.
func (r *Resolver) AddClass(name, superName string) {
	r.supers[name] = superName
}

// superclass returns the immediate superclass of name. The root class has
// none and is never asked for one.
func (r *Resolver) superclass(name string) (string, error) {
	super, ok := r.supers[name]
	if !ok {
		return "", fmt.Errorf("hierarchy: %w: %s", ErrUnknownClass, name)
	}
	return super, nil
}

// isSuperclassOf reports whether candidate is name itself or one of its
// transitive superclasses.
func (r *Resolver) isSuperclassOf(candidate, name string) (bool, error) {
	for current := name; ; {
		if current == candidate {
			return true, nil
		}
		if current == Root {
			return false, nil
		}
		super, err := r.superclass(current)
		if err != nil {
			return false, err
		}
		current = super
	}
}

// CommonSuperclass returns the nearest class that is a superclass of (or
// identical to) both a and b. Identical names are their own answer; if
// either side is the root, the answer is the root. Otherwise a's chain is
// ascended one class at a time until an ancestor of b is found; the walk
// always terminates at the root. Any unregistered class encountered along
// the way is an error wrapping ErrUnknownClass.
func (r *Resolver) CommonSuperclass(a, b string) (string, error) {
	if a == b {
		return a, nil
	}
	if a == Root || b == Root {
		return Root, nil
	}
	if ok, err := r.isSuperclassOf(a, b); err != nil {
		return "", err
	} else if ok {
		return a, nil
	}
	if ok, err := r.isSuperclassOf(b, a); err != nil {
		return "", err
	} else if ok {
		return b, nil
	}
	current := a
	for {
		super, err := r.superclass(current)
		if err != nil {
			return "", err
		}
		current = super
		if current == Root {
			return Root, nil
		}
		ok, err := r.isSuperclassOf(current, b)
		if err != nil {
			return "", err
		}
		if ok {
			return current, nil
		}
	}
}
