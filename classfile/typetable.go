package classfile

import "fmt"

// ---------------------------------------------------------------------------
// Type table: frame-merge cache
// ---------------------------------------------------------------------------

// HierarchyResolver answers common-ancestor queries over internal class
// names. Implementations must handle self-identity, fall back to the
// universal root type when either side already is the root, and must not
// require the in-progress class to be resolvable through normal lookup (its
// supertype relationship is supplied out of band before any walk runs).
type HierarchyResolver interface {
	CommonSuperclass(a, b string) (string, error)
}

// SuperclassRegistry is the optional out-of-band registration side of a
// HierarchyResolver. The emitter registers the in-progress class's supertype
// through it at declaration time, since the class cannot be looked up
// normally while it is still being built.
type SuperclassRegistry interface {
	AddClass(name, superName string)
}

// typeCount returns the number of type table entries.
func (t *SymbolTable) typeCount() int {
	if t.typeTable == nil {
		return 0
	}
	return len(t.typeTable) - 1
}

// TypeName returns the internal name stored at the given type table index.
// Panics if the index was never assigned.
func (t *SymbolTable) TypeName(index int) string {
	if t.typeTable == nil || index < 1 || index >= len(t.typeTable) {
		panic(fmt.Sprintf("classfile: type table index %d out of range", index))
	}
	return t.typeTable[index].strVal1
}

// addTypeSymbol inserts a new type table entry for the key and returns it.
// Type table indices are 1-based and independent of the constant pool's
// index space.
func (t *SymbolTable) addTypeSymbol(key *Symbol) *Symbol {
	if t.typeTable == nil {
		t.typeTable = make([]*Symbol, 1, 16)
	}
	s := &Symbol{}
	*s = *key
	s.index = len(t.typeTable)
	t.typeTable = append(t.typeTable, s)
	t.put(s)
	return s
}

// AddType registers an internal name in the type table, deduplicating by
// name alone, and returns its type table index.
func (t *SymbolTable) AddType(name string) int {
	key := stringKey(tagTypeNormal, name)
	if s := t.get(&key); s != nil {
		return s.index
	}
	return t.addTypeSymbol(&key).index
}

// AddUninitializedType registers an uninitialized type, deduplicating by the
// (name, creation offset) pair, and returns its type table index. Distinct
// creation sites of the same type name must remain distinguishable.
func (t *SymbolTable) AddUninitializedType(name string, offset int) int {
	key := uninitTypeKey(name, offset)
	if s := t.get(&key); s != nil {
		return s.index
	}
	return t.addTypeSymbol(&key).index
}

// MergeTypes returns the type table index of the nearest common ancestor of
// the two registered types, memoizing the answer. The cache key packs the
// operand indices positionally, so the memo is order-sensitive. On a miss
// the configured HierarchyResolver is consulted.
func (t *SymbolTable) MergeTypes(a, b int) (int, error) {
	key := mergedTypeKey(a, b)
	if s := t.get(&key); s != nil {
		return int(s.intVal), nil
	}
	if t.resolver == nil {
		return 0, fmt.Errorf("classfile: no hierarchy resolver configured")
	}
	nameA := t.TypeName(a)
	nameB := t.TypeName(b)
	common, err := t.resolver.CommonSuperclass(nameA, nameB)
	if err != nil {
		return 0, fmt.Errorf("classfile: merging %s and %s: %w", nameA, nameB, err)
	}
	merged := t.AddType(common)
	key.intVal = int32(merged)
	s := &Symbol{}
	*s = key
	t.put(s)
	return merged, nil
}
