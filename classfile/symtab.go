package classfile

import "math"

// ---------------------------------------------------------------------------
// SymbolTable: hash-consed constant pool
// ---------------------------------------------------------------------------

// Initial bucket count of the hash table. Growth goes to 2n+1 so the
// length stays odd and the modulo spreads the 31-bit hashes.
const initialBuckets = 256

// loadFactor is the occupancy threshold that triggers table growth.
const loadFactor = 0.75

// SymbolTable interns constants, symbolic references, type table entries
// and bootstrap method entries, assigning each a stable index. The pool
// ByteVector accumulates the serialized form of every constant pool entry
// as it is first interned; repeated identical input never touches it.
//
// A SymbolTable is scoped to one in-progress image and is not safe for
// concurrent use.
type SymbolTable struct {
	// pool holds the serialized constant pool entries, in index order.
	pool *ByteVector

	// items holds the hash table's bucket chains.
	items []*Symbol

	// threshold is the occupancy at which the table grows.
	threshold int

	// index is the index of the next constant pool entry. Long and Double
	// entries advance it by two, a quirk of the class file format that must
	// be reproduced for output compatibility.
	index int

	// typeTable maps type table indices (1-based) to their symbols.
	typeTable []*Symbol

	// bootstrapMethods holds the serialized bootstrap method entries;
	// bootstrapCount is the number of entries (also the next index).
	bootstrapMethods *ByteVector
	bootstrapCount   int

	// resolver answers common-superclass queries for MergeTypes.
	resolver HierarchyResolver
}

// NewSymbolTable creates an empty symbol table. The resolver may be nil if
// MergeTypes is never called.
func NewSymbolTable(resolver HierarchyResolver) *SymbolTable {
	return &SymbolTable{
		pool:      NewByteVector(),
		items:     make([]*Symbol, initialBuckets),
		threshold: int(loadFactor * initialBuckets),
		index:     1,
		resolver:  resolver,
	}
}

// PoolCount returns the constant pool count as it will appear in the image:
// one more than the highest assigned index slot.
func (t *SymbolTable) PoolCount() int {
	return t.index
}

// PoolLen returns the byte length of the serialized constant pool.
func (t *SymbolTable) PoolLen() int {
	return t.pool.Len()
}

// ---------------------------------------------------------------------------
// Hash table internals
// ---------------------------------------------------------------------------

// get returns the stored symbol equal to the lookup key, or nil.
func (t *SymbolTable) get(key *Symbol) *Symbol {
	s := t.items[key.hash%uint32(len(t.items))]
	for s != nil && (s.tag != key.tag || !s.equals(key)) {
		s = s.next
	}
	return s
}

// put inserts a symbol that is known not to be present, growing the table
// first if the occupancy threshold is exceeded. Growth rebuilds only the
// bucket index; the pool bytes are already written and never re-copied.
func (t *SymbolTable) put(s *Symbol) {
	if t.index+t.typeCount() > t.threshold {
		newItems := make([]*Symbol, 2*len(t.items)+1)
		for i := len(t.items) - 1; i >= 0; i-- {
			j := t.items[i]
			for j != nil {
				bucket := j.hash % uint32(len(newItems))
				next := j.next
				j.next = newItems[bucket]
				newItems[bucket] = j
				j = next
			}
		}
		t.items = newItems
		t.threshold = int(float64(len(newItems)) * loadFactor)
	}
	bucket := s.hash % uint32(len(t.items))
	s.next = t.items[bucket]
	t.items[bucket] = s
}

// intern returns the stored symbol for the key, inserting it as a new pool
// entry if absent. write appends the entry's serialized bytes and must only
// run on insertion. wide entries (Long, Double) consume two index slots.
func (t *SymbolTable) intern(key *Symbol, wide bool, write func()) *Symbol {
	if s := t.get(key); s != nil {
		return s
	}
	write()
	s := &Symbol{}
	*s = *key
	s.index = t.index
	if wide {
		t.index += 2
	} else {
		t.index++
	}
	t.put(s)
	return s
}

// put122 appends a tag byte and two u16 pool indices to the pool.
func (t *SymbolTable) put122(tag, s1, s2 int) {
	t.pool.Put12(tag, s1).PutShort(s2)
}

// put112 appends two bytes and one u16 pool index to the pool.
func (t *SymbolTable) put112(b1, b2, s int) {
	t.pool.Put11(b1, b2).PutShort(s)
}

// ---------------------------------------------------------------------------
// Intern operations
// ---------------------------------------------------------------------------

// InternUTF8 interns a modified UTF-8 string entry and returns its index.
func (t *SymbolTable) InternUTF8(value string) int {
	key := stringKey(TagUTF8, value)
	return t.intern(&key, false, func() {
		t.pool.PutByte(TagUTF8).PutUTF8(value)
	}).index
}

// InternClass interns a class reference entry for the given internal name
// and returns its index.
func (t *SymbolTable) InternClass(internalName string) int {
	return t.internClassSymbol(internalName).index
}

// internClassSymbol interns a class reference and returns the symbol itself.
// The emitter reuses the symbol's scratch int slot to suppress duplicate
// inner-class records in O(1).
func (t *SymbolTable) internClassSymbol(internalName string) *Symbol {
	key := stringKey(TagClass, internalName)
	return t.intern(&key, false, func() {
		t.pool.Put12(TagClass, t.InternUTF8(internalName))
	})
}

// InternString interns a string constant entry and returns its index.
func (t *SymbolTable) InternString(value string) int {
	key := stringKey(TagString, value)
	return t.intern(&key, false, func() {
		t.pool.Put12(TagString, t.InternUTF8(value))
	}).index
}

// InternInteger interns an integer constant entry and returns its index.
func (t *SymbolTable) InternInteger(value int32) int {
	key := intKey(TagInteger, value)
	return t.intern(&key, false, func() {
		t.pool.PutByte(TagInteger).PutInt(uint32(value))
	}).index
}

// InternFloat interns a float constant entry and returns its index.
// Equality is on the raw bit pattern, so distinct NaN payloads stay
// distinct.
func (t *SymbolTable) InternFloat(value float32) int {
	bits := math.Float32bits(value)
	key := intKey(TagFloat, int32(bits))
	return t.intern(&key, false, func() {
		t.pool.PutByte(TagFloat).PutInt(bits)
	}).index
}

// InternLong interns a long constant entry and returns its index. The entry
// occupies two consecutive index slots.
func (t *SymbolTable) InternLong(value int64) int {
	key := longKey(TagLong, value)
	return t.intern(&key, true, func() {
		t.pool.PutByte(TagLong).PutLong(uint64(value))
	}).index
}

// InternDouble interns a double constant entry and returns its index. The
// entry occupies two consecutive index slots; equality is on the raw bit
// pattern.
func (t *SymbolTable) InternDouble(value float64) int {
	bits := math.Float64bits(value)
	key := longKey(TagDouble, int64(bits))
	return t.intern(&key, true, func() {
		t.pool.PutByte(TagDouble).PutLong(bits)
	}).index
}

// InternNameAndType interns a name-and-type entry and returns its index.
func (t *SymbolTable) InternNameAndType(name, desc string) int {
	key := nameTypeKey(name, desc)
	return t.intern(&key, false, func() {
		t.put122(TagNameAndType, t.InternUTF8(name), t.InternUTF8(desc))
	}).index
}

// InternFieldRef interns a field reference entry and returns its index.
func (t *SymbolTable) InternFieldRef(owner, name, desc string) int {
	key := refKey(TagFieldref, owner, name, desc)
	return t.intern(&key, false, func() {
		t.put122(TagFieldref, t.InternClass(owner), t.InternNameAndType(name, desc))
	}).index
}

// InternMethodRef interns a method reference entry and returns its index.
// isInterface selects between Methodref and InterfaceMethodref.
func (t *SymbolTable) InternMethodRef(owner, name, desc string, isInterface bool) int {
	tag := TagMethodref
	if isInterface {
		tag = TagInterfaceMethodref
	}
	key := refKey(tag, owner, name, desc)
	return t.intern(&key, false, func() {
		t.put122(tag, t.InternClass(owner), t.InternNameAndType(name, desc))
	}).index
}

// InternMethodType interns a method type entry for the given descriptor and
// returns its index.
func (t *SymbolTable) InternMethodType(desc string) int {
	key := stringKey(TagMethodType, desc)
	return t.intern(&key, false, func() {
		t.pool.Put12(TagMethodType, t.InternUTF8(desc))
	}).index
}

// InternMethodHandle interns a method handle entry and returns its index.
// The nine reference kinds occupy nine distinct slots in the hash space, so
// a getfield and a putfield handle on the same field stay distinct.
func (t *SymbolTable) InternMethodHandle(kind int, owner, name, desc string) int {
	key := refKey(tagHandleBase+kind, owner, name, desc)
	return t.intern(&key, false, func() {
		var ref int
		if kind <= HPutStatic {
			ref = t.InternFieldRef(owner, name, desc)
		} else {
			ref = t.InternMethodRef(owner, name, desc, kind == HInvokeInterface)
		}
		t.put112(TagMethodHandle, kind, ref)
	}).index
}

// InternConstant classifies an arbitrary literal by its runtime kind and
// routes it to the specific intern operation. Integer-like values (bool,
// int8, int16, int32, int) become Integer entries; int64 a Long; float32 a
// Float; float64 a Double; string a String; ClassConst a Class;
// MethodTypeConst a MethodType; Handle a MethodHandle. Any other kind is an
// UnsupportedConstantError.
func (t *SymbolTable) InternConstant(value any) (int, error) {
	switch c := value.(type) {
	case bool:
		if c {
			return t.InternInteger(1), nil
		}
		return t.InternInteger(0), nil
	case int8:
		return t.InternInteger(int32(c)), nil
	case int16:
		return t.InternInteger(int32(c)), nil
	case int32:
		return t.InternInteger(c), nil
	case int:
		return t.InternInteger(int32(c)), nil
	case int64:
		return t.InternLong(c), nil
	case float32:
		return t.InternFloat(c), nil
	case float64:
		return t.InternDouble(c), nil
	case string:
		return t.InternString(c), nil
	case ClassConst:
		return t.InternClass(string(c)), nil
	case MethodTypeConst:
		return t.InternMethodType(string(c)), nil
	case Handle:
		return t.InternMethodHandle(c.Kind, c.Owner, c.Name, c.Desc), nil
	default:
		return 0, &UnsupportedConstantError{Value: value}
	}
}
