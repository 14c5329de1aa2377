package classfile

import "math"

// ---------------------------------------------------------------------------
// Symbol: one deduplicated entry in the shared hash space
// ---------------------------------------------------------------------------

// Symbol is one entry in the SymbolTable's hash space: a constant pool
// entry, a type table entry, or a bootstrap method entry, distinguished by
// tag. Two symbols are the same entry iff their tag and payload compare
// equal. The index is assigned once at insertion and never reused; next is
// the collision chain link, a back-reference rather than an ownership edge.
type Symbol struct {
	// index is the pool index, type table index, or bootstrap method index,
	// depending on the tag.
	index int

	tag     int
	intVal  int32
	longVal int64
	strVal1 string
	strVal2 string
	strVal3 string

	// hash is the 31-bit hash of (tag, payload).
	hash uint32

	next *Symbol
}

// Index returns the symbol's stable index.
func (s *Symbol) Index() int {
	return s.index
}

// stringHash is a 31-multiplier byte hash over s. Hashes never reach the
// output image, so only determinism matters.
func stringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}
	return h
}

func maskHash(h int32) uint32 {
	return uint32(h) & 0x7FFFFFFF
}

// ---------------------------------------------------------------------------
// Lookup key constructors
// ---------------------------------------------------------------------------

// stringKey builds a lookup key for single-string symbols: UTF8, Class,
// String, MethodType and normal type entries.
func stringKey(tag int, v string) Symbol {
	return Symbol{tag: tag, strVal1: v, hash: maskHash(int32(tag) + stringHash(v))}
}

// nameTypeKey builds a lookup key for NameAndType entries.
func nameTypeKey(name, desc string) Symbol {
	return Symbol{
		tag:     TagNameAndType,
		strVal1: name,
		strVal2: desc,
		hash:    maskHash(int32(TagNameAndType) + stringHash(name)*stringHash(desc)),
	}
}

// refKey builds a lookup key for three-string symbols: field references,
// method references and method handles (tag tagHandleBase+kind).
func refKey(tag int, owner, name, desc string) Symbol {
	return Symbol{
		tag:     tag,
		strVal1: owner,
		strVal2: name,
		strVal3: desc,
		hash:    maskHash(int32(tag) + stringHash(owner)*stringHash(name)*stringHash(desc)),
	}
}

// intKey builds a lookup key for Integer and Float entries (Float payload is
// the raw bit pattern).
func intKey(tag int, v int32) Symbol {
	return Symbol{tag: tag, intVal: v, hash: maskHash(int32(tag) + v)}
}

// longKey builds a lookup key for Long and Double entries (Double payload is
// the raw bit pattern).
func longKey(tag int, v int64) Symbol {
	return Symbol{tag: tag, longVal: v, hash: maskHash(int32(tag) + int32(v))}
}

// uninitTypeKey builds a lookup key for uninitialized type entries. Distinct
// creation offsets of the same type name stay distinguishable: each offset
// represents a different not-yet-initialized value.
func uninitTypeKey(name string, offset int) Symbol {
	return Symbol{
		tag:     tagTypeUninit,
		strVal1: name,
		intVal:  int32(offset),
		hash:    maskHash(int32(tagTypeUninit) + stringHash(name) + int32(offset)),
	}
}

// mergedTypeKey builds a lookup key for merged type entries. The key packs
// the two type table indices positionally, so the cache is order-sensitive:
// merging (a, b) and (b, a) occupy separate entries.
func mergedTypeKey(a, b int) Symbol {
	return Symbol{
		tag:     tagTypeMerged,
		longVal: int64(a) | int64(b)<<32,
		hash:    maskHash(int32(tagTypeMerged) + int32(a) + int32(b)),
	}
}

// indyKey builds a lookup key for InvokeDynamic entries. Two call sites with
// identical bootstrap data but different name/descriptor remain distinct
// constants; the bootstrap index is part of the payload.
func indyKey(name, desc string, bootstrapIndex int) Symbol {
	return Symbol{
		tag:     TagInvokeDynamic,
		strVal1: name,
		strVal2: desc,
		longVal: int64(bootstrapIndex),
		hash:    maskHash(int32(TagInvokeDynamic) + int32(bootstrapIndex)*stringHash(name)*stringHash(desc)),
	}
}

// equals reports whether s and the lookup key k carry the same payload.
// The caller has already matched the tags.
func (s *Symbol) equals(k *Symbol) bool {
	switch s.tag {
	case TagUTF8, TagClass, TagString, TagMethodType, tagTypeNormal:
		return s.strVal1 == k.strVal1
	case TagInteger, TagFloat:
		return s.intVal == k.intVal
	case TagLong, TagDouble:
		return s.longVal == k.longVal
	case tagTypeUninit:
		return s.intVal == k.intVal && s.strVal1 == k.strVal1
	case TagNameAndType:
		return s.strVal1 == k.strVal1 && s.strVal2 == k.strVal2
	case tagTypeMerged:
		return s.longVal == k.longVal
	case TagInvokeDynamic:
		return s.longVal == k.longVal && s.strVal1 == k.strVal1 && s.strVal2 == k.strVal2
	default:
		// Field/method references and method handles.
		return s.strVal1 == k.strVal1 && s.strVal2 == k.strVal2 && s.strVal3 == k.strVal3
	}
}

// ---------------------------------------------------------------------------
// Constant value hashing for bootstrap entries
// ---------------------------------------------------------------------------

// handleHash is the hash a Handle contributes to a bootstrap entry's rolling
// hash.
func handleHash(h Handle) int32 {
	return int32(h.Kind) + stringHash(h.Owner)*stringHash(h.Name)*stringHash(h.Desc)
}

// constHash returns the hash a bootstrap argument contributes to its entry's
// rolling hash. Values InternConstant rejects hash to zero; the subsequent
// intern call reports the error.
func constHash(v any) int32 {
	switch c := v.(type) {
	case bool:
		if c {
			return 1
		}
		return 0
	case int8:
		return int32(c)
	case int16:
		return int32(c)
	case int32:
		return c
	case int:
		return int32(c)
	case int64:
		return int32(c ^ c>>32)
	case float32:
		return int32(math.Float32bits(c))
	case float64:
		bits := int64(math.Float64bits(c))
		return int32(bits ^ bits>>32)
	case string:
		return stringHash(c)
	case ClassConst:
		return stringHash(string(c))
	case MethodTypeConst:
		return stringHash(string(c))
	case Handle:
		return handleHash(c)
	default:
		return 0
	}
}
