package classfile

// ---------------------------------------------------------------------------
// Bootstrap method table
// ---------------------------------------------------------------------------

// BootstrapMethodCount returns the number of entries in the bootstrap
// method table.
func (t *SymbolTable) BootstrapMethodCount() int {
	return t.bootstrapCount
}

// InternInvokeDynamic interns an invokedynamic constant and returns its pool
// index. The bootstrap entry (handle plus static arguments) is first
// serialized speculatively at the end of the bootstrap method buffer and
// compared by raw byte range against existing entries with the same rolling
// hash; on a match the speculative bytes are rolled back and the existing
// bootstrap index is reused. The invokedynamic constant itself is then
// interned separately, keyed by (name, descriptor, bootstrap index), so call
// sites with identical bootstrap data but different name/descriptor share
// the bootstrap entry while remaining distinct constants.
func (t *SymbolTable) InternInvokeDynamic(name, desc string, bootstrap Handle, args ...any) (int, error) {
	if t.bootstrapMethods == nil {
		t.bootstrapMethods = NewByteVector()
	}
	bv := t.bootstrapMethods
	position := bv.Len()

	hash := handleHash(bootstrap)
	bv.PutShort(t.InternMethodHandle(bootstrap.Kind, bootstrap.Owner, bootstrap.Name, bootstrap.Desc))
	bv.PutShort(len(args))

	for _, arg := range args {
		hash ^= constHash(arg)
		index, err := t.InternConstant(arg)
		if err != nil {
			bv.Truncate(position)
			return 0, err
		}
		bv.PutShort(index)
	}

	// The entry encodes its own argument count, so equal byte ranges imply
	// equal lengths.
	data := bv.Data()
	length := (1 + 1 + len(args)) * 2
	h := maskHash(hash)

	entry := t.items[h%uint32(len(t.items))]
candidates:
	for entry != nil {
		if entry.tag != tagBootstrap || entry.hash != h {
			entry = entry.next
			continue
		}
		existing := int(entry.intVal)
		for i := 0; i < length; i++ {
			if data[position+i] != data[existing+i] {
				entry = entry.next
				continue candidates
			}
		}
		break
	}

	var bootstrapIndex int
	if entry != nil {
		bootstrapIndex = entry.index
		bv.Truncate(position)
	} else {
		bootstrapIndex = t.bootstrapCount
		t.bootstrapCount++
		t.put(&Symbol{index: bootstrapIndex, tag: tagBootstrap, intVal: int32(position), hash: h})
	}

	key := indyKey(name, desc, bootstrapIndex)
	return t.intern(&key, false, func() {
		t.put122(TagInvokeDynamic, bootstrapIndex, t.InternNameAndType(name, desc))
	}).index, nil
}
