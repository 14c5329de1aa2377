package classfile

// ---------------------------------------------------------------------------
// MethodWriter: method_info encoder
// ---------------------------------------------------------------------------

// MethodWriter encodes one method declaration. The method body is produced
// externally and attached with SetCode; this writer only wraps it in a Code
// attribute and interns the references the surrounding structure needs.
// Methods without a body (abstract, native) carry no Code attribute.
type MethodWriter struct {
	cw *ClassWriter

	access         int
	nameIndex      int
	descIndex      int
	signatureIndex int

	// exceptions holds the class indices of the declared thrown types.
	exceptions []int

	maxStack  int
	maxLocals int
	code      []byte

	anns []*AnnotationWriter
}

func newMethodWriter(cw *ClassWriter, access int, name, desc, signature string, exceptions []string) *MethodWriter {
	st := cw.symtab
	mw := &MethodWriter{
		cw:        cw,
		access:    access,
		nameIndex: st.InternUTF8(name),
		descIndex: st.InternUTF8(desc),
	}
	if signature != "" {
		mw.signatureIndex = st.InternUTF8(signature)
	}
	for _, e := range exceptions {
		mw.exceptions = append(mw.exceptions, st.InternClass(e))
	}
	return mw
}

// SetCode attaches an externally encoded method body. The code slice is not
// copied; the caller must not mutate it afterwards. References inside the
// body must already have been interned through the writer's symbol table.
func (mw *MethodWriter) SetCode(maxStack, maxLocals int, code []byte) {
	mw.maxStack = maxStack
	mw.maxLocals = maxLocals
	mw.code = code
}

// VisitAnnotation starts a runtime-visible annotation on this method.
func (mw *MethodWriter) VisitAnnotation(desc string) *AnnotationWriter {
	aw := newAnnotationWriter(mw.cw.symtab, desc)
	mw.anns = append(mw.anns, aw)
	return aw
}

// size returns the exact byte size of this method_info structure, interning
// the UTF8 name of every attribute it will emit.
func (mw *MethodWriter) size() int {
	st := mw.cw.symtab
	size := 8
	if mw.code != nil {
		st.InternUTF8("Code")
		size += 18 + len(mw.code)
	}
	if len(mw.exceptions) > 0 {
		st.InternUTF8("Exceptions")
		size += 8 + 2*len(mw.exceptions)
	}
	if mw.cw.needsSyntheticAttribute(mw.access) {
		st.InternUTF8("Synthetic")
		size += 6
	}
	if mw.access&AccDeprecated != 0 {
		st.InternUTF8("Deprecated")
		size += 6
	}
	if mw.signatureIndex != 0 {
		st.InternUTF8("Signature")
		size += 8
	}
	if len(mw.anns) > 0 {
		st.InternUTF8("RuntimeVisibleAnnotations")
		size += 8 + annotationsSize(mw.anns)
	}
	return size
}

// put writes the method_info structure.
func (mw *MethodWriter) put(out *ByteVector) {
	st := mw.cw.symtab
	out.PutShort(mw.access &^ pseudoFlagMask(mw.access))
	out.PutShort(mw.nameIndex).PutShort(mw.descIndex)

	attributeCount := 0
	if mw.code != nil {
		attributeCount++
	}
	if len(mw.exceptions) > 0 {
		attributeCount++
	}
	if mw.cw.needsSyntheticAttribute(mw.access) {
		attributeCount++
	}
	if mw.access&AccDeprecated != 0 {
		attributeCount++
	}
	if mw.signatureIndex != 0 {
		attributeCount++
	}
	if len(mw.anns) > 0 {
		attributeCount++
	}
	out.PutShort(attributeCount)

	if mw.code != nil {
		out.PutShort(st.InternUTF8("Code"))
		out.PutInt(uint32(12 + len(mw.code)))
		out.PutShort(mw.maxStack).PutShort(mw.maxLocals)
		out.PutInt(uint32(len(mw.code))).PutBytes(mw.code)
		out.PutShort(0) // exception table length
		out.PutShort(0) // code attribute count
	}
	if len(mw.exceptions) > 0 {
		out.PutShort(st.InternUTF8("Exceptions"))
		out.PutInt(uint32(2 + 2*len(mw.exceptions)))
		out.PutShort(len(mw.exceptions))
		for _, e := range mw.exceptions {
			out.PutShort(e)
		}
	}
	if mw.cw.needsSyntheticAttribute(mw.access) {
		out.PutShort(st.InternUTF8("Synthetic")).PutInt(0)
	}
	if mw.access&AccDeprecated != 0 {
		out.PutShort(st.InternUTF8("Deprecated")).PutInt(0)
	}
	if mw.signatureIndex != 0 {
		out.PutShort(st.InternUTF8("Signature"))
		out.PutInt(2).PutShort(mw.signatureIndex)
	}
	if len(mw.anns) > 0 {
		putAnnotations(st, out, mw.anns)
	}
}
