package classfile

// ---------------------------------------------------------------------------
// FieldWriter: field_info encoder
// ---------------------------------------------------------------------------

// FieldWriter encodes one field declaration. It interns its name,
// descriptor, optional signature and optional constant value into the
// owning writer's symbol table at declaration time and self-reports its
// exact emitted size during the sizing pass.
type FieldWriter struct {
	cw *ClassWriter

	access         int
	nameIndex      int
	descIndex      int
	signatureIndex int

	// valueIndex is the ConstantValue pool index, 0 if none.
	valueIndex int

	anns []*AnnotationWriter
}

func newFieldWriter(cw *ClassWriter, access int, name, desc, signature string, value any) (*FieldWriter, error) {
	st := cw.symtab
	fw := &FieldWriter{
		cw:        cw,
		access:    access,
		nameIndex: st.InternUTF8(name),
		descIndex: st.InternUTF8(desc),
	}
	if signature != "" {
		fw.signatureIndex = st.InternUTF8(signature)
	}
	if value != nil {
		index, err := st.InternConstant(value)
		if err != nil {
			return nil, err
		}
		fw.valueIndex = index
	}
	return fw, nil
}

// VisitAnnotation starts a runtime-visible annotation on this field.
func (fw *FieldWriter) VisitAnnotation(desc string) *AnnotationWriter {
	aw := newAnnotationWriter(fw.cw.symtab, desc)
	fw.anns = append(fw.anns, aw)
	return aw
}

// size returns the exact byte size of this field_info structure, interning
// the UTF8 name of every attribute it will emit.
func (fw *FieldWriter) size() int {
	st := fw.cw.symtab
	size := 8
	if fw.valueIndex != 0 {
		st.InternUTF8("ConstantValue")
		size += 8
	}
	if fw.cw.needsSyntheticAttribute(fw.access) {
		st.InternUTF8("Synthetic")
		size += 6
	}
	if fw.access&AccDeprecated != 0 {
		st.InternUTF8("Deprecated")
		size += 6
	}
	if fw.signatureIndex != 0 {
		st.InternUTF8("Signature")
		size += 8
	}
	if len(fw.anns) > 0 {
		st.InternUTF8("RuntimeVisibleAnnotations")
		size += 8 + annotationsSize(fw.anns)
	}
	return size
}

// put writes the field_info structure.
func (fw *FieldWriter) put(out *ByteVector) {
	st := fw.cw.symtab
	out.PutShort(fw.access &^ pseudoFlagMask(fw.access))
	out.PutShort(fw.nameIndex).PutShort(fw.descIndex)

	attributeCount := 0
	if fw.valueIndex != 0 {
		attributeCount++
	}
	if fw.cw.needsSyntheticAttribute(fw.access) {
		attributeCount++
	}
	if fw.access&AccDeprecated != 0 {
		attributeCount++
	}
	if fw.signatureIndex != 0 {
		attributeCount++
	}
	if len(fw.anns) > 0 {
		attributeCount++
	}
	out.PutShort(attributeCount)

	if fw.valueIndex != 0 {
		out.PutShort(st.InternUTF8("ConstantValue"))
		out.PutInt(2).PutShort(fw.valueIndex)
	}
	if fw.cw.needsSyntheticAttribute(fw.access) {
		out.PutShort(st.InternUTF8("Synthetic")).PutInt(0)
	}
	if fw.access&AccDeprecated != 0 {
		out.PutShort(st.InternUTF8("Deprecated")).PutInt(0)
	}
	if fw.signatureIndex != 0 {
		out.PutShort(st.InternUTF8("Signature"))
		out.PutInt(2).PutShort(fw.signatureIndex)
	}
	if len(fw.anns) > 0 {
		putAnnotations(st, out, fw.anns)
	}
}
