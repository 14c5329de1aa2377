package classfile

// ---------------------------------------------------------------------------
// AnnotationWriter: element_value encoding
// ---------------------------------------------------------------------------

// AnnotationWriter encodes one annotation's element-value pairs. Writers
// returned by VisitAnnotation/VisitArray on an existing writer share its
// buffer; each writer back-patches its own pair count at End. End must be
// called after the last value of a nested writer before its parent receives
// further values.
type AnnotationWriter struct {
	st *SymbolTable

	// named selects between named element-value pairs (annotations) and
	// unnamed values (array elements).
	named bool

	bv *ByteVector

	// countOffset is the position of the u16 count this writer patches.
	countOffset int
	count       int
}

// newAnnotationWriter starts a top-level annotation of the given type
// descriptor in a fresh buffer.
func newAnnotationWriter(st *SymbolTable, desc string) *AnnotationWriter {
	bv := NewByteVector()
	bv.PutShort(st.InternUTF8(desc))
	offset := bv.Len()
	bv.PutShort(0)
	return &AnnotationWriter{st: st, named: true, bv: bv, countOffset: offset}
}

// putName writes the element name (when in named mode) and counts the value.
func (aw *AnnotationWriter) putName(name string) {
	aw.count++
	if aw.named {
		aw.bv.PutShort(aw.st.InternUTF8(name))
	}
}

// Visit encodes a primitive, string or class constant element value.
// Unsupported kinds are an UnsupportedConstantError.
func (aw *AnnotationWriter) Visit(name string, value any) error {
	aw.putName(name)
	switch v := value.(type) {
	case bool:
		bit := int32(0)
		if v {
			bit = 1
		}
		aw.bv.Put12('Z', aw.st.InternInteger(bit))
	case int8:
		aw.bv.Put12('B', aw.st.InternInteger(int32(v)))
	case int16:
		aw.bv.Put12('S', aw.st.InternInteger(int32(v)))
	case int32:
		aw.bv.Put12('I', aw.st.InternInteger(v))
	case int:
		aw.bv.Put12('I', aw.st.InternInteger(int32(v)))
	case int64:
		aw.bv.Put12('J', aw.st.InternLong(v))
	case float32:
		aw.bv.Put12('F', aw.st.InternFloat(v))
	case float64:
		aw.bv.Put12('D', aw.st.InternDouble(v))
	case string:
		aw.bv.Put12('s', aw.st.InternUTF8(v))
	case ClassConst:
		aw.bv.Put12('c', aw.st.InternUTF8(string(v)))
	default:
		// Roll back the name and count so the writer stays consistent.
		aw.count--
		if aw.named {
			aw.bv.Truncate(aw.bv.Len() - 2)
		}
		return &UnsupportedConstantError{Value: value}
	}
	return nil
}

// VisitEnum encodes an enum element value: the enum type descriptor and the
// constant's name.
func (aw *AnnotationWriter) VisitEnum(name, desc, value string) {
	aw.putName(name)
	aw.bv.Put12('e', aw.st.InternUTF8(desc)).PutShort(aw.st.InternUTF8(value))
}

// VisitAnnotation starts a nested annotation element value and returns its
// writer. The nested writer shares this writer's buffer.
func (aw *AnnotationWriter) VisitAnnotation(name, desc string) *AnnotationWriter {
	aw.putName(name)
	aw.bv.Put12('@', aw.st.InternUTF8(desc))
	offset := aw.bv.Len()
	aw.bv.PutShort(0)
	return &AnnotationWriter{st: aw.st, named: true, bv: aw.bv, countOffset: offset}
}

// VisitArray starts an array element value and returns a writer for its
// unnamed elements.
func (aw *AnnotationWriter) VisitArray(name string) *AnnotationWriter {
	aw.putName(name)
	aw.bv.PutByte('[')
	offset := aw.bv.Len()
	aw.bv.PutShort(0)
	return &AnnotationWriter{st: aw.st, bv: aw.bv, countOffset: offset}
}

// End back-patches this writer's value count. The patch writes through the
// underlying data, not the append-only ByteVector API, mirroring how the
// reserved count slot was claimed.
func (aw *AnnotationWriter) End() {
	data := aw.bv.Data()
	data[aw.countOffset] = byte(aw.count >> 8)
	data[aw.countOffset+1] = byte(aw.count)
}

// ---------------------------------------------------------------------------
// Attribute-level helpers shared by class, field and method emission
// ---------------------------------------------------------------------------

// annotationsSize returns the byte size of the encoded annotations,
// excluding the attribute header and count.
func annotationsSize(anns []*AnnotationWriter) int {
	size := 0
	for _, a := range anns {
		size += a.bv.Len()
	}
	return size
}

// putAnnotations writes a RuntimeVisibleAnnotations attribute containing the
// given annotations, patching each top-level count first.
func putAnnotations(st *SymbolTable, out *ByteVector, anns []*AnnotationWriter) {
	out.PutShort(st.InternUTF8("RuntimeVisibleAnnotations"))
	out.PutInt(uint32(2 + annotationsSize(anns))).PutShort(len(anns))
	for _, a := range anns {
		a.End()
		out.PutByteVector(a.bv)
	}
}
