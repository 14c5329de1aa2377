package classfile

// ---------------------------------------------------------------------------
// ClassWriter: declaration events and two-pass emission
// ---------------------------------------------------------------------------

// ClassWriter accumulates class-level declaration events and assembles the
// final class file image. One writer produces one image: after ToBytes
// fails the writer is unusable, and a fresh writer is needed per class.
type ClassWriter struct {
	symtab *SymbolTable

	version uint32
	access  int

	nameIndex int
	thisName  string

	signatureIndex int
	superIndex     int
	superName      string

	interfaces []int

	sourceFileIndex int
	sourceDebug     *ByteVector

	enclosingOwnerIndex  int
	enclosingMethodIndex int

	anns []*AnnotationWriter

	innerClasses    *ByteVector
	innerClassCount int

	fields  []*FieldWriter
	methods []*MethodWriter
}

// NewClassWriter creates a writer for one class file image. The resolver
// answers common-superclass queries during frame merging and may be nil if
// MergeTypes is never used.
func NewClassWriter(resolver HierarchyResolver) *ClassWriter {
	return &ClassWriter{symtab: NewSymbolTable(resolver)}
}

// SymbolTable returns the writer's constant pool, for field/method body
// encoders that intern their own references.
func (cw *ClassWriter) SymbolTable() *SymbolTable {
	return cw.symtab
}

// ClassName returns the internal name declared by Visit.
func (cw *ClassWriter) ClassName() string {
	return cw.thisName
}

// SuperName returns the superclass internal name declared by Visit, or "".
func (cw *ClassWriter) SuperName() string {
	return cw.superName
}

// Version returns the minor<<16|major version word declared by Visit.
func (cw *ClassWriter) Version() uint32 {
	return cw.version
}

// AccessFlags returns the declared access flags, including pseudo flags.
func (cw *ClassWriter) AccessFlags() int {
	return cw.access
}

// FieldCount returns the number of declared fields.
func (cw *ClassWriter) FieldCount() int {
	return len(cw.fields)
}

// MethodCount returns the number of declared methods.
func (cw *ClassWriter) MethodCount() int {
	return len(cw.methods)
}

// ---------------------------------------------------------------------------
// Declaration events
// ---------------------------------------------------------------------------

// Visit declares the class header. superName is "" only for the root class;
// when a resolver with a registration side is configured, the in-progress
// class's supertype is registered out of band so later hierarchy walks can
// see it without resolving the unfinished class.
func (cw *ClassWriter) Visit(version uint32, access int, name, signature, superName string, interfaces []string) {
	st := cw.symtab
	cw.version = version
	cw.access = access
	cw.nameIndex = st.InternClass(name)
	cw.thisName = name
	if signature != "" {
		cw.signatureIndex = st.InternUTF8(signature)
	}
	cw.superName = superName
	if superName != "" {
		cw.superIndex = st.InternClass(superName)
	}
	for _, itf := range interfaces {
		cw.interfaces = append(cw.interfaces, st.InternClass(itf))
	}
	if superName != "" {
		if reg, ok := st.resolver.(SuperclassRegistry); ok {
			reg.AddClass(name, superName)
		}
	}
}

// VisitSource declares the source file name and optional debug extension.
func (cw *ClassWriter) VisitSource(file, debug string) {
	if file != "" {
		cw.sourceFileIndex = cw.symtab.InternUTF8(file)
	}
	if debug != "" {
		cw.sourceDebug = NewByteVector().putModifiedUTF8(debug)
	}
}

// VisitOuterClass declares the enclosing class and, for classes declared
// inside a method body, the enclosing method.
func (cw *ClassWriter) VisitOuterClass(owner, name, desc string) {
	cw.enclosingOwnerIndex = cw.symtab.InternClass(owner)
	if name != "" && desc != "" {
		cw.enclosingMethodIndex = cw.symtab.InternNameAndType(name, desc)
	}
}

// VisitAnnotation starts a runtime-visible annotation on the class.
func (cw *ClassWriter) VisitAnnotation(desc string) *AnnotationWriter {
	aw := newAnnotationWriter(cw.symtab, desc)
	cw.anns = append(cw.anns, aw)
	return aw
}

// VisitInnerClass records an inner-class table entry. Each referenced class
// must have exactly one entry; duplicates are suppressed in O(1) by keeping
// the entry number (plus one) in the Class symbol's scratch int slot, which
// is unused for class entries and does not affect hashing or equality.
func (cw *ClassWriter) VisitInnerClass(name, outerName, innerName string, access int) {
	st := cw.symtab
	if cw.innerClasses == nil {
		cw.innerClasses = NewByteVector()
	}
	nameSym := st.internClassSymbol(name)
	if nameSym.intVal != 0 {
		return
	}
	cw.innerClassCount++
	cw.innerClasses.PutShort(nameSym.index)
	if outerName != "" {
		cw.innerClasses.PutShort(st.InternClass(outerName))
	} else {
		cw.innerClasses.PutShort(0)
	}
	if innerName != "" {
		cw.innerClasses.PutShort(st.InternUTF8(innerName))
	} else {
		cw.innerClasses.PutShort(0)
	}
	cw.innerClasses.PutShort(access)
	nameSym.intVal = int32(cw.innerClassCount)
}

// VisitField declares a field and returns its writer. The declaration fails
// only if the initial constant value has an unsupported kind.
func (cw *ClassWriter) VisitField(access int, name, desc, signature string, value any) (*FieldWriter, error) {
	fw, err := newFieldWriter(cw, access, name, desc, signature, value)
	if err != nil {
		return nil, err
	}
	cw.fields = append(cw.fields, fw)
	return fw, nil
}

// VisitMethod declares a method and returns its writer.
func (cw *ClassWriter) VisitMethod(access int, name, desc, signature string, exceptions []string) *MethodWriter {
	mw := newMethodWriter(cw, access, name, desc, signature, exceptions)
	cw.methods = append(cw.methods, mw)
	return mw
}

// ---------------------------------------------------------------------------
// Pseudo-flag translation
// ---------------------------------------------------------------------------

// pseudoFlagMask returns the bits to clear from emitted access flags: both
// pseudo flags, plus the real synthetic flag when the synthetic-attribute
// pseudo flag demands the legacy attribute form instead.
func pseudoFlagMask(access int) int {
	return AccDeprecated | AccSyntheticAttribute | ((access & AccSyntheticAttribute) / toAccSynthetic)
}

// needsSyntheticAttribute reports whether an element with the given flags
// must carry a legacy Synthetic attribute: always on pre-Java-5 versions,
// or when explicitly forced by the pseudo flag.
func (cw *ClassWriter) needsSyntheticAttribute(access int) bool {
	if access&AccSynthetic == 0 {
		return false
	}
	return preJava5(cw.version) || access&AccSyntheticAttribute != 0
}

// ---------------------------------------------------------------------------
// Two-pass emission
// ---------------------------------------------------------------------------

// ToBytes computes the exact image size, then writes every section in the
// fixed class file order and returns the image. Oversized pools or section
// counts are fatal: no partial image is returned.
func (cw *ClassWriter) ToBytes() ([]byte, error) {
	st := cw.symtab
	if st.index > 0xFFFF {
		return nil, ErrConstantPoolOverflow
	}
	if len(cw.interfaces) > 0xFFFF {
		return nil, &OversizedImageError{Section: "interface", Count: len(cw.interfaces)}
	}
	if len(cw.fields) > 0xFFFF {
		return nil, &OversizedImageError{Section: "field", Count: len(cw.fields)}
	}
	if len(cw.methods) > 0xFFFF {
		return nil, &OversizedImageError{Section: "method", Count: len(cw.methods)}
	}

	// Pass 1: sum the exact byte size of every section, interning the UTF8
	// name of every attribute that will be emitted.
	size := 24 + 2*len(cw.interfaces)
	for _, fw := range cw.fields {
		size += fw.size()
	}
	for _, mw := range cw.methods {
		size += mw.size()
	}

	attributeCount := 0
	if st.bootstrapMethods != nil {
		attributeCount++
		size += 8 + st.bootstrapMethods.Len()
		st.InternUTF8("BootstrapMethods")
	}
	if cw.signatureIndex != 0 {
		attributeCount++
		size += 8
		st.InternUTF8("Signature")
	}
	if cw.sourceFileIndex != 0 {
		attributeCount++
		size += 8
		st.InternUTF8("SourceFile")
	}
	if cw.sourceDebug != nil {
		attributeCount++
		size += 6 + cw.sourceDebug.Len()
		st.InternUTF8("SourceDebugExtension")
	}
	if cw.enclosingOwnerIndex != 0 {
		attributeCount++
		size += 10
		st.InternUTF8("EnclosingMethod")
	}
	if cw.access&AccDeprecated != 0 {
		attributeCount++
		size += 6
		st.InternUTF8("Deprecated")
	}
	if cw.needsSyntheticAttribute(cw.access) {
		attributeCount++
		size += 6
		st.InternUTF8("Synthetic")
	}
	if cw.innerClasses != nil {
		attributeCount++
		size += 8 + cw.innerClasses.Len()
		st.InternUTF8("InnerClasses")
	}
	if len(cw.anns) > 0 {
		attributeCount++
		size += 8 + annotationsSize(cw.anns)
		st.InternUTF8("RuntimeVisibleAnnotations")
	}
	size += st.pool.Len()

	// Attribute-name interning above may itself have grown the pool past
	// the 16-bit index space.
	if st.index > 0xFFFF {
		return nil, ErrConstantPoolOverflow
	}

	// Pass 2: one output buffer of the exact size, sections in fixed order.
	out := NewByteVectorSize(size)
	out.PutInt(Magic).PutInt(cw.version)
	out.PutShort(st.index).PutByteVector(st.pool)
	out.PutShort(cw.access &^ pseudoFlagMask(cw.access))
	out.PutShort(cw.nameIndex).PutShort(cw.superIndex)

	out.PutShort(len(cw.interfaces))
	for _, itf := range cw.interfaces {
		out.PutShort(itf)
	}

	out.PutShort(len(cw.fields))
	for _, fw := range cw.fields {
		fw.put(out)
	}

	out.PutShort(len(cw.methods))
	for _, mw := range cw.methods {
		mw.put(out)
	}

	out.PutShort(attributeCount)

	// BootstrapMethods goes first so readers that copy it can stop early.
	if st.bootstrapMethods != nil {
		out.PutShort(st.InternUTF8("BootstrapMethods"))
		out.PutInt(uint32(2 + st.bootstrapMethods.Len())).PutShort(st.bootstrapCount)
		out.PutByteVector(st.bootstrapMethods)
	}
	if cw.signatureIndex != 0 {
		out.PutShort(st.InternUTF8("Signature"))
		out.PutInt(2).PutShort(cw.signatureIndex)
	}
	if cw.sourceFileIndex != 0 {
		out.PutShort(st.InternUTF8("SourceFile"))
		out.PutInt(2).PutShort(cw.sourceFileIndex)
	}
	if cw.sourceDebug != nil {
		out.PutShort(st.InternUTF8("SourceDebugExtension"))
		out.PutInt(uint32(cw.sourceDebug.Len()))
		out.PutByteVector(cw.sourceDebug)
	}
	if cw.enclosingOwnerIndex != 0 {
		out.PutShort(st.InternUTF8("EnclosingMethod")).PutInt(4)
		out.PutShort(cw.enclosingOwnerIndex).PutShort(cw.enclosingMethodIndex)
	}
	if cw.access&AccDeprecated != 0 {
		out.PutShort(st.InternUTF8("Deprecated")).PutInt(0)
	}
	if cw.needsSyntheticAttribute(cw.access) {
		out.PutShort(st.InternUTF8("Synthetic")).PutInt(0)
	}
	if cw.innerClasses != nil {
		out.PutShort(st.InternUTF8("InnerClasses"))
		out.PutInt(uint32(2 + cw.innerClasses.Len())).PutShort(cw.innerClassCount)
		out.PutByteVector(cw.innerClasses)
	}
	if len(cw.anns) > 0 {
		putAnnotations(st, out, cw.anns)
	}

	return out.Data(), nil
}
