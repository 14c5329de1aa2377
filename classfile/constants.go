package classfile

// ---------------------------------------------------------------------------
// Class file format constants
// ---------------------------------------------------------------------------

// Magic is the four-byte signature at the start of every class file.
const Magic uint32 = 0xCAFEBABE

// Class file versions, encoded as minor<<16 | major the way the version
// field is written to the image ([minor:u16][major:u16] after the magic).
const (
	V1_1 uint32 = 3<<16 | 45
	V1_2 uint32 = 46
	V1_3 uint32 = 47
	V1_4 uint32 = 48
	V1_5 uint32 = 49
	V1_6 uint32 = 50
	V1_7 uint32 = 51
	V1_8 uint32 = 52
)

// Constant pool entry tags, per the published constant-kind table.
const (
	TagUTF8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagInvokeDynamic      = 18
)

// Internal-only symbol tags. These entries live in the same hash space as
// pool entries but are never written to the output image. Method handles
// are keyed as tagHandleBase+kind so the nine handle kinds occupy nine
// distinct tag values.
const (
	tagHandleBase = 20
	tagTypeNormal = 30
	tagTypeUninit = 31
	tagTypeMerged = 32
	tagBootstrap  = 33
)

// Method handle reference kinds.
const (
	HGetField         = 1
	HGetStatic        = 2
	HPutField         = 3
	HPutStatic        = 4
	HInvokeVirtual    = 5
	HInvokeStatic     = 6
	HInvokeSpecial    = 7
	HNewInvokeSpecial = 8
	HInvokeInterface  = 9
)

// ---------------------------------------------------------------------------
// Access flags
// ---------------------------------------------------------------------------

// Access flags for classes, fields and methods.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020
	AccSynchronized = 0x0020
	AccVolatile     = 0x0040
	AccBridge       = 0x0040
	AccVarargs      = 0x0080
	AccTransient    = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
)

// Pseudo access flags. These never appear in the emitted flags field; the
// emitter masks them out and translates them into the Deprecated and
// Synthetic attributes.
const (
	// AccDeprecated marks an element that must carry a Deprecated attribute.
	AccDeprecated = 0x20000

	// AccSyntheticAttribute forces a legacy Synthetic attribute even on
	// versions where the synthetic access flag alone would suffice.
	AccSyntheticAttribute = 0x40000
)

// Factor converting AccSyntheticAttribute back to AccSynthetic when masking
// the emitted flags.
const toAccSynthetic = AccSyntheticAttribute / AccSynthetic

// ---------------------------------------------------------------------------
// Instruction operand classification
// ---------------------------------------------------------------------------

// Instruction operand kinds, as reported by InstructionType. Method body
// encoders use these to size and copy instruction operands.
const (
	InsnNone        = 0  // no operand
	InsnSByte       = 1  // signed byte operand
	InsnShort       = 2  // signed short operand
	InsnVar         = 3  // local variable index operand
	InsnImplVar     = 4  // implicit local variable index
	InsnType        = 5  // class reference operand
	InsnFieldMeth   = 6  // field or method reference operand
	InsnItfMeth     = 7  // interface method reference operand
	InsnIndyMeth    = 8  // invokedynamic reference operand
	InsnLabel       = 9  // 2-byte branch offset operand
	InsnLabelWide   = 10 // 4-byte branch offset operand
	InsnLdc         = 11 // small constant pool index operand
	InsnLdcWide     = 12 // wide constant pool index operand
	InsnIinc        = 13 // iinc operands
	InsnTableSwitch = 14 // tableswitch operands
	InsnLookSwitch  = 15 // lookupswitch operands
	InsnMultiANew   = 16 // multianewarray operands
	InsnWide        = 17 // wide prefix
)

// insnTypes classifies every JVM opcode by operand kind, indexed by opcode.
var insnTypes = [220]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 11, 12,
	12, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 13, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 9, 9, 9, 9, 9, 9,
	9, 9, 9, 9, 9, 9, 9, 9, 9, 3, 14, 15, 0, 0, 0, 0, 0, 0, 6, 6,
	6, 6, 6, 6, 6, 7, 8, 5, 1, 5, 0, 0, 5, 5, 0, 0, 17, 16, 9, 9,
	10, 10, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
}

// InstructionType returns the operand kind of the given JVM opcode.
// Panics if the opcode is out of range.
func InstructionType(opcode int) int {
	return int(insnTypes[opcode])
}

// classMajor extracts the major version from a minor<<16|major version word.
func classMajor(version uint32) int {
	return int(version & 0xFFFF)
}

// preJava5 reports whether the given version predates the modern synthetic
// access flag, requiring the legacy Synthetic attribute instead.
func preJava5(version uint32) bool {
	return classMajor(version) < classMajor(V1_5)
}
