package classfile

// ---------------------------------------------------------------------------
// Constant wrapper types for the generic InternConstant dispatcher
// ---------------------------------------------------------------------------

// ClassConst is the internal name (or array/primitive descriptor) of a type
// literal, interned as a CONSTANT_Class entry.
type ClassConst string

// MethodTypeConst is a method descriptor literal, interned as a
// CONSTANT_MethodType entry.
type MethodTypeConst string

// Handle is a method handle literal: a reference kind plus the owner, name
// and descriptor of the referenced field or method. Interned as a
// CONSTANT_MethodHandle entry.
type Handle struct {
	Kind  int // one of the H* reference kinds
	Owner string
	Name  string
	Desc  string
}
