package classfile

import (
	"errors"
	"fmt"
)

// ErrConstantPoolOverflow indicates the constant pool needs more than 65535
// entries. It is detected at image-emission time and is fatal: no partial
// image is produced and the writer is unusable afterwards.
var ErrConstantPoolOverflow = errors.New("classfile: constant pool over 65535 entries")

// OversizedImageError indicates a 16-bit-bounded count (interfaces, fields,
// methods) overflowed. Fatal, same policy as ErrConstantPoolOverflow.
type OversizedImageError struct {
	Section string
	Count   int
}

func (e *OversizedImageError) Error() string {
	return fmt.Sprintf("classfile: %s count %d exceeds 65535", e.Section, e.Count)
}

// UnsupportedConstantError indicates a value passed to InternConstant whose
// runtime kind is not one of the recognized literal kinds.
type UnsupportedConstantError struct {
	Value any
}

func (e *UnsupportedConstantError) Error() string {
	return fmt.Sprintf("classfile: unsupported constant kind %T (%v)", e.Value, e.Value)
}
