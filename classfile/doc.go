// Package classfile assembles JVM class file images from a sequence of
// declaration events, deduplicating every literal and symbolic reference
// into a single hash-consed constant pool.
//
// This package contains:
//   - ByteVector: append-only big-endian buffer with modified UTF-8 support
//   - SymbolTable: hash-consed constant pool, type table and bootstrap
//     method table sharing one bucket-chained hash space
//   - ClassWriter: declaration-event sink and two-pass binary emitter
//   - FieldWriter, MethodWriter, AnnotationWriter: per-member encoders that
//     intern their references into the shared SymbolTable
//
// A ClassWriter is exclusively owned by one in-progress image. It is not
// safe for concurrent use; the design assumes a single driver issuing a
// strictly ordered event sequence ending in ToBytes.
package classfile
