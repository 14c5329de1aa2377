package classfile

// ---------------------------------------------------------------------------
// ByteVector: append-only big-endian byte buffer
// ---------------------------------------------------------------------------

// ByteVector is a growable, append-only buffer of big-endian binary data.
// Previously written bytes are never modified through this API; the only
// non-append operation is Truncate, used to roll back a speculative
// bootstrap method entry.
//
// Put methods return the receiver so layout code can chain writes.
type ByteVector struct {
	data []byte
}

// NewByteVector creates an empty byte vector with a small initial capacity.
func NewByteVector() *ByteVector {
	return &ByteVector{data: make([]byte, 0, 64)}
}

// NewByteVectorSize creates an empty byte vector with the given capacity,
// so that a write of exactly that many bytes never reallocates.
func NewByteVectorSize(capacity int) *ByteVector {
	return &ByteVector{data: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (b *ByteVector) Len() int {
	return len(b.data)
}

// Data returns the underlying byte slice. The slice is only valid until the
// next write.
func (b *ByteVector) Data() []byte {
	return b.data
}

// Truncate discards all bytes at or after position n.
// Panics if n is negative or beyond the current length.
func (b *ByteVector) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("classfile: ByteVector truncate out of range")
	}
	b.data = b.data[:n]
}

// PutByte appends a single byte.
func (b *ByteVector) PutByte(v int) *ByteVector {
	b.data = append(b.data, byte(v))
	return b
}

// Put11 appends two bytes.
func (b *ByteVector) Put11(v1, v2 int) *ByteVector {
	b.data = append(b.data, byte(v1), byte(v2))
	return b
}

// PutShort appends an unsigned 16-bit value.
func (b *ByteVector) PutShort(v int) *ByteVector {
	b.data = append(b.data, byte(v>>8), byte(v))
	return b
}

// Put12 appends a byte followed by an unsigned 16-bit value.
func (b *ByteVector) Put12(v1, v2 int) *ByteVector {
	b.data = append(b.data, byte(v1), byte(v2>>8), byte(v2))
	return b
}

// PutInt appends an unsigned 32-bit value.
func (b *ByteVector) PutInt(v uint32) *ByteVector {
	b.data = append(b.data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return b
}

// PutLong appends an unsigned 64-bit value.
func (b *ByteVector) PutLong(v uint64) *ByteVector {
	b.data = append(b.data,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return b
}

// PutBytes appends a raw byte slice.
func (b *ByteVector) PutBytes(data []byte) *ByteVector {
	b.data = append(b.data, data...)
	return b
}

// PutByteVector appends the full contents of another byte vector.
func (b *ByteVector) PutByteVector(other *ByteVector) *ByteVector {
	b.data = append(b.data, other.data...)
	return b
}

// PutUTF8 appends a string in modified UTF-8 form with an unsigned 16-bit
// byte-length prefix. The NUL character and supplementary code points use
// the two-byte and surrogate-pair encodings the class file format requires.
// Panics if the encoded form exceeds 65535 bytes (a contract violation:
// such literals cannot appear in a well-formed image).
func (b *ByteVector) PutUTF8(s string) *ByteVector {
	n := modifiedUTF8Length(s)
	if n > 0xFFFF {
		panic("classfile: UTF8 literal longer than 65535 bytes")
	}
	b.PutShort(n)
	return b.putModifiedUTF8(s)
}

// putModifiedUTF8 appends the modified UTF-8 bytes of s without a prefix.
func (b *ByteVector) putModifiedUTF8(s string) *ByteVector {
	for _, r := range s {
		switch {
		case r >= 0x01 && r <= 0x7F:
			b.data = append(b.data, byte(r))
		case r <= 0x7FF:
			b.data = append(b.data, byte(0xC0|r>>6), byte(0x80|r&0x3F))
		case r <= 0xFFFF:
			b.data = append(b.data, byte(0xE0|r>>12), byte(0x80|r>>6&0x3F), byte(0x80|r&0x3F))
		default:
			// Supplementary code point: encode each UTF-16 surrogate in
			// three bytes.
			r -= 0x10000
			hi := 0xD800 | r>>10
			lo := 0xDC00 | r&0x3FF
			b.data = append(b.data, byte(0xE0|hi>>12), byte(0x80|hi>>6&0x3F), byte(0x80|hi&0x3F))
			b.data = append(b.data, byte(0xE0|lo>>12), byte(0x80|lo>>6&0x3F), byte(0x80|lo&0x3F))
		}
	}
	return b
}

// modifiedUTF8Length returns the byte length of s in modified UTF-8 form.
func modifiedUTF8Length(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r >= 0x01 && r <= 0x7F:
			n++
		case r <= 0x7FF:
			n += 2
		case r <= 0xFFFF:
			n += 3
		default:
			n += 6
		}
	}
	return n
}
