package classfile

import (
	"bytes"
	"testing"
)

// ---------------------------------------------------------------------------
// ByteVector basic tests
// ---------------------------------------------------------------------------

func TestByteVectorChainedPuts(t *testing.T) {
	bv := NewByteVector()
	bv.PutByte(0x01).PutShort(0x0203).PutInt(0x04050607).PutLong(0x08090A0B0C0D0E0F)
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("chained puts: got % x, want % x", bv.Data(), want)
	}
	if bv.Len() != len(want) {
		t.Errorf("Len: got %d, want %d", bv.Len(), len(want))
	}
}

func TestByteVectorPut11AndPut12(t *testing.T) {
	bv := NewByteVector()
	bv.Put11(0xAA, 0xBB).Put12(0xCC, 0x0102)
	want := []byte{0xAA, 0xBB, 0xCC, 0x01, 0x02}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("Put11/Put12: got % x, want % x", bv.Data(), want)
	}
}

func TestByteVectorTruncate(t *testing.T) {
	bv := NewByteVector()
	bv.PutInt(0xDEADBEEF)
	bv.Truncate(2)
	if bv.Len() != 2 {
		t.Errorf("Truncate: got len %d, want 2", bv.Len())
	}
	bv.PutByte(0x7F)
	want := []byte{0xDE, 0xAD, 0x7F}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("write after Truncate: got % x, want % x", bv.Data(), want)
	}
}

func TestByteVectorTruncateOutOfRange(t *testing.T) {
	bv := NewByteVector()
	bv.PutShort(0)
	defer func() {
		if recover() == nil {
			t.Error("Truncate past length did not panic")
		}
	}()
	bv.Truncate(3)
}

// ---------------------------------------------------------------------------
// Modified UTF-8 encoding tests
// ---------------------------------------------------------------------------

func TestPutUTF8ASCII(t *testing.T) {
	bv := NewByteVector()
	bv.PutUTF8("Hi")
	want := []byte{0x00, 0x02, 'H', 'i'}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("PutUTF8: got % x, want % x", bv.Data(), want)
	}
}

func TestPutUTF8NulIsTwoBytes(t *testing.T) {
	bv := NewByteVector()
	bv.PutUTF8("\x00")
	want := []byte{0x00, 0x02, 0xC0, 0x80}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("NUL encoding: got % x, want % x", bv.Data(), want)
	}
}

func TestPutUTF8TwoAndThreeByteForms(t *testing.T) {
	// U+00E9 takes two bytes, U+4E2D three.
	bv := NewByteVector()
	bv.PutUTF8("é中")
	want := []byte{0x00, 0x05, 0xC3, 0xA9, 0xE4, 0xB8, 0xAD}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("multi-byte encoding: got % x, want % x", bv.Data(), want)
	}
}

func TestPutUTF8SupplementaryIsSurrogatePair(t *testing.T) {
	// U+1F600 encodes as the surrogate pair D83D DE00, three bytes each.
	bv := NewByteVector()
	bv.PutUTF8("\U0001F600")
	want := []byte{0x00, 0x06, 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	if !bytes.Equal(bv.Data(), want) {
		t.Errorf("surrogate pair encoding: got % x, want % x", bv.Data(), want)
	}
}

func TestPutUTF8OversizedPanics(t *testing.T) {
	long := make([]byte, 0x10000)
	for i := range long {
		long[i] = 'a'
	}
	bv := NewByteVector()
	defer func() {
		if recover() == nil {
			t.Error("oversized UTF8 literal did not panic")
		}
	}()
	bv.PutUTF8(string(long))
}

func TestModifiedUTF8Length(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\x00", 2},
		{"é", 2},
		{"中", 3},
		{"\U0001F600", 6},
	}
	for _, c := range cases {
		if got := modifiedUTF8Length(c.in); got != c.want {
			t.Errorf("modifiedUTF8Length(%q): got %d, want %d", c.in, got, c.want)
		}
	}
}
