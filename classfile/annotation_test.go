package classfile

import (
	"bytes"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// AnnotationWriter encoding tests
// ---------------------------------------------------------------------------

func TestAnnotationPrimitiveValues(t *testing.T) {
	st := NewSymbolTable(nil)
	aw := newAnnotationWriter(st, "LAnno;")
	if err := aw.Visit("value", int32(5)); err != nil {
		t.Fatalf("Visit failed: %v", err)
	}
	aw.End()

	// Pool: #1 "LAnno;", #2 "value", #3 Integer 5.
	want := []byte{
		0x00, 0x01, // type descriptor index
		0x00, 0x01, // pair count, patched by End
		0x00, 0x02, // element name index
		'I', 0x00, 0x03, // tag and Integer entry index
	}
	if !bytes.Equal(aw.bv.Data(), want) {
		t.Errorf("annotation bytes: got % x, want % x", aw.bv.Data(), want)
	}
}

func TestAnnotationEnumValue(t *testing.T) {
	st := NewSymbolTable(nil)
	aw := newAnnotationWriter(st, "LAnno;")
	aw.VisitEnum("kind", "LColor;", "RED")
	aw.End()

	// Pool: #1 "LAnno;", #2 "kind", #3 "LColor;", #4 "RED".
	want := []byte{
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x02,
		'e', 0x00, 0x03, 0x00, 0x04,
	}
	if !bytes.Equal(aw.bv.Data(), want) {
		t.Errorf("enum value bytes: got % x, want % x", aw.bv.Data(), want)
	}
}

func TestAnnotationArrayValue(t *testing.T) {
	st := NewSymbolTable(nil)
	aw := newAnnotationWriter(st, "LAnno;")
	arr := aw.VisitArray("names")
	if err := arr.Visit("", "a"); err != nil {
		t.Fatalf("array element failed: %v", err)
	}
	if err := arr.Visit("", "b"); err != nil {
		t.Fatalf("array element failed: %v", err)
	}
	arr.End()
	aw.End()

	// Pool: #1 "LAnno;", #2 "names", #3 String "a" over UTF8... the array
	// elements are unnamed, so each is just a tag and an index.
	data := aw.bv.Data()
	if data[3] != 1 {
		t.Errorf("outer pair count: got %d, want 1", data[3])
	}
	if data[6] != '[' {
		t.Errorf("array tag: got %c, want [", data[6])
	}
	if data[8] != 2 {
		t.Errorf("array element count: got %d, want 2", data[8])
	}
}

func TestAnnotationNested(t *testing.T) {
	st := NewSymbolTable(nil)
	aw := newAnnotationWriter(st, "LOuter;")
	nested := aw.VisitAnnotation("inner", "LInner;")
	if err := nested.Visit("flag", true); err != nil {
		t.Fatalf("nested value failed: %v", err)
	}
	nested.End()
	aw.End()

	data := aw.bv.Data()
	if data[3] != 1 {
		t.Errorf("outer pair count: got %d, want 1", data[3])
	}
	if data[6] != '@' {
		t.Errorf("nested annotation tag: got %c, want @", data[6])
	}
}

func TestAnnotationUnsupportedValueRollsBack(t *testing.T) {
	st := NewSymbolTable(nil)
	aw := newAnnotationWriter(st, "LAnno;")
	if err := aw.Visit("ok", int32(1)); err != nil {
		t.Fatalf("Visit failed: %v", err)
	}
	length := aw.bv.Len()
	count := aw.count

	err := aw.Visit("bad", []int{1})
	if err == nil {
		t.Fatal("Visit accepted a slice")
	}
	var unsupported *UnsupportedConstantError
	if !errors.As(err, &unsupported) {
		t.Errorf("error type: got %T, want *UnsupportedConstantError", err)
	}
	if aw.bv.Len() != length {
		t.Errorf("failed value not rolled back: got %d bytes, want %d", aw.bv.Len(), length)
	}
	if aw.count != count {
		t.Errorf("failed value counted: got %d, want %d", aw.count, count)
	}
}
