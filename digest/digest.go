// Package digest computes content digests of assembled class file images
// and serializes them in canonical CBOR for tooling interchange.
package digest

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/cafebabe/classfile"
)

// cborEncMode is configured for canonical mode so equal digests always
// encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("digest: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ClassDigest is a compact structural summary of one assembled class,
// content-addressed by the SHA-256 of the image bytes.
type ClassDigest struct {
	Name       string   `cbor:"name"`
	Superclass string   `cbor:"superclass"`
	Major      int      `cbor:"major"`
	Access     int      `cbor:"access"`
	Fields     int      `cbor:"fields"`
	Methods    int      `cbor:"methods"`
	PoolCount  int      `cbor:"pool-count"`
	Size       int      `cbor:"size"`
	Hash       [32]byte `cbor:"hash"`
}

// HashImage returns the SHA-256 content hash of an assembled image.
func HashImage(image []byte) [32]byte {
	return sha256.Sum256(image)
}

// New summarizes an assembled image together with the writer that
// produced it.
func New(cw *classfile.ClassWriter, image []byte) *ClassDigest {
	return &ClassDigest{
		Name:       cw.ClassName(),
		Superclass: cw.SuperName(),
		Major:      int(cw.Version() & 0xFFFF),
		Access:     cw.AccessFlags(),
		Fields:     cw.FieldCount(),
		Methods:    cw.MethodCount(),
		PoolCount:  cw.SymbolTable().PoolCount(),
		Size:       len(image),
		Hash:       HashImage(image),
	}
}

// Marshal serializes a digest to canonical CBOR bytes.
func Marshal(d *ClassDigest) ([]byte, error) {
	return cborEncMode.Marshal(d)
}

// Unmarshal deserializes a digest from CBOR bytes.
func Unmarshal(data []byte) (*ClassDigest, error) {
	var d ClassDigest
	if err := cbor.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("digest: unmarshal class digest: %w", err)
	}
	return &d, nil
}
