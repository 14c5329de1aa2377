package main

import (
	"fmt"

	"github.com/chazu/cafebabe/classfile"
	"github.com/chazu/cafebabe/hierarchy"
	"github.com/chazu/cafebabe/manifest"
)

// Assemble turns a loaded manifest into an assembled class file image.
// Methods are emitted as declarations only; bodies come from other tooling.
func Assemble(m *manifest.Manifest) (*classfile.ClassWriter, []byte, error) {
	version, err := m.Class.Version()
	if err != nil {
		return nil, nil, err
	}
	access, err := manifest.ParseAccess(m.Class.Access)
	if err != nil {
		return nil, nil, fmt.Errorf("class %s: %w", m.Class.Name, err)
	}

	cw := classfile.NewClassWriter(hierarchy.NewResolver())
	cw.Visit(version, access, m.Class.Name, m.Class.Signature, m.Class.Super, m.Class.Interfaces)

	if m.Source.File != "" || m.Source.Debug != "" {
		cw.VisitSource(m.Source.File, m.Source.Debug)
	}

	for _, f := range m.Fields {
		fieldAccess, err := manifest.ParseAccess(f.Access)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		value, err := f.ConstantValue()
		if err != nil {
			return nil, nil, err
		}
		if _, err := cw.VisitField(fieldAccess, f.Name, f.Descriptor, f.Signature, value); err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}

	for _, mt := range m.Methods {
		methodAccess, err := manifest.ParseAccess(mt.Access)
		if err != nil {
			return nil, nil, fmt.Errorf("method %s: %w", mt.Name, err)
		}
		cw.VisitMethod(methodAccess, mt.Name, mt.Descriptor, mt.Signature, mt.Exceptions)
	}

	for _, ic := range m.InnerClasses {
		innerAccess, err := manifest.ParseAccess(ic.Access)
		if err != nil {
			return nil, nil, fmt.Errorf("inner class %s: %w", ic.Name, err)
		}
		cw.VisitInnerClass(ic.Name, ic.Outer, ic.Inner, innerAccess)
	}

	image, err := cw.ToBytes()
	if err != nil {
		return nil, nil, fmt.Errorf("assembling %s: %w", m.Class.Name, err)
	}
	return cw, image, nil
}
