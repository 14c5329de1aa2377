// Package manifest handles cafebabe.toml class description files.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/cafebabe/classfile"
)

// Manifest describes one class to assemble.
type Manifest struct {
	Class        Class        `toml:"class"`
	Source       Source       `toml:"source"`
	Fields       []Field      `toml:"fields"`
	Methods      []Method     `toml:"methods"`
	InnerClasses []InnerClass `toml:"inner-classes"`

	// Dir is the directory containing the manifest file (set at load time).
	Dir string `toml:"-"`
}

// Class contains the class header declaration.
type Class struct {
	Name       string   `toml:"name"`
	Super      string   `toml:"super"`
	Java       int      `toml:"java"`
	Access     []string `toml:"access"`
	Interfaces []string `toml:"interfaces"`
	Signature  string   `toml:"signature"`
}

// Source names the originating source file and optional debug extension.
type Source struct {
	File  string `toml:"file"`
	Debug string `toml:"debug"`
}

// Field describes one field declaration.
type Field struct {
	Name       string   `toml:"name"`
	Descriptor string   `toml:"descriptor"`
	Access     []string `toml:"access"`
	Signature  string   `toml:"signature"`

	// Value is the optional initial constant value. TOML gives integers as
	// int64; ConstantValue narrows them to the descriptor's kind.
	Value any `toml:"value"`
}

// Method describes one method declaration. Bodies are supplied separately;
// the manifest covers the declaration surface only.
type Method struct {
	Name       string   `toml:"name"`
	Descriptor string   `toml:"descriptor"`
	Access     []string `toml:"access"`
	Signature  string   `toml:"signature"`
	Exceptions []string `toml:"exceptions"`
}

// InnerClass describes one inner-class table entry.
type InnerClass struct {
	Name   string   `toml:"name"`
	Outer  string   `toml:"outer"`
	Inner  string   `toml:"inner"`
	Access []string `toml:"access"`
}

// accessFlags maps symbolic flag names to their bit values. The deprecated
// and synthetic-attribute names select the pseudo flags the assembler
// translates into attributes.
var accessFlags = map[string]int{
	"public":              classfile.AccPublic,
	"private":             classfile.AccPrivate,
	"protected":           classfile.AccProtected,
	"static":              classfile.AccStatic,
	"final":               classfile.AccFinal,
	"super":               classfile.AccSuper,
	"synchronized":        classfile.AccSynchronized,
	"volatile":            classfile.AccVolatile,
	"bridge":              classfile.AccBridge,
	"varargs":             classfile.AccVarargs,
	"transient":           classfile.AccTransient,
	"native":              classfile.AccNative,
	"interface":           classfile.AccInterface,
	"abstract":            classfile.AccAbstract,
	"strict":              classfile.AccStrict,
	"synthetic":           classfile.AccSynthetic,
	"annotation":          classfile.AccAnnotation,
	"enum":                classfile.AccEnum,
	"deprecated":          classfile.AccDeprecated,
	"synthetic-attribute": classfile.AccSyntheticAttribute,
}

// ParseAccess combines symbolic flag names into an access flag word.
func ParseAccess(names []string) (int, error) {
	access := 0
	for _, name := range names {
		flag, ok := accessFlags[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("manifest: unknown access flag %q", name)
		}
		access |= flag
	}
	return access, nil
}

// classVersions maps Java release numbers to version words.
var classVersions = map[int]uint32{
	1: classfile.V1_1,
	2: classfile.V1_2,
	3: classfile.V1_3,
	4: classfile.V1_4,
	5: classfile.V1_5,
	6: classfile.V1_6,
	7: classfile.V1_7,
	8: classfile.V1_8,
}

// Version returns the class file version word for the declared Java release.
func (c *Class) Version() (uint32, error) {
	v, ok := classVersions[c.Java]
	if !ok {
		return 0, fmt.Errorf("manifest: unsupported java release %d", c.Java)
	}
	return v, nil
}

// ConstantValue narrows the TOML-decoded value to the kind the field's
// descriptor calls for. Returns nil if the field declares no value.
func (f *Field) ConstantValue() (any, error) {
	if f.Value == nil {
		return nil, nil
	}
	switch f.Descriptor {
	case "Z":
		if b, ok := f.Value.(bool); ok {
			return b, nil
		}
	case "B", "C", "S", "I":
		if n, ok := f.Value.(int64); ok {
			return int32(n), nil
		}
	case "J":
		if n, ok := f.Value.(int64); ok {
			return n, nil
		}
	case "F":
		switch n := f.Value.(type) {
		case float64:
			return float32(n), nil
		case int64:
			return float32(n), nil
		}
	case "D":
		switch n := f.Value.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}
	case "Ljava/lang/String;":
		if s, ok := f.Value.(string); ok {
			return s, nil
		}
	default:
		return nil, fmt.Errorf("manifest: field %s: descriptor %s cannot carry a constant value",
			f.Name, f.Descriptor)
	}
	return nil, fmt.Errorf("manifest: field %s: value %v does not fit descriptor %s",
		f.Name, f.Value, f.Descriptor)
}

// Load parses a cafebabe.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "cafebabe.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Class.Super == "" && m.Class.Name != "java/lang/Object" {
		m.Class.Super = "java/lang/Object"
	}
	if m.Class.Java == 0 {
		m.Class.Java = 8
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Class.Name == "" {
		return fmt.Errorf("manifest: class name is required")
	}
	if _, err := m.Class.Version(); err != nil {
		return err
	}
	for _, f := range m.Fields {
		if f.Name == "" || f.Descriptor == "" {
			return fmt.Errorf("manifest: field needs both name and descriptor")
		}
	}
	for _, mt := range m.Methods {
		if mt.Name == "" || mt.Descriptor == "" {
			return fmt.Errorf("manifest: method needs both name and descriptor")
		}
	}
	return nil
}

// OutputPath returns the path the assembled image is written to: the class's
// simple name with a .class extension, next to the manifest.
func (m *Manifest) OutputPath() string {
	name := m.Class.Name
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return filepath.Join(m.Dir, name+".class")
}
