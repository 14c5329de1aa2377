package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/cafebabe/classfile"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cafebabe.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return dir
}

func TestLoadFullManifest(t *testing.T) {
	dir := writeManifest(t, `
[class]
name = "com/example/Sample"
super = "com/example/Base"
java = 7
access = ["public", "final"]
interfaces = ["java/lang/Runnable"]

[source]
file = "Sample.java"

[[fields]]
name = "LIMIT"
descriptor = "I"
access = ["public", "static", "final"]
value = 7

[[methods]]
name = "run"
descriptor = "()V"
access = ["public"]
exceptions = ["java/io/IOException"]

[[inner-classes]]
name = "com/example/Sample$Helper"
outer = "com/example/Sample"
inner = "Helper"
access = ["private", "static"]
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Class.Name != "com/example/Sample" {
		t.Errorf("class name: got %q, want %q", m.Class.Name, "com/example/Sample")
	}
	if m.Class.Super != "com/example/Base" {
		t.Errorf("superclass: got %q, want %q", m.Class.Super, "com/example/Base")
	}
	version, err := m.Class.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != classfile.V1_7 {
		t.Errorf("version: got %d, want %d", version, classfile.V1_7)
	}
	if len(m.Fields) != 1 || len(m.Methods) != 1 || len(m.InnerClasses) != 1 {
		t.Errorf("sections: got %d/%d/%d fields/methods/inner, want 1/1/1",
			len(m.Fields), len(m.Methods), len(m.InnerClasses))
	}
	if m.Source.File != "Sample.java" {
		t.Errorf("source file: got %q, want %q", m.Source.File, "Sample.java")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := writeManifest(t, `
[class]
name = "Sample"
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Class.Super != "java/lang/Object" {
		t.Errorf("default superclass: got %q, want %q", m.Class.Super, "java/lang/Object")
	}
	if m.Class.Java != 8 {
		t.Errorf("default java release: got %d, want 8", m.Class.Java)
	}
}

func TestLoadRequiresClassName(t *testing.T) {
	dir := writeManifest(t, `
[class]
super = "java/lang/Object"
`)
	if _, err := Load(dir); err == nil {
		t.Error("Load accepted a manifest without a class name")
	}
}

func TestLoadRejectsUnknownJavaRelease(t *testing.T) {
	dir := writeManifest(t, `
[class]
name = "Sample"
java = 99
`)
	if _, err := Load(dir); err == nil {
		t.Error("Load accepted an unsupported java release")
	}
}

func TestParseAccess(t *testing.T) {
	got, err := ParseAccess([]string{"public", "static", "final"})
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}
	want := classfile.AccPublic | classfile.AccStatic | classfile.AccFinal
	if got != want {
		t.Errorf("ParseAccess: got %#x, want %#x", got, want)
	}
}

func TestParseAccessPseudoFlags(t *testing.T) {
	got, err := ParseAccess([]string{"deprecated", "synthetic-attribute"})
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}
	want := classfile.AccDeprecated | classfile.AccSyntheticAttribute
	if got != want {
		t.Errorf("ParseAccess: got %#x, want %#x", got, want)
	}
}

func TestParseAccessUnknownFlag(t *testing.T) {
	if _, err := ParseAccess([]string{"public", "wibbly"}); err == nil {
		t.Error("ParseAccess accepted an unknown flag name")
	}
}

func TestConstantValueNarrowing(t *testing.T) {
	cases := []struct {
		desc  string
		value any
		want  any
	}{
		{"I", int64(7), int32(7)},
		{"J", int64(7), int64(7)},
		{"Z", true, true},
		{"F", 1.5, float32(1.5)},
		{"D", 1.5, 1.5},
		{"Ljava/lang/String;", "hi", "hi"},
	}
	for _, c := range cases {
		f := Field{Name: "f", Descriptor: c.desc, Value: c.value}
		got, err := f.ConstantValue()
		if err != nil {
			t.Errorf("ConstantValue(%s): %v", c.desc, err)
			continue
		}
		if got != c.want {
			t.Errorf("ConstantValue(%s): got %T(%v), want %T(%v)", c.desc, got, got, c.want, c.want)
		}
	}
}

func TestConstantValueMismatch(t *testing.T) {
	f := Field{Name: "f", Descriptor: "I", Value: "oops"}
	if _, err := f.ConstantValue(); err == nil {
		t.Error("ConstantValue accepted a string for an int descriptor")
	}

	obj := Field{Name: "f", Descriptor: "Lcom/example/Thing;", Value: int64(1)}
	if _, err := obj.ConstantValue(); err == nil {
		t.Error("ConstantValue accepted a value for a reference descriptor")
	}
}

func TestOutputPath(t *testing.T) {
	m := &Manifest{Dir: "/tmp/proj"}
	m.Class.Name = "com/example/Sample"
	if got := m.OutputPath(); got != filepath.Join("/tmp/proj", "Sample.class") {
		t.Errorf("OutputPath: got %q", got)
	}
}
