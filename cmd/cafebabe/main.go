// Cafebabe CLI - assembles JVM class files from cafebabe.toml manifests
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/cafebabe/digest"
	"github.com/chazu/cafebabe/manifest"
	"github.com/chazu/cafebabe/store"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("cafebabe")

func main() {
	output := flag.String("o", "", "Output path (default: <ClassName>.class next to the manifest)")
	verbose := flag.Bool("v", false, "Verbose output")
	writeDigest := flag.Bool("digest", false, "Write a CBOR digest sidecar next to the output")
	storePath := flag.String("store", "", "SQLite artifact store to index the result into")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cafebabe [options] [dir]\n\n")
		fmt.Fprintf(os.Stderr, "Assembles the class described by dir/cafebabe.toml (default: current directory).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cafebabe                       # Assemble ./cafebabe.toml\n")
		fmt.Fprintf(os.Stderr, "  cafebabe -o out/Sample.class . # Assemble to an explicit path\n")
		fmt.Fprintf(os.Stderr, "  cafebabe -digest -store classes.db proj/  # Keep digest and index\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	dir := "."
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	m, err := manifest.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("loaded manifest for %s", m.Class.Name)

	cw, image, err := Assemble(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = m.OutputPath()
	}
	if err := os.WriteFile(outPath, image, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	log.Infof("wrote %s (%d bytes)", outPath, len(image))

	d := digest.New(cw, image)

	if *writeDigest {
		encoded, err := digest.Marshal(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: encoding digest: %v\n", err)
			os.Exit(1)
		}
		sidecar := outPath + ".digest"
		if err := os.WriteFile(sidecar, encoded, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing %s: %v\n", sidecar, err)
			os.Exit(1)
		}
		log.Infof("wrote %s", sidecar)
	}

	if *storePath != "" {
		s, err := store.Open(*storePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening store: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		id, err := s.Put(d, image)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: indexing class: %v\n", err)
			os.Exit(1)
		}
		log.Infof("indexed %s as %s (hash %x)", m.Class.Name, id, d.Hash[:8])
	}
}
