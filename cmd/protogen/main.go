// Generator of Go decoders from Protocol Buffers schemas.
//
//	protogen [-o file.go] [-pkg name] schema.pbs
//	protogen [-o file.go] [-pkg name] schema.proto
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sysfce2/protogen"
	"github.com/sysfce2/protogen/gen"
)

func main() {
	var outPath string
	var pkgName string

	flag.StringVar(&outPath, "o", "", "output file (stdout when empty)")
	flag.StringVar(&pkgName, "pkg", "pb", "package name for generated code")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: protogen [-o file.go] [-pkg name] <schema.pbs|schema.proto>")
		os.Exit(1)
	}
	input := flag.Arg(0)

	opts := gen.Options{
		PackageName: pkgName,
		Source:      input,
	}

	// Generation is fully buffered so a failure commits no partial output.
	var source []byte
	var err error
	if strings.HasSuffix(input, ".proto") {
		source, err = protogen.GenerateProtoFile(input, opts)
	} else {
		var data []byte
		data, err = os.ReadFile(input)
		if err == nil {
			source, err = protogen.Generate(data, opts)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "protogen: %v\n", err)
		os.Exit(1)
	}

	if outPath == "" {
		if _, err := os.Stdout.Write(source); err != nil {
			fmt.Fprintf(os.Stderr, "protogen: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := os.WriteFile(outPath, source, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "protogen: %v\n", err)
		os.Exit(1)
	}
}
