// Command formbindgen generates reflection-free formbind schemas for struct
// types, intended for use with go:generate:
//
//	//go:generate formbindgen -type Signup
//
// It emits a <type>_formbind.go file beside the package containing a
// <Type>Schema() constructor and a Bind<Type>() helper with typed setters.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formbind/internal/gen"
)

func main() {
	var (
		typeList = flag.String("type", "", "comma-separated struct type names (required)")
		pattern  = flag.String("pkg", ".", "package pattern to load")
		output   = flag.String("out", "", "output path (default <type>_formbind.go beside the package)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *typeList == "" {
		log.Error("missing required -type flag")
		flag.Usage()
		os.Exit(2)
	}

	var names []string
	for _, name := range strings.Split(*typeList, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	file, err := gen.Generate(*pattern, names)
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	path := *output
	if path == "" {
		path = filepath.Join(file.Dir, file.Filename)
	}

	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		log.Error("writing output", "path", path, "error", err)
		os.Exit(1)
	}

	log.Info("schema generated", "path", path, "types", strings.Join(names, ","))
}
