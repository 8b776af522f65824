package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-crudgen/internal/scaffold"
)

func main() {
	name := flag.String("model", "", "model name, e.g. Article")
	fields := flag.String("fields", "", `comma-separated name:kind list, e.g. "title:string,reads:int"`)
	pkg := flag.String("package", "main", "package name for the generated file")
	table := flag.String("table", "", "table name (defaults to the pluralised model name)")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for the model spec instead of using flags")
	flag.Parse()

	var (
		spec scaffold.ModelSpec
		err  error
	)
	if *interactive {
		spec, err = scaffold.Ask(scaffold.NewSurveyDriver())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
	} else {
		parsed, err := scaffold.ParseFields(*fields)
		if err != nil {
			log.Fatalf("Invalid fields: %v", err)
		}
		spec = scaffold.ModelSpec{
			Name:    *name,
			Package: *pkg,
			Table:   *table,
			Fields:  parsed,
		}
	}

	source, err := scaffold.Generate(spec)
	if err != nil {
		log.Fatalf("Failed to generate model: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, source, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Model written to %s\n", *output)
	} else {
		fmt.Println(string(source))
	}
}
