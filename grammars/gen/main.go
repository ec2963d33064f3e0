// Command gen validates the project grammar definitions and writes each one
// to grammars/<name>/src/grammar.json, ready for `tree-sitter generate` to
// compile into the shared library artifact parsley loads.
package main

//go:generate go run .

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corey/parsley/grammars/bind"
	"github.com/corey/parsley/grammars/dash"
	"github.com/corey/parsley/internal/grammar"
)

func main() {
	for _, g := range []*grammar.Grammar{bind.Grammar(), dash.Grammar()} {
		if err := write(g); err != nil {
			fmt.Fprintf(os.Stderr, "gen: %s: %v\n", g.Name, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", jsonPath(g.Name))
	}
}

func jsonPath(name string) string {
	return filepath.Join("..", name, "src", "grammar.json")
}

func write(g *grammar.Grammar) error {
	if err := g.Validate(); err != nil {
		return err
	}
	path := jsonPath(g.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return g.WriteFile(path)
}
