// parsley manages tree-sitter grammars: install prebuilt artifacts,
// verify they load, and probe how they parse.
package main

import (
	"os"

	"github.com/corey/parsley/cmd/parsley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
