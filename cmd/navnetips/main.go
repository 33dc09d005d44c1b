// navnetips browses the Norwegian name catalogue, draws shuffled
// suggestions and keeps a list of liked names.
package main

import (
	"os"

	"github.com/magnuspl/navnetips/cmd/navnetips/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
