// ./main.go
package main

import (
	"github.com/fernweh-labs/consentgate/cmd"
)

// main is the entry point for the consentgate CLI.
func main() {
	cmd.Execute()
}
