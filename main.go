// The main package for the siteforge executable.
package main

import (
	"github.com/siteforge/siteforge/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
