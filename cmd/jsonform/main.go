// Command jsonform converts a JSON document into a multipart/form-data or
// application/x-www-form-urlencoded body.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
