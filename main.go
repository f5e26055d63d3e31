package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nullmedium/exek/log"
)

func main() {
	os.Exit(execute(os.Stderr))
}

// execute runs the root command and reports any error on stderr.
func execute(stderr io.Writer) int {
	err := rootCmd.Execute()
	log.Close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
