package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/omnipak/cmd/omnipak"
)

func main() {
	if err := omnipak.GenMan(omnipak.NewRootCmd(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
