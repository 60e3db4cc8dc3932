package main

import (
	"fmt"
	"os"

	"invoicedash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "invoicedash:", err)
		os.Exit(1)
	}
}
