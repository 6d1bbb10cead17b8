package main

import (
	"fmt"
	"os"

	"github.com/suparena/dorm/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dorm:", err)
		os.Exit(1)
	}
}
