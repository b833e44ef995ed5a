package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arnavsurve/kplc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrDiagnostics) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
