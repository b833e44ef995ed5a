package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/arnavsurve/kplc/internal/compiler"
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// check: run the front end over each source
var CheckCmd = &cobra.Command{
	Use:   "check [source.kpl]...",
	Short: "Check KPL sources and print their diagnostics",
	RunE:  checkRun,
}

func checkRun(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		var err error
		if files, err = sourcesFromConfig(); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		_ = cmd.Usage()
		return errors.New("no source files given")
	}

	out := cmd.OutOrStdout()
	rejected := 0
	for _, file := range files {
		ok, err := checkFile(out, file, len(files) > 1)
		if err != nil {
			return err
		}
		if !ok {
			rejected++
		}
	}

	if rejected > 0 {
		logger.Debug("check finished", "files", len(files), "rejected", rejected)
		return ErrDiagnostics
	}
	return nil
}

// checkFile compiles one source and prints its diagnostics. With several
// files each one gets a status line.
func checkFile(out io.Writer, file string, status bool) (bool, error) {
	res, err := compiler.CompileFile(file, parserOptions())
	if err != nil {
		return false, err
	}
	defer res.Table.Clean()

	if status {
		if res.OK() {
			fmt.Fprintf(out, "%s %s\n", color.GreenString("✔︎"), file)
		} else {
			fmt.Fprintf(out, "%s %s: %d diagnostics\n", color.RedString("✘"), file, res.Diagnostics.Len())
		}
	}
	if err := diag.NewPrinter(out, useColors).PrintAll(res.Diagnostics); err != nil {
		return false, err
	}
	if res.Stopped {
		logger.Info("stopped early", "file", file, "diagnostics", res.Diagnostics.Len())
	}
	return res.OK(), nil
}
