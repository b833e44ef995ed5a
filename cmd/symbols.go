package cmd

import (
	"github.com/arnavsurve/kplc/internal/compiler"
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/spf13/cobra"
)

// symbols: dump the symbol table as YAML
var SymbolsCmd = &cobra.Command{
	Use:   "symbols <source.kpl>",
	Short: "Print the symbol table built for a KPL source",
	Args:  cobra.ExactArgs(1),
	RunE:  symbolsRun,
}

func symbolsRun(cmd *cobra.Command, args []string) error {
	res, err := compiler.CompileFile(args[0], parserOptions())
	if err != nil {
		return err
	}
	defer res.Table.Clean()

	if err := res.Table.Dump(cmd.OutOrStdout()); err != nil {
		return err
	}
	if !res.OK() {
		if err := diag.NewPrinter(cmd.ErrOrStderr(), useColors).PrintAll(res.Diagnostics); err != nil {
			return err
		}
		return ErrDiagnostics
	}
	return nil
}
