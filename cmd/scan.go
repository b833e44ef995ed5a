package cmd

import (
	"fmt"

	"github.com/arnavsurve/kplc/internal/compiler"
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/token"
	"github.com/spf13/cobra"
)

// scan: dump the token stream
var ScanCmd = &cobra.Command{
	Use:   "scan <source.kpl>",
	Short: "Print every token of a KPL source",
	Args:  cobra.ExactArgs(1),
	RunE:  scanRun,
}

func scanRun(cmd *cobra.Command, args []string) error {
	toks, diags, err := compiler.ScanFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tok := range toks {
		if tok.Type == token.TokenNone {
			continue
		}
		fmt.Fprintln(out, tok.String())
	}

	if diags.Len() > 0 {
		if err := diag.NewPrinter(cmd.ErrOrStderr(), useColors).PrintAll(diags); err != nil {
			return err
		}
		return ErrDiagnostics
	}
	return nil
}
