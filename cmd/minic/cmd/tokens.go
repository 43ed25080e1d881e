package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"minic/pkg/compiler"
	"minic/pkg/report"
	"minic/pkg/sources"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	kw, err := cfg.Keywords()
	if err != nil {
		return err
	}
	f, err := sources.NewStore(cfg.Sources.MaxFileBytes).Load(args[0])
	if err != nil {
		return err
	}

	p := report.NewPrinter(cmd.OutOrStdout(), cfg.Output.Color)
	tokens, err := compiler.LexWithKeywords(f.Text(), kw)
	p.Tokens(tokens)
	if err != nil {
		var e *compiler.Error
		if errors.As(err, &e) {
			p.Diagnostic(f, e.Kind.String()+": "+e.Message, e.Line)
		}
		return fmt.Errorf("lexing %s failed", args[0])
	}
	logger.Debug("lexed", "file", args[0], "tokens", len(tokens))
	return nil
}
