package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"minic/pkg/compiler"
	"minic/pkg/report"
	"minic/pkg/sources"
	"minic/pkg/utils"
)

var checkSymbols bool

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check source files and print their symbol tables",
	Long: `Checks every file in turn. A clean file prints a success line followed by
its symbol table and return values; a failing file prints the first error
with the offending source line.

Examples:
  minic check prog.mc
  minic check --symbols=false a.mc b.mc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkSymbols, "symbols", true, "print the symbol table of clean files")
}

// checker runs compiler.Check on loaded files and prints the outcome.
type checker struct {
	keywords compiler.Keywords
	printer  *report.Printer
	symbols  bool
	headers  bool
}

func newChecker(cmd *cobra.Command, headers bool) (*checker, error) {
	kw, err := cfg.Keywords()
	if err != nil {
		return nil, err
	}
	show := cfg.ShowSymbols()
	if f := cmd.Flags().Lookup("symbols"); f != nil && f.Changed {
		show = checkSymbols
	}
	return &checker{
		keywords: kw,
		printer:  report.NewPrinter(cmd.OutOrStdout(), cfg.Output.Color),
		symbols:  show,
		headers:  headers,
	}, nil
}

// run checks f and reports whether it was clean.
func (c *checker) run(f *sources.File) bool {
	log := logger.With("run", uuid.New().String(), "file", utils.DisplayPath(f.Path))
	if c.headers {
		c.printer.File(f)
	}

	res, err := compiler.Check(f.Text(), compiler.Options{
		Keywords: c.keywords,
		Reporter: c.printer.Reporter(f),
		Logger:   log,
	})
	if err != nil {
		log.Debug("check failed", "error", err)
		return false
	}

	c.printer.Success()
	if c.symbols {
		c.printer.Result(res)
	}
	log.Debug("check passed", "symbols", res.Symbols.Len(), "tokens", res.Tokens)
	return true
}

func runCheck(cmd *cobra.Command, args []string) error {
	ch, err := newChecker(cmd, len(args) > 1)
	if err != nil {
		return err
	}
	store := sources.NewStore(cfg.Sources.MaxFileBytes)

	failed := 0
	for _, path := range args {
		f, err := store.Load(path)
		if err != nil {
			logger.Error("cannot load source", "file", path, "error", err)
			failed++
			continue
		}
		if !ch.run(f) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
