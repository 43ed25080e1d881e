package compiler

import (
	"errors"
	"log/slog"
)

// Reporter is the diagnostic sink. Check calls Report once, with the first
// error, before returning it.
type Reporter interface {
	Report(message string, line int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(message string, line int)

func (f ReporterFunc) Report(message string, line int) { f(message, line) }

// Options configures a Check run. The zero value uses the built-in keywords,
// reports nowhere and logs nothing.
type Options struct {
	Keywords Keywords
	Reporter Reporter
	Logger   *slog.Logger
}

// Check lexes and parses src in one pass and returns the final symbol table.
// The first error stops the run; it is always an *Error.
func Check(src string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tokens, err := LexWithKeywords(src, opts.Keywords)
	if err != nil {
		logger.Debug("lex failed", "error", err)
		return nil, report(opts.Reporter, err)
	}
	logger.Debug("lexed", "tokens", len(tokens))

	res, err := Parse(tokens)
	if err != nil {
		logger.Debug("parse failed", "error", err)
		return nil, report(opts.Reporter, err)
	}
	logger.Debug("parsed", "symbols", res.Symbols.Len(), "returns", len(res.Returns))
	return res, nil
}

func report(r Reporter, err error) error {
	if r == nil {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		r.Report(e.Kind.String()+": "+e.Message, e.Line)
	} else {
		r.Report(err.Error(), 0)
	}
	return err
}
