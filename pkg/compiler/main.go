// Package compiler provides a single-pass front end for a minimal C-like
// language: a lexer, a recursive-descent parser that folds every expression as
// it recognises it, and the flat symbol table the parser fills.
//
// Pipeline: source → Lex → Parse (fold + symbol table) → Result
package compiler
