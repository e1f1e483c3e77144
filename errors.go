// errors.go - error types for every compilation stage
//
// Every stage returns its error to the caller; nothing in the pipeline
// panics on bad user input or retries. The driver wraps stage errors in a
// DriverError naming the stage that failed.
package main

import "fmt"

// LexError is an unrecognized character in the source text.
type LexError struct {
	Char   rune
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at %d:%d", e.Char, e.Line, e.Column)
}

// ParseError is a grammar violation or premature end of file.
type ParseError struct {
	Expected string
	Found    string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", e.Line, e.Column, e.Expected, e.Found)
}

// CodegenError is any failure while lowering the AST or emitting the
// object file: unsupported target, undefined variable, empty program.
type CodegenError struct {
	Reason string
}

func (e *CodegenError) Error() string {
	return e.Reason
}

func codegenErrorf(format string, args ...interface{}) *CodegenError {
	return &CodegenError{Reason: fmt.Sprintf(format, args...)}
}

// Driver stages, used in DriverError.Stage.
const (
	StageRead    = "read"
	StageParse   = "parse"
	StageCodegen = "codegen"
	StageWrite   = "write"
	StageLink    = "link"
)

// DriverError wraps the first stage failure with the stage name.
type DriverError struct {
	Stage string
	Err   error
}

func (e *DriverError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *DriverError) Unwrap() error {
	return e.Err
}
