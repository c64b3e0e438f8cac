package latex

import "errors"

// Sentinel errors for each distinct compile failure. Driver errors wrap one of
// these, so callers classify with errors.Is.
var (
	// ErrSourceNotFound indicates the source path does not exist.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrInvalidExtension indicates the source path does not end in .tex.
	ErrInvalidExtension = errors.New("source file has wrong extension")
	// ErrOutputDir indicates the output directory could not be resolved or created.
	ErrOutputDir = errors.New("output directory unavailable")
	// ErrCompilerNotFound indicates the compiler executable was not detected on PATH.
	ErrCompilerNotFound = errors.New("compiler not found")
	// ErrProcessFailed indicates spawning or waiting on the compiler failed.
	ErrProcessFailed = errors.New("compiler process failed")
	// ErrOutputMissing indicates the final pass finished without producing the PDF.
	ErrOutputMissing = errors.New("output file not produced")
	// ErrCanceled indicates the compile was interrupted through its context.
	ErrCanceled = errors.New("compile canceled")
)
