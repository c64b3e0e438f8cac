package errors

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *BuildError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "invalid "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Input errors

func SourceNotFound(path string, cause error) *BuildError {
	return Wrap(cause, CategoryInput, SeverityFatal, "source file not found").
		WithContext("path", path)
}

func InvalidExtension(path, want string, cause error) *BuildError {
	return Wrap(cause, CategoryInput, SeverityFatal, "source file must have "+want+" extension").
		WithContext("path", path)
}

// Compiler errors

func CompilerNotFound(binary string, cause error) *BuildError {
	return Wrap(cause, CategoryTool, SeverityFatal, "compiler not found; install TeX Live or MiKTeX").
		WithContext("binary", binary)
}

func ProcessFailed(pass int, cause error) *BuildError {
	return Wrap(cause, CategoryProcess, SeverityFatal, "compiler process failed").
		WithContext("pass", pass)
}

func OutputMissing(output string, cause error) *BuildError {
	return Wrap(cause, CategoryCompile, SeverityFatal, "compilation did not produce a PDF").
		WithContext("output", output)
}

// Filesystem errors

func OutputDirError(dir string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output directory unavailable").
		WithContext("dir", dir)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
