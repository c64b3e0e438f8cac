package latex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invocation is one run of the compiler.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string   // working directory
	Env    []string // KEY=VALUE pairs appended to the inherited environment
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes an Invocation and blocks until it exits. A non-zero exit is
// reported through the exit code with a nil error; err is reserved for
// failures to spawn or wait on the process.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (exitCode int, err error)
}

// ExecRunner runs invocations with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return -1, fmt.Errorf("%w: %w", ErrCompilerNotFound, err)
	}
	return -1, err
}
