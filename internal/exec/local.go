package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"

	"github.com/sarchart/sarchart/internal/errors"
)

// Capture runs name with args locally and captures all output.
// env entries ("KEY=value") are added to the current environment.
// Returns stdout, stderr, exit code, and any execution error. A non-zero
// exit is not an error; a missing executable is a SOURCE_UNAVAILABLE error.
func Capture(ctx context.Context, name string, args, env []string) (stdout, stderr []byte, exitCode int, err error) {
	command := exec.CommandContext(ctx, name, args...)
	command.Env = append(os.Environ(), env...)

	var outBuf, errBuf bytes.Buffer
	command.Stdout = &outBuf
	command.Stderr = &errBuf

	runErr := command.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outBuf.Bytes(), errBuf.Bytes(), -1, ctxErr
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
		}
		if stderrors.Is(runErr, exec.ErrNotFound) || stderrors.Is(runErr, os.ErrNotExist) {
			return nil, nil, -1, NotFoundError(name, "")
		}
		return nil, nil, -1, errors.WrapWithCode(runErr, errors.ErrSourceUnavailable,
			"Couldn't start "+name,
			"Make sure the command exists and is executable.")
	}

	return outBuf.Bytes(), errBuf.Bytes(), 0, nil
}
