package buildsys

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/syntax"

	"github.com/arthur-debert/quark/pkg/logging"
)

// Command is a subprocess invocation
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is appended to the current environment
	Env []string
	// Stream sends the command's output to the terminal instead of
	// capturing it.
	Stream bool
}

// String renders the command as a POSIX shell line, for logs and errors
func (c Command) String() string {
	words := append([]string{c.Name}, c.Args...)
	for i, word := range words {
		if quoted, err := syntax.Quote(word, syntax.LangPOSIX); err == nil {
			words[i] = quoted
		}
	}
	return strings.Join(words, " ")
}

// Result is the outcome of a command that ran to completion
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited with status zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes commands. An error means the command could not be run at
// all; a nonzero exit is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
	// Output receives streamed command output; defaults to os.Stderr
	Output io.Writer
}

// NewExecRunner creates a runner for real subprocesses
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("buildsys.runner"),
		Output: os.Stderr,
	}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	logging.LogCommand(r.logger, c.Dir, c.Name, c.Args)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)

	var stdout, stderr bytes.Buffer
	if c.Stream {
		cmd.Stdout = r.Output
		cmd.Stderr = r.Output
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		r.logger.Debug().
			Str("command", c.String()).
			Int("exitCode", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Command exited with nonzero status")
		return result, nil
	}
	if err != nil {
		return result, err
	}
	return result, nil
}
