package hooks

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// Status classifies the outcome of one scanner invocation.
type Status int

// Invocation outcomes. Anything but StatusSuccess fails the hook.
const (
	StatusSuccess Status = iota
	StatusScanFailed
	StatusExecutableNotFound
	StatusUnexpectedError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusScanFailed:
		return "scan_failed"
	case StatusExecutableNotFound:
		return "executable_not_found"
	case StatusUnexpectedError:
		return "unexpected_error"
	default:
		return "unknown"
	}
}

// Request is a fully resolved scanner invocation.
type Request struct {
	Executable string
	BaseArgs   []string
	Args       []string
	WorkDir    string
}

// Argv returns the complete command line: executable, base args, options.
func (r Request) Argv() []string {
	argv := make([]string, 0, 1+len(r.BaseArgs)+len(r.Args))
	argv = append(argv, r.Executable)
	argv = append(argv, r.BaseArgs...)
	return append(argv, r.Args...)
}

// String returns the command line joined by spaces.
func (r Request) String() string {
	return strings.Join(r.Argv(), " ")
}

// Result is the classified outcome of Execute.
type Result struct {
	Status   Status
	ExitCode int   // set for StatusScanFailed
	Err      error // set for StatusExecutableNotFound and StatusUnexpectedError
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// CommandExecutor runs scanner requests. It makes exactly one attempt per
// request and enforces no timeout of its own.
type CommandExecutor struct {
	deps *Dependencies
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor(deps *Dependencies) *CommandExecutor {
	return &CommandExecutor{deps: deps.withDefaults()}
}

// Execute runs req and blocks until the process exits.
func (ce *CommandExecutor) Execute(ctx context.Context, req Request) *Result {
	if _, err := ce.deps.Runner.LookPath(req.Executable); err != nil {
		if isNotFound(err) {
			return &Result{Status: StatusExecutableNotFound, Err: err}
		}
		return &Result{Status: StatusUnexpectedError, Err: err}
	}

	args := make([]string, 0, len(req.BaseArgs)+len(req.Args))
	args = append(args, req.BaseArgs...)
	args = append(args, req.Args...)

	start := ce.deps.Clock.Now()
	out, err := ce.deps.Runner.Run(ctx, req.WorkDir, req.Executable, args...)
	result := classify(ctx, err)
	result.Duration = ce.deps.Clock.Now().Sub(start)
	if out != nil {
		result.Stdout = string(out.Stdout)
		result.Stderr = string(out.Stderr)
	}
	return result
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	error
	ExitCode() int
}

func classify(ctx context.Context, err error) *Result {
	if err == nil {
		return &Result{Status: StatusSuccess}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Result{Status: StatusUnexpectedError, Err: errors.Join(ctxErr, err)}
	}

	var exitErr exitCoder
	if errors.As(err, &exitErr) {
		// -1 means the process did not exit on its own (e.g. killed by a signal)
		if code := exitErr.ExitCode(); code >= 0 {
			return &Result{Status: StatusScanFailed, ExitCode: code}
		}
		return &Result{Status: StatusUnexpectedError, Err: err}
	}
	// a missing working directory is fs.ErrNotExist, not exec.ErrNotFound,
	// and is deliberately left to the unexpected-error branch
	if errors.Is(err, exec.ErrNotFound) {
		return &Result{Status: StatusExecutableNotFound, Err: err}
	}
	return &Result{Status: StatusUnexpectedError, Err: err}
}

// isNotFound reports whether a LookPath error means the executable is missing.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
