package hooks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Veraticus/wiz-iac/internal/log"
	"github.com/Veraticus/wiz-iac/internal/options"
	"github.com/Veraticus/wiz-iac/internal/output"
)

// Hook exit codes.
const (
	ExitPass = 0
	ExitFail = 1
)

// DefaultExecutable is the scanner binary looked up on PATH.
const DefaultExecutable = "wizcli"

// DefaultBaseArgs is the subcommand prefix placed before the options.
var DefaultBaseArgs = []string{"iac", "scan"}

// Scan describes one hook run.
type Scan struct {
	Options    *options.Builder
	Defaults   map[string]any // option defaults from config; the command line wins
	Executable string
	BaseArgs   []string
	WorkDir    string   // empty means the current directory
	Files      []string // file names passed by pre-commit; the scanner walks --path itself
}

// RunIaCScan is the entry point of the IaC scan hook. It applies config
// defaults to the parsed options, runs the scanner once and reports the
// outcome, returning the process exit code.
func RunIaCScan(ctx context.Context, scan Scan, deps *Dependencies) int {
	deps = deps.withDefaults()
	rep := deps.reporter()
	ctx = log.ContextAttrs(ctx, slog.String("run_id", uuid.NewString()))

	req, err := prepare(scan, deps)
	if err != nil {
		deps.Logger.DebugContext(ctx, "scan not started", "err", err)
		return Fail(rep, err)
	}
	if len(scan.Files) > 0 {
		deps.Logger.DebugContext(ctx, "ignoring file arguments", "files", scan.Files)
	}

	deps.Logger.DebugContext(ctx, "running scanner", "argv", req.Argv(), "dir", req.WorkDir)
	rep.Command(req.Argv(), req.WorkDir)

	res := NewCommandExecutor(deps).Execute(ctx, req)

	attrs := []any{"status", res.Status.String(), "duration", res.Duration}
	if res.Status == StatusScanFailed {
		attrs = append(attrs, "exit_code", res.ExitCode)
	}
	if res.Err != nil {
		attrs = append(attrs, "err", res.Err)
	}
	deps.Logger.DebugContext(ctx, "scanner finished", attrs...)

	return Report(rep, req, res)
}

func prepare(scan Scan, deps *Dependencies) (Request, error) {
	b := scan.Options
	if b == nil {
		b = options.NewBuilder(options.IaCScan)
	}
	if err := options.ApplyDefaults(b, scan.Defaults); err != nil {
		return Request{}, err
	}
	set, err := b.Build()
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Executable: scan.Executable,
		BaseArgs:   scan.BaseArgs,
		Args:       options.Translate(set),
		WorkDir:    scan.WorkDir,
	}
	if req.Executable == "" {
		req.Executable = DefaultExecutable
	}
	if req.BaseArgs == nil {
		req.BaseArgs = DefaultBaseArgs
	}
	if req.WorkDir == "" {
		dir, err := deps.Dir.Getwd()
		if err != nil {
			return Request{}, fmt.Errorf("resolve working directory: %w", err)
		}
		req.WorkDir = dir
	}
	return req, nil
}

// Report prints the outcome of req and maps it to the hook exit code.
func Report(rep *output.Reporter, req Request, res *Result) int {
	switch res.Status {
	case StatusSuccess:
		rep.Success(res.Stdout, res.Stderr)
		return ExitPass
	case StatusScanFailed:
		rep.ScanFailed(res.ExitCode, res.Stderr)
	case StatusExecutableNotFound:
		rep.NotFound(req.Executable)
	case StatusUnexpectedError:
		msg := "unknown error"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		rep.Unexpected(msg)
	default:
		rep.Unexpected(fmt.Sprintf("unhandled scan status %d", int(res.Status)))
	}
	return ExitFail
}

// Fail reports an error raised before the scanner could run.
func Fail(rep *output.Reporter, err error) int {
	if options.IsValidationError(err) {
		rep.Invalid(err)
	} else {
		rep.Unexpected(err.Error())
	}
	return ExitFail
}
