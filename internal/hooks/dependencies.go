package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/Veraticus/wiz-iac/internal/output"
)

// CommandOutput holds the separately captured streams of a finished command.
type CommandOutput struct {
	Stdout []byte
	Stderr []byte
}

// CommandRunner executes external commands.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*CommandOutput, error)
	LookPath(file string) (string, error)
}

// WorkingDir resolves the directory a scan runs in when none is configured.
type WorkingDir interface {
	Getwd() (string, error)
}

// Clock provides time operations.
type Clock interface {
	Now() time.Time
}

// OutputWriter writes output to various destinations.
type OutputWriter interface {
	io.Writer
}

// Dependencies holds all external dependencies.
type Dependencies struct {
	Runner CommandRunner
	Dir    WorkingDir
	Clock  Clock
	Stdout OutputWriter
	Logger *slog.Logger
	Color  bool
}

// Production implementations

type realCommandRunner struct{}

// Run starts name in dir and blocks until it exits. The child stays in the
// caller's process group so killing the hook kills the scan.
func (r *realCommandRunner) Run(ctx context.Context, dir, name string, args ...string) (*CommandOutput, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := &CommandOutput{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return out, fmt.Errorf("run command %s: %w", name, err)
	}
	return out, nil
}

func (r *realCommandRunner) LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return "", fmt.Errorf("look path %s: %w", file, err)
	}
	return path, nil
}

type osWorkingDir struct{}

func (osWorkingDir) Getwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

type realClock struct{}

func (r *realClock) Now() time.Time {
	return time.Now()
}

// NewDefaultDependencies creates production dependencies.
func NewDefaultDependencies() *Dependencies {
	return &Dependencies{
		Runner: &realCommandRunner{},
		Dir:    osWorkingDir{},
		Clock:  &realClock{},
		Stdout: os.Stdout,
		Logger: slog.Default(),
		Color:  output.IsTerminal(os.Stdout),
	}
}

// withDefaults fills any nil dependency with its production implementation.
func (d *Dependencies) withDefaults() *Dependencies {
	def := NewDefaultDependencies()
	if d == nil {
		return def
	}
	out := *d
	if out.Runner == nil {
		out.Runner = def.Runner
	}
	if out.Dir == nil {
		out.Dir = def.Dir
	}
	if out.Clock == nil {
		out.Clock = def.Clock
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
		out.Color = def.Color
	}
	if out.Logger == nil {
		out.Logger = def.Logger
	}
	return &out
}

func (d *Dependencies) reporter() *output.Reporter {
	return output.NewReporter(d.Stdout, d.Color)
}
