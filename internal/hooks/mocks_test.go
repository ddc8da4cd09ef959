package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

type runCall struct {
	dir  string
	name string
	args []string
}

// mockCommandRunner implements CommandRunner for testing.
type mockCommandRunner struct {
	runFunc     func(ctx context.Context, dir, name string, args ...string) (*CommandOutput, error)
	lookPathErr error
	calls       []runCall
	mu          sync.Mutex
}

func (m *mockCommandRunner) Run(ctx context.Context, dir, name string, args ...string) (*CommandOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, runCall{dir: dir, name: name, args: append([]string(nil), args...)})
	m.mu.Unlock()

	if m.runFunc != nil {
		return m.runFunc(ctx, dir, name, args...)
	}
	return &CommandOutput{}, nil
}

func (m *mockCommandRunner) LookPath(file string) (string, error) {
	if m.lookPathErr != nil {
		return "", m.lookPathErr
	}
	return "/usr/local/bin/" + file, nil
}

func (m *mockCommandRunner) getCalls() []runCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]runCall{}, m.calls...)
}

// exitWith returns a runFunc that exits with code and the given output.
func exitWith(code int, stdout, stderr string) func(context.Context, string, string, ...string) (*CommandOutput, error) {
	return func(context.Context, string, string, ...string) (*CommandOutput, error) {
		out := &CommandOutput{Stdout: []byte(stdout), Stderr: []byte(stderr)}
		if code == 0 {
			return out, nil
		}
		return out, fmt.Errorf("run command: %w", fakeExitError(code))
	}
}

// fakeExitError stands in for *exec.ExitError.
type fakeExitError int

func (e fakeExitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e fakeExitError) ExitCode() int { return int(e) }

type mockWorkingDir struct {
	dir string
	err error
}

func (m mockWorkingDir) Getwd() (string, error) { return m.dir, m.err }

type mockClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (m *mockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now
	m.now = m.now.Add(m.step)
	return t
}

func notFoundErr(name string) error {
	return fmt.Errorf("look path %s: %w", name, &exec.Error{Name: name, Err: exec.ErrNotFound})
}

func testDeps(runner CommandRunner) (*Dependencies, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Dependencies{
		Runner: runner,
		Dir:    mockWorkingDir{dir: "/repo"},
		Clock:  &mockClock{now: time.Unix(0, 0), step: time.Second},
		Stdout: &stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &stdout
}
