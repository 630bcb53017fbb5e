// Package pkgmgr runs the project's package manager (pnpm) and other
// interactive project commands.
package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tracericochet/sampy/internal/output"
)

// Runner executes one external command in dir.
// A nil error means the command exited with status zero.
type Runner interface {
	Run(ctx context.Context, dir, name string, args []string) error
}

// CmdRunner runs commands with the process's standard streams attached so
// interactive prompts of the child reach the user directly.
type CmdRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args. Cancellation of ctx is detached: a started
// child always runs to completion.
func (r CmdRunner) Run(ctx context.Context, dir, name string, args []string) error {
	cmd := exec.CommandContext(context.WithoutCancel(ctx), name, args...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if r.Stdin != nil {
		cmd.Stdin = r.Stdin
	}
	if r.Stdout != nil {
		cmd.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	}
	return cmd.Run()
}

var _ Runner = CmdRunner{}

// Binary is the package manager executable.
const Binary = "pnpm"

// PNPM installs packages into the project at Dir.
type PNPM struct {
	Dir    string
	Runner Runner
}

// New returns a PNPM bound to dir using the real process runner.
func New(dir string) *PNPM {
	return &PNPM{Dir: dir, Runner: CmdRunner{}}
}

// InstallDev adds pkgs as development dependencies. An empty list is a no-op.
func (p *PNPM) InstallDev(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"add", "-D"}, pkgs...)
	args = append(args, "--prefer-offline")
	return p.run(ctx, Binary, args)
}

// Install adds pkgs as runtime dependencies. An empty list is a no-op.
func (p *PNPM) Install(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	return p.run(ctx, Binary, append([]string{"add"}, pkgs...))
}

// Exec runs an arbitrary command in the project directory, for example
// "pnpm husky init" or "npx shadcn@latest init".
func (p *PNPM) Exec(ctx context.Context, name string, args ...string) error {
	return p.run(ctx, name, args)
}

func (p *PNPM) run(ctx context.Context, name string, args []string) error {
	runner := p.Runner
	if runner == nil {
		runner = CmdRunner{}
	}

	err := runner.Run(ctx, p.Dir, name, args)
	if err == nil {
		return nil
	}

	line := CommandLine(name, args...)
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("%s not found: ensure %s is installed and in PATH", name, name), err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("%s exited with status %d", line, exitErr.ExitCode()), err)
	}
	return output.NewSystemErrorWithCause(line+" failed", err)
}

// CommandLine renders a command for messages and remedies.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
