package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tracericochet/sampy/internal/config"
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/pkgmgr"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/telemetry"
	"github.com/tracericochet/sampy/internal/templates"
	"github.com/tracericochet/sampy/internal/writer"
)

// RunContext carries per-invocation options. It is passed by value into
// every run; nothing about it outlives the call.
type RunContext struct {
	// AutoConfirm answers every question with its default instead of asking.
	AutoConfirm bool
	// FrameworkCheck decides what happens under AutoConfirm when a tool's
	// framework is missing: config.FrameworkCheckBypass proceeds with a
	// warning, config.FrameworkCheckEnforce aborts the tool.
	FrameworkCheck string
}

// Installer adds packages and runs project commands.
type Installer interface {
	InstallDev(ctx context.Context, pkgs ...string) error
	Install(ctx context.Context, pkgs ...string) error
	Exec(ctx context.Context, name string, args ...string) error
}

var _ Installer = (*pkgmgr.PNPM)(nil)

// Outcome is the terminal state of a tool run.
type Outcome int

// Tool outcomes.
const (
	Done Outcome = iota
	Skipped
	Aborted
	InstallFailed
	WriteFailed
	Crashed
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	case Aborted:
		return "aborted"
	case InstallFailed:
		return "install failed"
	case WriteFailed:
		return "write failed"
	case Crashed:
		return "crashed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Failed reports whether the outcome is a failure. Skipped and Aborted are
// deliberate stops, not failures.
func (o Outcome) Failed() bool {
	return o == InstallFailed || o == WriteFailed || o == Crashed
}

// Result summarizes one tool run.
type Result struct {
	Key     Key
	Outcome Outcome
	Changes []writer.Change
	Err     error
}

// Engine runs tools against one project directory.
type Engine struct {
	Dir       string
	Out       *output.Printer
	Asker     prompt.Asker
	Installer Installer
	Templates *templates.Store
}

// Assess probes the project for key without side effects.
func (e *Engine) Assess(key Key) (Assessment, error) {
	d, ok := Lookup(key)
	if !ok {
		return Assessment{}, output.UserErrorf("unknown tool %q", key)
	}
	if _, err := project.ReadManifest(e.Dir); err != nil {
		return Assessment{}, err
	}
	return d.Assess(e.Dir)
}

// Run executes the full workflow for key. Failures are reported through
// Result and the printer; Run never panics.
func (e *Engine) Run(ctx context.Context, rc RunContext, key Key) (res Result) {
	res.Key = key

	ctx, span := telemetry.Tracer().Start(ctx, "tool.run")
	span.SetAttributes(
		attribute.String("sampy.tool", string(key)),
		attribute.Bool("sampy.auto_confirm", rc.AutoConfirm),
	)
	defer func() {
		span.SetAttributes(
			attribute.String("sampy.outcome", res.Outcome.String()),
			attribute.Int("sampy.changes", len(res.Changes)),
		)
		if res.Err != nil {
			span.RecordError(res.Err)
		}
		if res.Outcome.Failed() {
			span.SetStatus(codes.Error, res.Outcome.String())
		}
		span.End()
	}()

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = Crashed
			res.Err = fmt.Errorf("unexpected error in %s: %v", key, r)
			e.Out.Error(res.Err)
		}
	}()

	d, ok := Lookup(key)
	if !ok {
		return e.abort(res, output.UserErrorf("unknown tool %q", key))
	}
	e.Out.Step("Configuring %s...", d.Label)

	// Probing
	manifest, err := project.ReadManifest(e.Dir)
	if err != nil {
		return e.abort(res, err)
	}
	if d.Framework != "" && !frameworkPresent(manifest, d.Framework) {
		proceed, err := e.confirmFramework(rc, d)
		if err != nil {
			return e.abort(res, err)
		}
		if !proceed {
			e.Out.Info("Operation cancelled.")
			res.Outcome = Skipped
			return res
		}
	}
	a, err := d.Assess(e.Dir)
	if err != nil {
		return e.abort(res, err)
	}
	e.Out.Debug("%s: %s", key, a.Level)

	// Confirming
	asker := e.Asker
	if rc.AutoConfirm {
		asker = prompt.Auto{}
	}
	proceed, err := asker.Confirm(prompt.Question{Kind: prompt.Confirm, Name: "proceed", Message: a.Message, Default: a.Default})
	if err != nil {
		return e.abort(res, err)
	}
	if !proceed {
		e.Out.Info("Skipping %s.", d.Label)
		res.Outcome = Skipped
		return res
	}
	answers := prompt.NewAnswers()
	if d.Questions != nil {
		if answers, err = prompt.Run(asker, d.Questions(a)); err != nil {
			return e.abort(res, err)
		}
	}
	env := Env{Dir: e.Dir, Assessment: a, Answers: answers, Templates: e.Templates}

	// Installing
	if d.Install != nil {
		if pkgs := d.Install(env); len(pkgs) > 0 {
			if err := e.install(ctx, d, pkgs); err != nil {
				res.Outcome = InstallFailed
				res.Err = err
				e.Out.Error(err)
				e.Out.Hint("Install manually with: %s", installLine(d, pkgs))
				return res
			}
			e.Out.Success("Installed %s", strings.Join(pkgs, ", "))
		}
	}

	// Writing
	actions, err := d.Actions(env)
	if err != nil {
		res.Outcome = WriteFailed
		res.Err = err
		e.Out.Error(err)
		return res
	}
	for _, act := range actions {
		e.Out.Debug("%s", act.Describe())
		changes, err := act.apply(ctx, e)
		res.Changes = append(res.Changes, changes...)
		for _, c := range changes {
			e.reportChange(c)
		}
		if err != nil {
			res.Outcome = act.failure()
			res.Err = err
			e.Out.Error(err)
			if cmd, ok := act.(Command); ok && cmd.Remedy != "" {
				e.Out.Hint("You can run it manually: %s", cmd.Remedy)
			}
			return res
		}
	}

	// Reporting
	if !anyChanged(res.Changes) && len(actions) > 0 && !hasCommand(actions) {
		e.Out.Info("%s is already up to date.", d.Label)
	} else {
		e.Out.Success("%s setup complete!", d.Label)
	}
	if d.Report != nil {
		d.Report(e.Out, env)
	}
	res.Outcome = Done
	return res
}

func (e *Engine) abort(res Result, err error) Result {
	res.Outcome = Aborted
	res.Err = err
	if errors.Is(err, prompt.ErrAborted) {
		e.Out.Warn("Prompt cancelled.")
		return res
	}
	e.Out.Error(err)
	return res
}

// confirmFramework decides whether to continue without the tool's framework.
func (e *Engine) confirmFramework(rc RunContext, d Descriptor) (bool, error) {
	e.Out.Warn("This does not appear to be a %s project. No %q dependency found in package.json.",
		d.Framework.Label(), frameworkDep(d.Framework))

	if rc.AutoConfirm {
		if rc.FrameworkCheck == config.FrameworkCheckEnforce {
			return false, output.UserErrorf("%s requires a %s project", d.Key, d.Framework.Label())
		}
		e.Out.Warn("Continuing because framework checks are bypassed under auto-confirm.")
		return true, nil
	}
	return e.Asker.Confirm(prompt.Question{Kind: prompt.Confirm, Name: "continue", Message: "Continue anyway?", Default: false})
}

func (e *Engine) install(ctx context.Context, d Descriptor, pkgs []string) error {
	e.Out.Step("Installing %s...", strings.Join(pkgs, " "))
	if d.Runtime {
		return e.Installer.Install(ctx, pkgs...)
	}
	return e.Installer.InstallDev(ctx, pkgs...)
}

func (e *Engine) reportChange(c writer.Change) {
	switch c.Action {
	case writer.Created:
		e.Out.Success("Created %s", c.Path)
	case writer.Updated:
		e.Out.Success("Updated %s", c.Path)
	case writer.Deleted:
		e.Out.Success("Removed %s", c.Path)
	default:
		e.Out.Debug("%s unchanged", c.Path)
	}
}

func installLine(d Descriptor, pkgs []string) string {
	args := []string{"add"}
	if !d.Runtime {
		args = append(args, "-D")
	}
	return pkgmgr.CommandLine(pkgmgr.Binary, append(args, pkgs...)...)
}

func anyChanged(changes []writer.Change) bool {
	for _, c := range changes {
		if c.Changed() {
			return true
		}
	}
	return false
}

func hasCommand(actions []Action) bool {
	for _, a := range actions {
		if _, ok := a.(Command); ok {
			return true
		}
	}
	return false
}

func frameworkDep(f project.Framework) string {
	switch f {
	case project.FrameworkNext:
		return "next"
	case project.FrameworkViteReact:
		return "vite"
	default:
		return "react"
	}
}

func frameworkPresent(m *project.Manifest, f project.Framework) bool {
	return m.Has(frameworkDep(f))
}
