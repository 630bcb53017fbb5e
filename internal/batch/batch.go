// Package batch runs several tools in one pass: `sampy install`.
package batch

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tracericochet/sampy/internal/config"
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/telemetry"
	"github.com/tracericochet/sampy/internal/tool"
)

// Runner runs one tool. *tool.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, rc tool.RunContext, key tool.Key) tool.Result
}

var _ Runner = (*tool.Engine)(nil)

// Batch is the interactive installer.
type Batch struct {
	Dir      string
	Out      *output.Printer
	Asker    prompt.Asker
	Tools    Runner
	Settings config.Settings
}

// Summary is the outcome of a batch.
type Summary struct {
	Framework project.Framework
	Results   []tool.Result
}

// Failed returns the results whose outcome is a failure.
func (s Summary) Failed() []tool.Result {
	var out []tool.Result
	for _, r := range s.Results {
		if r.Outcome.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Choices builds the tool menu for a framework. Cleanup comes first and is
// offered only for its own framework.
func Choices(f project.Framework) []prompt.Choice {
	next := f == project.FrameworkNext
	pick := func(n, r tool.Key) string {
		if next {
			return string(n)
		}
		return string(r)
	}

	var choices []prompt.Choice
	switch f {
	case project.FrameworkNext:
		choices = append(choices, prompt.Choice{Label: "Clean Next.js boilerplate", Value: string(tool.NextClean), Checked: true})
	case project.FrameworkViteReact:
		choices = append(choices, prompt.Choice{Label: "Clean Vite React boilerplate", Value: string(tool.ReactClean), Checked: true})
	}
	choices = append(choices,
		prompt.Choice{Label: "Prettier (code formatting)", Value: string(tool.Prettier), Checked: true},
		prompt.Choice{Label: "ESLint (linting)", Value: pick(tool.ESLintNext, tool.ESLintReact), Checked: true},
		prompt.Choice{Label: "Tailwind CSS (styling)", Value: pick(tool.TailwindNext, tool.TailwindReact), Checked: true},
		prompt.Choice{Label: "shadcn/ui (components)", Value: pick(tool.ShadcnNext, tool.ShadcnReact)},
		prompt.Choice{Label: "Zustand (state management)", Value: string(tool.Zustand)},
		prompt.Choice{Label: "Vitest (testing)", Value: string(tool.Vitest)},
		prompt.Choice{Label: "Commitlint (commit conventions)", Value: string(tool.Commitlint)},
		prompt.Choice{Label: "Changelog (automatic changelogs)", Value: string(tool.Changelog)},
	)
	if next {
		choices = append(choices, prompt.Choice{Label: "Next Themes (dark mode)", Value: string(tool.NextThemes)})
	}
	return choices
}

// Run detects the framework, asks which tools to run and runs them in
// selection order under auto-confirm. A failing tool never stops the batch.
// The returned error is non-nil only for a malformed manifest or, with
// strict_exit, when any tool failed.
func (b *Batch) Run(ctx context.Context) (sum Summary, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "batch.run")
	defer func() {
		span.SetAttributes(
			attribute.String("sampy.framework", sum.Framework.String()),
			attribute.Int("sampy.tools", len(sum.Results)),
			attribute.Int("sampy.failed", len(sum.Failed())),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	b.Out.Print("Welcome to sampy install all!\n")

	framework, err := project.DetectFramework(b.Dir)
	if err != nil {
		return sum, err
	}
	sum.Framework = framework
	b.Out.Info("Detected framework: %s", framework)

	if framework == project.FrameworkUnknown {
		b.Out.Warn("Could not detect framework. Make sure you're in a React/Next.js project directory.")
		return sum, nil
	}

	keys, err := b.selectTools(framework)
	if errors.Is(err, prompt.ErrAborted) {
		b.Out.Warn("Prompt cancelled.")
		return sum, nil
	}
	if err != nil {
		return sum, err
	}
	if len(keys) == 0 {
		b.Out.Info("No tools selected. Exiting.")
		return sum, nil
	}

	b.Out.Success("Installing %d tools...", len(keys))
	for i, key := range keys {
		b.Out.Step("[%d/%d] Running %s...", i+1, len(keys), key)
		b.Out.Rule()
		res := b.runOne(ctx, key)
		if res.Outcome.Failed() {
			b.Out.Warn("Error running %s. Continuing with remaining tools...", key)
		}
		sum.Results = append(sum.Results, res)
		b.Out.Rule()
	}

	b.report(sum)

	if failed := sum.Failed(); len(failed) > 0 && b.Settings.StrictExit {
		return sum, output.SystemErrorf("%d of %d tools failed", len(failed), len(sum.Results))
	}
	return sum, nil
}

func (b *Batch) selectTools(f project.Framework) ([]tool.Key, error) {
	values, err := b.Asker.MultiSelect(prompt.Question{
		Kind:    prompt.MultiSelect,
		Name:    "tools",
		Message: "Select tools to install/configure:",
		Choices: Choices(f),
	})
	if err != nil {
		return nil, err
	}
	keys := make([]tool.Key, 0, len(values))
	for _, v := range values {
		k, err := tool.ParseKey(v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// runOne runs key with a fresh auto-confirm context and turns a panic into
// a crashed result.
func (b *Batch) runOne(ctx context.Context, key tool.Key) (res tool.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = tool.Result{Key: key, Outcome: tool.Crashed, Err: fmt.Errorf("unexpected error in %s: %v", key, r)}
			b.Out.Error(res.Err)
		}
	}()
	rc := tool.RunContext{AutoConfirm: true, FrameworkCheck: b.Settings.FrameworkCheck}
	return b.Tools.Run(ctx, rc, key)
}

func (b *Batch) report(sum Summary) {
	b.Out.Section("Summary")
	rows := make([][]string, 0, len(sum.Results))
	for _, r := range sum.Results {
		rows = append(rows, []string{string(r.Key), r.Outcome.String()})
	}
	b.Out.Table([]string{"Tool", "Outcome"}, rows)

	if n := len(sum.Failed()); n > 0 {
		b.Out.Warn("%d tool(s) failed. Scroll up for details.", n)
		return
	}
	b.Out.Success("All selected tools have been processed!")
	b.Out.Info("Your project is ready to go! Happy coding!")
}
