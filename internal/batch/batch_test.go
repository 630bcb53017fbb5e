package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tracericochet/sampy/internal/config"
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/prompt/prompttest"
	"github.com/tracericochet/sampy/internal/telemetry"
	"github.com/tracericochet/sampy/internal/tool"
)

// fakeRunner returns scripted outcomes and records every run.
type fakeRunner struct {
	outcomes map[tool.Key]tool.Outcome
	panics   map[tool.Key]bool
	ran      []tool.Key
	contexts []tool.RunContext
}

func (f *fakeRunner) Run(_ context.Context, rc tool.RunContext, key tool.Key) tool.Result {
	f.ran = append(f.ran, key)
	f.contexts = append(f.contexts, rc)
	if f.panics[key] {
		panic("boom")
	}
	return tool.Result{Key: key, Outcome: f.outcomes[key]}
}

func newBatch(t *testing.T, manifest string) (*Batch, *fakeRunner, *prompttest.Scripted, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	if manifest != "" {
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	runner := &fakeRunner{}
	asker := &prompttest.Scripted{}
	b := &Batch{
		Dir:      dir,
		Out:      output.NewPrinter(&buf, false),
		Asker:    asker,
		Tools:    runner,
		Settings: config.Defaults(),
	}
	return b, runner, asker, &buf
}

const nextManifest = `{"dependencies":{"next":"15","react":"19"}}`

func TestChoices(t *testing.T) {
	values := func(cs []prompt.Choice) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Value)
		}
		return out
	}
	checked := func(cs []prompt.Choice) []string {
		return prompt.Question{Choices: cs}.DefaultValues()
	}

	tests := []struct {
		framework   project.Framework
		wantValues  []string
		wantChecked []string
	}{
		{
			framework: project.FrameworkNext,
			wantValues: []string{
				"next-clean", "prettier", "eslint-next", "tailwind-next", "shadcn-next",
				"zustand", "vitest", "commitlint", "changelog", "next-themes",
			},
			wantChecked: []string{"next-clean", "prettier", "eslint-next", "tailwind-next"},
		},
		{
			framework: project.FrameworkViteReact,
			wantValues: []string{
				"react-clean", "prettier", "eslint-react", "tailwind-react", "shadcn-react",
				"zustand", "vitest", "commitlint", "changelog",
			},
			wantChecked: []string{"react-clean", "prettier", "eslint-react", "tailwind-react"},
		},
		{
			framework: project.FrameworkReact,
			wantValues: []string{
				"prettier", "eslint-react", "tailwind-react", "shadcn-react",
				"zustand", "vitest", "commitlint", "changelog",
			},
			wantChecked: []string{"prettier", "eslint-react", "tailwind-react"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.framework.String(), func(t *testing.T) {
			got := Choices(tt.framework)
			if diff := cmp.Diff(tt.wantValues, values(got)); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantChecked, checked(got)); diff != "" {
				t.Errorf("checked (-want +got):\n%s", diff)
			}
			for _, c := range got {
				if _, err := tool.ParseKey(c.Value); err != nil {
					t.Errorf("choice %q is not a tool: %v", c.Value, err)
				}
			}
		})
	}
}

func TestRun_UnknownFramework(t *testing.T) {
	for name, manifest := range map[string]string{
		"no manifest":   "",
		"no react deps": `{"dependencies":{"express":"4"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			b, runner, asker, buf := newBatch(t, manifest)

			sum, err := b.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if sum.Framework != project.FrameworkUnknown {
				t.Errorf("framework = %v", sum.Framework)
			}
			if len(runner.ran) != 0 || len(asker.Asked) != 0 {
				t.Errorf("ran %v, asked %v", runner.ran, asker.Asked)
			}
			if !strings.Contains(buf.String(), "Could not detect framework") {
				t.Errorf("output:\n%s", buf.String())
			}
			entries, _ := os.ReadDir(b.Dir)
			want := 0
			if manifest != "" {
				want = 1
			}
			if len(entries) != want {
				t.Errorf("dir has %d entries, want %d", len(entries), want)
			}
		})
	}
}

func TestRun_MalformedManifest(t *testing.T) {
	b, runner, _, _ := newBatch(t, `{"dependencies":`)

	_, err := b.Run(context.Background())
	if got := output.GetExitCode(err); got != output.ExitSystemError {
		t.Errorf("exit code = %d (%v), want %d", got, err, output.ExitSystemError)
	}
	if len(runner.ran) != 0 {
		t.Errorf("ran %v", runner.ran)
	}
}

func TestRun_NothingSelected(t *testing.T) {
	b, runner, asker, buf := newBatch(t, nextManifest)
	asker.Lists = map[string][]string{"tools": {}}

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(runner.ran) != 0 {
		t.Errorf("ran %v", runner.ran)
	}
	if !strings.Contains(buf.String(), "No tools selected. Exiting.") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestRun_FailureDoesNotStopBatch(t *testing.T) {
	tests := []struct {
		name     string
		strict   bool
		wantCode int
	}{
		{name: "default", wantCode: output.ExitSuccess},
		{name: "strict exit", strict: true, wantCode: output.ExitSystemError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, runner, asker, buf := newBatch(t, nextManifest)
			b.Settings.StrictExit = tt.strict
			asker.Lists = map[string][]string{"tools": {"prettier", "eslint-next", "zustand", "vitest"}}
			runner.outcomes = map[tool.Key]tool.Outcome{tool.ESLintNext: tool.InstallFailed}
			runner.panics = map[tool.Key]bool{tool.Zustand: true}

			sum, err := b.Run(context.Background())

			if got := output.GetExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d (%v), want %d", got, err, tt.wantCode)
			}
			want := []tool.Key{tool.Prettier, tool.ESLintNext, tool.Zustand, tool.Vitest}
			if diff := cmp.Diff(want, runner.ran); diff != "" {
				t.Errorf("ran (-want +got):\n%s", diff)
			}
			outcomes := make([]tool.Outcome, 0, len(sum.Results))
			for _, r := range sum.Results {
				outcomes = append(outcomes, r.Outcome)
			}
			if diff := cmp.Diff([]tool.Outcome{tool.Done, tool.InstallFailed, tool.Crashed, tool.Done}, outcomes); diff != "" {
				t.Errorf("outcomes (-want +got):\n%s", diff)
			}
			for _, s := range []string{"[2/4] Running eslint-next...", "Continuing with remaining tools", "unexpected error in zustand"} {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output missing %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestRun_FreshAutoConfirmContext(t *testing.T) {
	b, runner, asker, _ := newBatch(t, nextManifest)
	b.Settings.FrameworkCheck = config.FrameworkCheckEnforce
	asker.Lists = map[string][]string{"tools": {"prettier", "next-themes"}}

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := tool.RunContext{AutoConfirm: true, FrameworkCheck: config.FrameworkCheckEnforce}
	for i, rc := range runner.contexts {
		if rc != want {
			t.Errorf("run %d context = %+v, want %+v", i, rc, want)
		}
	}
	// Only the tool selection is asked; tools run under auto-confirm.
	if diff := cmp.Diff([]string{"tools"}, asker.Asked); diff != "" {
		t.Errorf("asked (-want +got):\n%s", diff)
	}
}

func TestRun_DefaultSelection(t *testing.T) {
	b, runner, _, buf := newBatch(t, `{"devDependencies":{"vite":"6","@vitejs/plugin-react":"4"}}`)

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []tool.Key{tool.ReactClean, tool.Prettier, tool.ESLintReact, tool.TailwindReact}
	if diff := cmp.Diff(want, runner.ran); diff != "" {
		t.Errorf("ran (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "All selected tools have been processed!") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestRun_Span(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	restore := telemetry.SetTracerProvider(tp)
	defer restore()

	b, _, asker, _ := newBatch(t, nextManifest)
	asker.Lists = map[string][]string{"tools": {"prettier"}}
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = tp.Shutdown(context.Background())

	spans := exp.GetSpans()
	if len(spans) != 1 || spans[0].Name != "batch.run" {
		t.Fatalf("spans = %v, want one batch.run", spans)
	}
	attrs := make(map[string]string)
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["sampy.framework"] != "next" || attrs["sampy.tools"] != "1" {
		t.Errorf("attributes = %v", attrs)
	}
}
