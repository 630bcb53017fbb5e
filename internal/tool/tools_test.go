package tool

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		want    Key
		wantErr bool
	}{
		{name: "prettier", want: Prettier},
		{name: "eslint", want: ESLintNext},
		{name: "eslint-react", want: ESLintReact},
		{name: "next-themes", want: NextThemes},
		{name: "webpack", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookup_EveryKey(t *testing.T) {
	seen := make(map[Key]bool)
	for _, k := range Keys() {
		if seen[k] {
			t.Errorf("duplicate key %s", k)
		}
		seen[k] = true

		d, ok := Lookup(k)
		if !ok {
			t.Errorf("Lookup(%s) not found", k)
			continue
		}
		if d.Key != k {
			t.Errorf("Lookup(%s).Key = %s", k, d.Key)
		}
		if d.Description == "" || d.Label == "" || d.Assess == nil || d.Actions == nil {
			t.Errorf("Lookup(%s) incomplete descriptor", k)
		}
		if d.Group != GroupSetup && d.Group != GroupCleanup {
			t.Errorf("Lookup(%s).Group = %q", k, d.Group)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) found")
	}
}

func TestPatchViteConfig(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "default vite template",
			ok:   true,
			in: `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

// https://vite.dev/config/
export default defineConfig({
  plugins: [react()],
})
`,
			want: `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'
import tailwindcss from '@tailwindcss/vite';

// https://vite.dev/config/
export default defineConfig({
  plugins: [react(), tailwindcss()],
})
`,
		},
		{
			name: "multiline plugins with trailing comma",
			ok:   true,
			in: `import { defineConfig } from 'vite';
import react from '@vitejs/plugin-react';

export default defineConfig({
  plugins: [
    react(),
  ],
});
`,
			want: `import { defineConfig } from 'vite';
import react from '@vitejs/plugin-react';
import tailwindcss from '@tailwindcss/vite';

export default defineConfig({
  plugins: [react(), tailwindcss()],
});
`,
		},
		{
			name: "empty plugins",
			in:   "export default {\n  plugins: [],\n}\n",
			want: "import tailwindcss from '@tailwindcss/vite';\nexport default {\n  plugins: [tailwindcss()],\n}\n",
			ok:   true,
		},
		{
			name: "nested arrays and objects",
			in: `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'
import tsconfigPaths from 'vite-tsconfig-paths'

export default defineConfig({
  plugins: [react(), tsconfigPaths({ projects: ['./tsconfig.json'] })],
  resolve: { alias: [{ find: '@', replacement: '/src' }] },
})
`,
			want: `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'
import tsconfigPaths from 'vite-tsconfig-paths'
import tailwindcss from '@tailwindcss/vite';

export default defineConfig({
  plugins: [react(), tsconfigPaths({ projects: ['./tsconfig.json'] }), tailwindcss()],
  resolve: { alias: [{ find: '@', replacement: '/src' }] },
})
`,
			ok: true,
		},
		{
			name: "brackets inside strings and comments",
			in:   "export default {\n  plugins: [\n    // keep ] here\n    svg({ glob: '**/*.svg]' }),\n  ],\n}\n",
			want: "import tailwindcss from '@tailwindcss/vite';\nexport default {\n  plugins: [// keep ] here\n    svg({ glob: '**/*.svg]' }), tailwindcss()],\n}\n",
			ok:   true,
		},
		{
			name: "no plugins array",
			in:   "import { defineConfig } from 'vite'\nexport default defineConfig({})\n",
			want: "import { defineConfig } from 'vite'\nexport default defineConfig({})\n",
		},
		{
			name: "unbalanced plugins array",
			in:   "export default {\n  plugins: [react(),\n}\n",
			want: "export default {\n  plugins: [react(),\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PatchViteConfig(tt.in)
			if ok != tt.ok {
				t.Errorf("PatchViteConfig() ok = %v, want %v", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PatchViteConfig() (-want +got):\n%s", diff)
			}
			if again, _ := PatchViteConfig(got); again != got {
				t.Errorf("PatchViteConfig() not idempotent:\n%s", again)
			}
		})
	}
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"eslint@9":                 "eslint",
		"@next/eslint-plugin-next": "@next/eslint-plugin-next",
		"@scope/pkg@1.2.3":         "@scope/pkg",
		"globals":                  "globals",
	}
	for in, want := range tests {
		if got := packageName(in); got != want {
			t.Errorf("packageName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		checks []bool
		want   Level
	}{
		{[]bool{false, false}, NotConfigured},
		{[]bool{true, false}, Partial},
		{[]bool{true, true}, Configured},
	}
	for _, tt := range tests {
		if got := level(tt.checks...); got != tt.want {
			t.Errorf("level(%v) = %v, want %v", tt.checks, got, tt.want)
		}
	}
}

func TestTailwindReact_PatchesExistingViteConfig(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"react":"19","vite":"6"}}`)
	h.seed(t, "vite.config.ts", "import react from '@vitejs/plugin-react'\n\nexport default {\n  plugins: [react()],\n}\n")
	h.seed(t, "src/index.css", "body { margin: 0; }\n")

	res := h.engine.Run(context.Background(), auto, TailwindReact)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}

	vite := h.read(t, "vite.config.ts")
	if !strings.Contains(vite, "import tailwindcss from '@tailwindcss/vite';") || !strings.Contains(vite, "tailwindcss()]") {
		t.Errorf("vite.config.ts not patched:\n%s", vite)
	}
	if h.exists("vite.config.js") {
		t.Error("vite.config.js created alongside existing config")
	}
	if got, want := h.read(t, "src/index.css"), "@import \"tailwindcss\";\n\nbody { margin: 0; }\n"; got != want {
		t.Errorf("index.css = %q, want %q", got, want)
	}
}

func TestTailwindReact_LeavesUnpatchableViteConfig(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"react":"19","vite":"6"}}`)
	const config = "import react from '@vitejs/plugin-react'\n\nexport default defineConfig(buildConfig([react()]))\n"
	h.seed(t, "vite.config.ts", config)

	res := h.engine.Run(context.Background(), auto, TailwindReact)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if got := h.read(t, "vite.config.ts"); got != config {
		t.Errorf("vite.config.ts modified:\n%s", got)
	}
	if !strings.Contains(h.out.String(), "Add the plugin manually") {
		t.Errorf("missing manual remedy in output:\n%s", h.out.String())
	}
}

func TestTailwindReact_CreatesViteConfig(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"react":"19"}}`)

	res := h.engine.Run(context.Background(), auto, TailwindReact)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if diff := cmp.Diff(viteConfig, h.read(t, "vite.config.js")); diff != "" {
		t.Errorf("vite.config.js (-want +got):\n%s", diff)
	}
	if got := h.read(t, "src/index.css"); got != "@import \"tailwindcss\";\n" {
		t.Errorf("src/index.css = %q", got)
	}
}

func TestTailwindNext_StylesheetTarget(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want string
	}{
		{name: "app router", dirs: []string{"app"}, want: "app/globals.css"},
		{name: "src app", dirs: nil, want: "src/app/globals.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.seed(t, "package.json", `{"dependencies":{"next":"15"}}`)
			for _, d := range tt.dirs {
				if err := os.MkdirAll(filepath.Join(h.dir, d), 0o755); err != nil {
					t.Fatal(err)
				}
			}

			res := h.engine.Run(context.Background(), auto, TailwindNext)
			if res.Outcome != Done {
				t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
			}
			if !h.exists(tt.want) {
				t.Errorf("%s not created", tt.want)
			}
			if diff := cmp.Diff(postcssConfig, h.read(t, postcssConfigFile)); diff != "" {
				t.Errorf("postcss config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestESLint_ReplacesLegacyConfig(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"devDependencies":{"eslint":"8"}}`)
	h.seed(t, ".eslintrc.json", "{}")
	h.seed(t, vscodeSettings, "{\n  \"editor.tabSize\": 2\n}\n")
	h.asker.Bools = map[string]bool{"proceed": true, "vscode": false}

	res := h.engine.Run(context.Background(), RunContext{}, ESLintNext)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if h.exists(".eslintrc.json") {
		t.Error("legacy config not removed")
	}
	if !h.exists(eslintConfigFile) {
		t.Error("flat config not written")
	}
	if got := h.read(t, vscodeSettings); got != "{\n  \"editor.tabSize\": 2\n}\n" {
		t.Errorf("declined vscode settings were modified: %s", got)
	}
	// eslint@9 is not requested when eslint is already a dependency.
	if len(h.installer.calls) != 1 || strings.Contains(h.installer.calls[0], "eslint@9") {
		t.Errorf("installer calls = %v", h.installer.calls)
	}
}

func TestShadcn_Commands(t *testing.T) {
	tests := []struct {
		name  string
		seed  map[string]string
		lists map[string][]string
		want  []string
	}{
		{
			name: "fresh project uses default components",
			want: []string{
				"npx shadcn@latest init --yes",
				"npx shadcn@latest add button --yes",
				"npx shadcn@latest add input --yes",
				"npx shadcn@latest add label --yes",
				"npx shadcn@latest add card --yes",
			},
		},
		{
			name:  "initialized project skips init",
			seed:  map[string]string{"components.json": "{}"},
			lists: map[string][]string{"components": {"dialog"}},
			want:  []string{"npx shadcn@latest add dialog --yes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.seed(t, "package.json", `{"dependencies":{"react":"19"}}`)
			for rel, content := range tt.seed {
				h.seed(t, rel, content)
			}
			h.asker.Lists = tt.lists

			res := h.engine.Run(context.Background(), RunContext{}, ShadcnReact)
			if res.Outcome != Done {
				t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
			}
			if diff := cmp.Diff(tt.want, h.installer.calls); diff != "" {
				t.Errorf("commands (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShadcn_Levels(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"clsx":"2"}}`)
	h.seed(t, "components.json", "{}")
	h.seed(t, "src/components/ui/button.tsx", "export {}")

	a, err := h.engine.Assess(ShadcnNext)
	if err != nil {
		t.Fatal(err)
	}
	if a.Level != Configured || !strings.Contains(a.Message, "add more components") {
		t.Errorf("Assess() = %v %q", a.Level, a.Message)
	}
}

func TestZustand_WritesExampleStore(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"react":"19"}}`)
	h.asker.Values = map[string]string{"location": "src/lib"}

	res := h.engine.Run(context.Background(), RunContext{}, Zustand)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if diff := cmp.Diff([]string{"add zustand"}, h.installer.calls); diff != "" {
		t.Errorf("installer calls (-want +got):\n%s", diff)
	}
	for _, f := range []string{"src/lib/useCounterStore.ts", "src/lib/CounterExample.tsx"} {
		if !h.exists(f) {
			t.Errorf("%s not written", f)
		}
	}
	if diff := cmp.Diff([]string{"proceed", "example", "location"}, h.asker.Asked); diff != "" {
		t.Errorf("questions (-want +got):\n%s", diff)
	}
}

func TestZustand_NoExample(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{}`)
	h.asker.Bools = map[string]bool{"example": false}

	res := h.engine.Run(context.Background(), RunContext{}, Zustand)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if h.exists("src") {
		t.Error("example written after declining")
	}
	if diff := cmp.Diff([]string{"proceed", "example"}, h.asker.Asked); diff != "" {
		t.Errorf("questions (-want +got):\n%s", diff)
	}
}

func TestCommitlint_Hooks(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"name":"app"}`)
	h.installer.exec = func(string, ...string) error {
		h.seed(t, ".husky/pre-commit", "pnpm test\n")
		return nil
	}

	res := h.engine.Run(context.Background(), auto, Commitlint)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if h.exists(".husky/pre-commit") {
		t.Error("pre-commit hook not removed")
	}
	if got := h.read(t, commitMsgHook); !strings.Contains(got, "commitlint --edit") {
		t.Errorf("commit-msg = %q", got)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(h.dir, commitMsgHook))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("commit-msg mode = %v, want 0755", info.Mode().Perm())
		}
	}
	if !strings.Contains(h.read(t, "package.json"), `"prepare": "husky"`) {
		t.Error("prepare script not merged")
	}
}

func TestChangelog_KeepsExistingChangelog(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"name":"app"}`)
	h.seed(t, changelogFile, "# History\n")

	res := h.engine.Run(context.Background(), RunContext{}, Changelog)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if got := h.read(t, changelogFile); got != "# History\n" {
		t.Errorf("CHANGELOG.md overwritten: %q", got)
	}
	for _, q := range h.asker.Asked {
		if q == "changelog" {
			t.Error("asked to create an existing changelog")
		}
	}
	if !h.exists(changelogConfigFile) {
		t.Error(".changelogrc not written")
	}
}

func TestNextThemes_SkipsExistingShadcnParts(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"next":"15"}}`)
	h.seed(t, "components.json", "{}")
	h.seed(t, "components/ui/button.tsx", "export {}")

	res := h.engine.Run(context.Background(), auto, NextThemes)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	want := []string{
		"add -D next-themes tw-animate-css",
		"pnpm dlx shadcn@latest add dropdown-menu",
	}
	if diff := cmp.Diff(want, h.installer.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	for _, f := range []string{themeProviderFile, themeToggleFile} {
		if !h.exists(f) {
			t.Errorf("%s not written", f)
		}
	}
}

func TestNextClean(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"next":"15"}}`)
	h.seed(t, "app/globals.css", ":root { --bg: #fff; }\n")
	h.seed(t, "app/page.tsx", "export default function Home() { return <div/> }\n")

	res := h.engine.Run(context.Background(), auto, NextClean)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if got := h.read(t, "app/globals.css"); got != minimalGlobalCSS {
		t.Errorf("globals.css = %q", got)
	}
	if got := h.read(t, "app/page.tsx"); got != minimalNextPage {
		t.Errorf("page.tsx = %q", got)
	}

	a, err := h.engine.Assess(NextClean)
	if err != nil {
		t.Fatal(err)
	}
	if a.Level != Configured {
		t.Errorf("level after cleanup = %v, want configured", a.Level)
	}
}

func TestNextClean_PagesRouter(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"next":"15"}}`)
	h.seed(t, "pages/index.jsx", "old\n")
	h.asker.Bools = map[string]bool{"clearCss": false}

	res := h.engine.Run(context.Background(), RunContext{}, NextClean)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if got := h.read(t, "pages/index.jsx"); got != minimalNextPage {
		t.Errorf("index.jsx = %q", got)
	}
	if h.exists("styles/globals.css") {
		t.Error("stylesheet created")
	}
}

func TestReactClean(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"dependencies":{"react":"19","vite":"6"}}`)
	h.seed(t, "src/App.css", ".logo { height: 6em; }\n")
	h.seed(t, "src/index.css", ":root { color: red; }\n")
	h.seed(t, "src/App.tsx", "function App() { return null }\n")
	h.seed(t, "src/assets/react.svg", "<svg/>")
	h.seed(t, "public/vite.svg", "<svg/>")

	res := h.engine.Run(context.Background(), auto, ReactClean)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}

	want := map[string]string{
		"package.json":  `{"dependencies":{"react":"19","vite":"6"}}`,
		"src/App.css":   "",
		"src/index.css": "",
		"src/App.tsx":   minimalReactApp,
	}
	if diff := cmp.Diff(want, snapshot(t, h)); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}
	if !strings.Contains(h.out.String(), "sampy tailwind-react") {
		t.Errorf("missing tailwind hint:\n%s", h.out.String())
	}

	// A cleaned project defaults to skipping.
	again := h.engine.Run(context.Background(), auto, ReactClean)
	if again.Outcome != Skipped {
		t.Errorf("second outcome = %v, want skipped", again.Outcome)
	}
}

func TestVitest_ExampleOptional(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "package.json", `{"name":"app"}`)
	h.asker.Bools = map[string]bool{"example": false}

	res := h.engine.Run(context.Background(), RunContext{}, Vitest)
	if res.Outcome != Done {
		t.Fatalf("outcome = %v (%v)", res.Outcome, res.Err)
	}
	if h.exists(exampleTestFile) {
		t.Error("example test written after declining")
	}
	for _, f := range []string{"vitest.config.mts", "vitest.setup.ts"} {
		if !h.exists(f) {
			t.Errorf("%s not written", f)
		}
	}
	manifest := h.read(t, "package.json")
	for _, s := range []string{`"test": "vitest run"`, `"test:coverage": "vitest run --coverage"`} {
		if !strings.Contains(manifest, s) {
			t.Errorf("package.json missing %s:\n%s", s, manifest)
		}
	}
}
