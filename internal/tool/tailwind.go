package tool

import (
	"regexp"
	"strings"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
)

const (
	postcssConfigFile = "postcss.config.mjs"
	tailwindPrepend   = tailwindImport + ";\n\n"

	postcssConfig = `const config = {
  plugins: {
    "@tailwindcss/postcss": {},
  },
};

export default config;
`

	viteConfig = `import { defineConfig } from 'vite';
import tailwindcss from '@tailwindcss/vite';

export default defineConfig({
  plugins: [
    tailwindcss(),
  ],
});
`

	vitePluginImport = "import tailwindcss from '@tailwindcss/vite';\n"
)

var (
	postcssConfigs = []string{"postcss.config.js", "postcss.config.mjs", "postcss.config.ts"}
	viteConfigs    = []string{"vite.config.js", "vite.config.ts", "vite.config.mjs"}

	nextStylesheets  = []string{"src/app/globals.css", "app/globals.css", "styles/globals.css", "src/styles/globals.css"}
	reactStylesheets = []string{"src/index.css", "src/App.css", "src/main.css", "src/styles/globals.css", "index.css"}

	importLine   = regexp.MustCompile(`(?m)^import\s.*from\s*['"][^'"]*['"];?[ \t]*\r?\n`)
	pluginsStart = regexp.MustCompile(`plugins:\s*\[`)
)

var tailwindMessages = [3]string{
	"Do you want to install and configure Tailwind CSS v4.0?",
	"Tailwind CSS is partially set up for v4.0. Do you want to complete the setup?",
	"Tailwind CSS v4.0 appears to be fully configured. Do you want to reconfigure it?",
}

func tailwindNext() Descriptor {
	pkgs := []string{"tailwindcss", "@tailwindcss/postcss", "postcss"}
	return Descriptor{
		Key:         TailwindNext,
		Description: "Configure Tailwind CSS v4.0 for Next.js projects",
		Label:       "Tailwind CSS",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("@tailwindcss/postcss", postcssConfigs...),
				Deps:       []string{"tailwindcss"},
			})
			if err != nil {
				return Assessment{}, err
			}
			css, _, _ := project.Match(dir, candidates(tailwindImport, nextStylesheets...)...)
			facts := Facts{"plugin": state.ConfigPath, "css": css}
			lvl := level(state.Has("tailwindcss"), state.Found(), css != "")
			return assess(state, facts, lvl, tailwindMessages), nil
		},

		Install: func(env Env) []string {
			if env.Assessment.State.Has("tailwindcss") {
				return nil
			}
			return pkgs
		},

		Actions: func(env Env) ([]Action, error) {
			a := env.Assessment
			var actions []Action
			if !a.Facts.Has("plugin") || a.Level == Configured {
				actions = append(actions, literal(postcssConfigFile, postcssConfig))
			}
			if !a.Facts.Has("css") {
				actions = append(actions, prependOnce(nextStylesheet(env.Dir), tailwindPrepend, tailwindImport))
			}
			return actions, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("You can now use Tailwind classes in your components:")
			p.Code(`<div className="bg-blue-500 text-white p-4 rounded-lg">Hello Tailwind!</div>`)
			p.Hint("To customize your theme, add an @theme block to your CSS file:")
			p.Code("@theme {\n  --color-primary: #3b82f6;\n  --font-display: \"Inter\", sans-serif;\n}")
		},
	}
}

// nextStylesheet picks the global stylesheet to patch: an existing one, or
// globals.css in whichever app directory exists.
func nextStylesheet(dir string) string {
	if found := project.Find(dir, nextStylesheets[:3]...); found != "" {
		return found
	}
	if project.IsDir(dir, "app") {
		return "app/globals.css"
	}
	return "src/app/globals.css"
}

func tailwindReact() Descriptor {
	pkgs := []string{"tailwindcss", "@tailwindcss/vite"}
	return Descriptor{
		Key:         TailwindReact,
		Description: "Configure Tailwind CSS v4.0 for React projects (Vite)",
		Label:       "Tailwind CSS",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("@tailwindcss/vite", viteConfigs...),
				Deps:       pkgs,
			})
			if err != nil {
				return Assessment{}, err
			}
			css, _, _ := project.Match(dir, candidates(tailwindImport, reactStylesheets...)...)
			facts := Facts{
				"vite": project.Find(dir, viteConfigs...),
				"css":  css,
			}
			if state.Found() || state.Has("@tailwindcss/vite") {
				facts["plugin"] = "@tailwindcss/vite"
			}
			lvl := level(state.Has("tailwindcss"), facts.Has("plugin"), css != "")
			return assess(state, facts, lvl, tailwindMessages), nil
		},

		Install: func(env Env) []string {
			if env.Assessment.State.Has("tailwindcss") {
				return nil
			}
			return pkgs
		},

		Actions: func(env Env) ([]Action, error) {
			a := env.Assessment
			var actions []Action
			if !a.Facts.Has("plugin") || a.Level == Configured {
				if path := a.Facts["vite"]; path != "" {
					if w, ok := patchViteAction(env.Dir, path); ok {
						actions = append(actions, w)
					}
				} else {
					actions = append(actions, literal("vite.config.js", viteConfig))
				}
			}
			if !a.Facts.Has("css") {
				target := project.Find(env.Dir, reactStylesheets[:3]...)
				if target == "" {
					target = "src/index.css"
				}
				actions = append(actions, prependOnce(target, tailwindPrepend, tailwindImport))
			}
			return actions, nil
		},

		Report: func(p *output.Printer, env Env) {
			if vite := env.Assessment.Facts["vite"]; vite != "" {
				if _, _, ok := project.Match(env.Dir, project.Candidate{Path: vite, Pattern: "tailwindcss()"}); !ok {
					p.Warn("Could not find a plugins array to patch in %s. Add the plugin manually:", vite)
					p.Code(vitePluginImport + "\nexport default defineConfig({\n  plugins: [tailwindcss()],\n});")
				}
			}
			p.Hint("You can now use Tailwind classes in your components:")
			p.Code(`<div className="bg-blue-500 text-white p-4 rounded-lg">Hello Tailwind!</div>`)
			p.Hint("Make sure your main component imports the stylesheet:")
			p.Code(`import "./index.css"`)
		},
	}
}

// patchViteAction returns a Write for the patched Vite config, or false when
// the config already references the plugin or cannot be patched safely.
func patchViteAction(dir, path string) (Write, bool) {
	_, content, ok := project.Match(dir, project.Candidate{Path: path})
	if !ok || strings.Contains(content, "@tailwindcss/vite") {
		return Write{}, false
	}
	patched, ok := PatchViteConfig(content)
	if !ok {
		return Write{}, false
	}
	return literal(path, patched), true
}

// PatchViteConfig adds the Tailwind Vite plugin import after the last import
// statement and appends tailwindcss() to the first plugins array. It reports
// false, leaving content untouched, when no balanced plugins array is found.
func PatchViteConfig(content string) (string, bool) {
	if strings.Contains(content, "@tailwindcss/vite") && strings.Contains(content, "tailwindcss()") {
		return content, true
	}

	loc := pluginsStart.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	end := closingBracket(content, loc[1])
	if end < 0 {
		return content, false
	}
	if !strings.Contains(content, "tailwindcss()") {
		inner := strings.TrimSpace(content[loc[1]:end])
		inner = strings.TrimSuffix(inner, ",")
		replacement := "plugins: [tailwindcss()]"
		if inner != "" {
			replacement = "plugins: [" + inner + ", tailwindcss()]"
		}
		content = content[:loc[0]] + replacement + content[end+1:]
	}

	if !strings.Contains(content, "@tailwindcss/vite") {
		at := 0
		if locs := importLine.FindAllStringIndex(content, -1); len(locs) > 0 {
			at = locs[len(locs)-1][1]
		}
		content = content[:at] + vitePluginImport + content[at:]
	}
	return content, true
}

// closingBracket returns the index of the ] closing the array whose body
// starts at from, skipping nested brackets, strings and comments. It
// returns -1 when the brackets do not balance.
func closingBracket(src string, from int) int {
	stack := []byte{']'}
	for i := from; i < len(src); i++ {
		switch c := src[i]; c {
		case '\'', '"', '`':
			i = skipString(src, i)
			if i < 0 {
				return -1
			}
		case '/':
			if i+1 >= len(src) {
				continue
			}
			switch src[i+1] {
			case '/':
				n := strings.IndexByte(src[i:], '\n')
				if n < 0 {
					return -1
				}
				i += n
			case '*':
				n := strings.Index(src[i+2:], "*/")
				if n < 0 {
					return -1
				}
				i += n + 3
			}
		case '[':
			stack = append(stack, ']')
		case '(':
			stack = append(stack, ')')
		case '{':
			stack = append(stack, '}')
		case ']', ')', '}':
			if stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}

// skipString returns the index of the quote closing the string opened at
// start, or -1 when it is unterminated.
func skipString(src string, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}
