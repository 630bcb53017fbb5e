package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
)

const (
	minimalGlobalCSS = tailwindImport + ";\n"

	minimalNextPage = `export default function Home () {
  return (
    <main className="p-6">
      <h1 className="text-3xl font-bold">Let's do this</h1>
    </main>
  );
}
`

	minimalReactApp = `function App() {
  return (
    <main className="p-6 bg-black h-screen">
      <h1 className="text-3xl font-bold p-6 bg-gradient-to-r from-violet-700 to-blue-500 rounded-xl text-white shadow-2xl">
        Let&apos;s do this
      </h1>
    </main>
  );
}

export default App;
`
)

// ErrNoAppDir is returned by next-clean when neither app/ nor pages/ exists.
var ErrNoAppDir = output.NewUserError("could not find app or pages directory, make sure this is a Next.js project")

var (
	reactStyles = []string{"src/App.css", "src/index.css"}
	reactApps   = []string{"src/App.tsx", "src/App.jsx"}
	viteAssets  = []string{"src/assets/react.svg", "src/assets/vite.svg", "public/vite.svg"}
)

func nextClean() Descriptor {
	return Descriptor{
		Key:         NextClean,
		Description: "Clean up boilerplate from a Next.js application",
		Label:       "Next.js cleanup",
		Group:       GroupCleanup,
		Framework:   project.FrameworkNext,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{Deps: []string{"next"}})
			if err != nil {
				return Assessment{}, err
			}
			var css, page string
			switch {
			case project.IsDir(dir, "app"):
				css = project.Find(dir, "app/globals.css", "app/global.css")
				page = project.Find(dir, "app/page.tsx", "app/page.jsx", "app/page.js")
			case project.IsDir(dir, "pages"):
				css = project.Find(dir, "styles/globals.css", "styles/global.css")
				page = project.Find(dir, "pages/index.tsx", "pages/index.jsx", "pages/index.js")
			default:
				return Assessment{}, ErrNoAppDir
			}
			facts := Facts{"css": css, "page": page}
			lvl := level(css == "" || matches(dir, css, minimalGlobalCSS), page == "" || matches(dir, page, minimalNextPage))
			return assess(state, facts, lvl, [3]string{
				"Do you want to clean up the default Next.js boilerplate?",
				"Some Next.js boilerplate remains. Do you want to clean it up?",
				"The Next.js boilerplate is already cleaned up. Do you want to run the cleanup again?",
			}), nil
		},

		Questions: func(Assessment) []prompt.Question {
			return []prompt.Question{
				{Kind: prompt.Confirm, Name: "clearCss", Message: "Clear out the global CSS file?", Default: true},
				{Kind: prompt.Confirm, Name: "simplifyPage", Message: "Replace the main page with a basic component?", Default: true},
			}
		},

		Actions: func(env Env) ([]Action, error) {
			facts := env.Assessment.Facts
			var actions []Action
			if env.Answers.Bool("clearCss") && facts.Has("css") {
				actions = append(actions, literal(facts["css"], minimalGlobalCSS))
			}
			if env.Answers.Bool("simplifyPage") && facts.Has("page") {
				actions = append(actions, literal(facts["page"], minimalNextPage))
			}
			return actions, nil
		},

		Report: func(p *output.Printer, env Env) {
			facts := env.Assessment.Facts
			if env.Answers.Bool("clearCss") && !facts.Has("css") {
				p.Hint("Could not find a global CSS file to clean up.")
			}
			if env.Answers.Bool("simplifyPage") && !facts.Has("page") {
				p.Hint("Could not find a main page file to simplify.")
			}
		},
	}
}

func reactClean() Descriptor {
	return Descriptor{
		Key:         ReactClean,
		Description: "Clean up boilerplate from a Vite React application",
		Label:       "Vite React cleanup",
		Group:       GroupCleanup,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{Deps: []string{"vite", "react"}})
			if err != nil {
				return Assessment{}, err
			}
			app := project.Find(dir, reactApps...)
			facts := Facts{"app": app}
			checks := []bool{app == "" || matches(dir, app, minimalReactApp)}
			for _, f := range reactStyles {
				checks = append(checks, !project.Exists(dir, f) || matches(dir, f, ""))
			}
			for _, f := range viteAssets {
				checks = append(checks, !project.Exists(dir, f))
			}
			return assess(state, facts, level(checks...), [3]string{
				"Do you want to clean up the default Vite React boilerplate?",
				"Do you want to clean up the default Vite React boilerplate?",
				"The Vite React boilerplate is already cleaned up. Do you want to run the cleanup again?",
			}), nil
		},

		Actions: func(env Env) ([]Action, error) {
			var actions []Action
			for _, f := range reactStyles {
				if project.Find(env.Dir, f) != "" {
					actions = append(actions, literal(f, ""))
				}
			}
			if app := env.Assessment.Facts["app"]; app != "" {
				actions = append(actions, literal(app, minimalReactApp))
			}
			for _, f := range viteAssets {
				actions = append(actions, remove(f))
			}
			return actions, nil
		},

		Report: func(p *output.Printer, env Env) {
			if !env.Assessment.Facts.Has("app") {
				p.Hint("Could not find src/App.tsx or src/App.jsx to simplify.")
			}
			p.Hint("You may want to run `sampy tailwind-react` so the new classes are styled.")
		},
	}
}

// matches reports whether rel exists under dir with exactly content. An
// empty rel never matches.
func matches(dir, rel, content string) bool {
	if rel == "" {
		return false
	}
	_, got, ok := project.Match(dir, project.Candidate{Path: rel})
	return ok && got == content
}
