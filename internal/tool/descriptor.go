// Package tool implements sampy's tool commands.
//
// Every tool is a Descriptor: static data plus pure functions that turn a
// probe of the project into questions, packages to install and an ordered
// list of actions. Engine.Run drives a descriptor through
// probe, confirm, install, write and report.
package tool

import (
	"context"
	"fmt"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/pkgmgr"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/templates"
	"github.com/tracericochet/sampy/internal/writer"
)

// Group names used by the CLI help.
const (
	GroupSetup   = "setup"
	GroupCleanup = "cleanup"
)

// Level is how far a tool is already configured.
type Level int

// Configuration levels.
const (
	NotConfigured Level = iota
	Partial
	Configured
)

func (l Level) String() string {
	switch l {
	case Partial:
		return "partial"
	case Configured:
		return "configured"
	default:
		return "not configured"
	}
}

// Facts carries named paths found while probing, e.g. "css" ->
// "app/globals.css". An empty value means the fact was checked and absent.
type Facts map[string]string

// Has reports whether the named fact was found.
func (f Facts) Has(name string) bool { return f[name] != "" }

// Assessment is the result of probing a project for one tool.
type Assessment struct {
	Level Level
	// Message is the proceed question shown to the user.
	Message string
	// Default answers Message under auto-confirm.
	Default bool
	State   project.State
	Facts   Facts
}

// Env is everything a descriptor's later stages see.
type Env struct {
	Dir        string
	Assessment Assessment
	Answers    prompt.Answers
	Templates  *templates.Store
}

// Descriptor defines one tool. Descriptors are built fresh by Lookup and
// never mutated.
type Descriptor struct {
	Key         Key
	Description string
	Label       string
	Group       string
	// Packages is the full dependency set the tool manages.
	Packages []string
	// Runtime installs Packages as dependencies instead of devDependencies.
	Runtime bool
	// Framework, when set, must be detected or the user is asked to continue.
	Framework project.Framework

	// Assess probes the project. An error is a precondition failure.
	Assess func(dir string) (Assessment, error)
	// Questions follow the proceed confirmation. May be nil.
	Questions func(Assessment) []prompt.Question
	// Install returns the packages still to add; nil means none.
	Install func(Env) []string
	// Actions returns the ordered steps after installation.
	Actions func(Env) ([]Action, error)
	// Report prints next steps after a successful run. May be nil.
	Report func(*output.Printer, Env)
}

// Action is one step of a tool's write phase.
type Action interface {
	// Describe is a one-line summary for verbose output.
	Describe() string
	apply(ctx context.Context, e *Engine) ([]writer.Change, error)
	failure() Outcome
}

// Write applies a file mutation.
type Write struct {
	writer.Mutation
}

// Describe implements Action.
func (w Write) Describe() string {
	return fmt.Sprintf("%s %s", w.Mode, w.Path)
}

func (w Write) apply(_ context.Context, e *Engine) ([]writer.Change, error) {
	c, err := writer.Apply(e.Dir, w.Mutation)
	if err != nil {
		return nil, err
	}
	return []writer.Change{c}, nil
}

func (Write) failure() Outcome { return WriteFailed }

// Command runs an external project command with the terminal attached.
type Command struct {
	Name string
	Args []string
	// Remedy is printed when the command fails.
	Remedy string
}

// Describe implements Action.
func (c Command) Describe() string {
	return pkgmgr.CommandLine(c.Name, c.Args...)
}

func (c Command) apply(ctx context.Context, e *Engine) ([]writer.Change, error) {
	e.Out.Step("Running %s", c.Describe())
	return nil, e.Installer.Exec(ctx, c.Name, c.Args...)
}

func (Command) failure() Outcome { return InstallFailed }

// literal builds a Write that replaces path with content.
func literal(path, content string) Write {
	return Write{writer.Mutation{Path: path, Mode: writer.Literal, Content: content}}
}

// scripts builds a Write that merges package.json scripts in order.
func scripts(pairs ...string) Write {
	fields := make([]writer.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, writer.Field{Key: pairs[i], Value: pairs[i+1]})
	}
	return Write{writer.Mutation{Path: project.ManifestFile, Mode: writer.ScriptsMerge, Fields: fields}}
}

// remove builds a Write that deletes path.
func remove(path string) Write {
	return Write{writer.Mutation{Path: path, Mode: writer.Delete}}
}

// prependOnce builds a Write that prepends content unless marker is present.
func prependOnce(path, content, marker string) Write {
	return Write{writer.Mutation{Path: path, Mode: writer.PrependOnce, Content: content, Marker: marker}}
}
