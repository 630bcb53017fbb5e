package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tracericochet/sampy/internal/output"
)

// Framework check policies applied when a tool that needs a specific
// framework runs under auto-confirm in a project without it.
const (
	FrameworkCheckBypass  = "bypass"
	FrameworkCheckEnforce = "enforce"
)

// Settings is the user-level configuration read from config.yaml.
type Settings struct {
	// FrameworkCheck is "bypass" (proceed with a warning) or "enforce"
	// (skip the tool) for batch runs outside the expected framework.
	FrameworkCheck string `yaml:"framework_check"`

	// StrictExit makes `sampy install` exit nonzero when any tool failed.
	StrictExit bool `yaml:"strict_exit"`

	// UpdateCheck enables the release notice printed after commands.
	UpdateCheck bool `yaml:"update_check"`

	// TemplatesDir overrides bundled templates file by file.
	TemplatesDir string `yaml:"templates_dir"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		FrameworkCheck: FrameworkCheckBypass,
		UpdateCheck:    true,
	}
}

// Load reads the settings file at File() and applies environment overrides.
// A missing file yields Defaults.
func Load() (Settings, error) {
	return LoadFile(File())
}

// LoadFile reads settings from path (may be empty) and applies environment
// overrides:
//
//	SAMPY_FRAMEWORK_CHECK   bypass | enforce
//	SAMPY_STRICT_EXIT       boolean
//	SAMPY_NO_UPDATE_CHECK   boolean, disables the release notice
//	SAMPY_TEMPLATES_DIR     directory
func LoadFile(path string) (Settings, error) {
	settings := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return Settings{}, output.NewSystemErrorWithCause("invalid config file "+path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return Settings{}, output.NewSystemErrorWithCause("failed to read config file "+path, err)
		}
	}

	if err := applyEnv(&settings); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks enumerated fields.
func (s Settings) Validate() error {
	switch s.FrameworkCheck {
	case FrameworkCheckBypass, FrameworkCheckEnforce:
		return nil
	default:
		return output.UserErrorf("framework_check must be %q or %q, got %q",
			FrameworkCheckBypass, FrameworkCheckEnforce, s.FrameworkCheck)
	}
}

// applyEnv overlays SAMPY_* environment variables onto settings.
func applyEnv(s *Settings) error {
	if v := os.Getenv("SAMPY_FRAMEWORK_CHECK"); v != "" {
		s.FrameworkCheck = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("SAMPY_TEMPLATES_DIR"); v != "" {
		s.TemplatesDir = v
	}

	strict, ok, err := envBool("SAMPY_STRICT_EXIT")
	if err != nil {
		return err
	}
	if ok {
		s.StrictExit = strict
	}

	noUpdate, ok, err := envBool("SAMPY_NO_UPDATE_CHECK")
	if err != nil {
		return err
	}
	if ok && noUpdate {
		s.UpdateCheck = false
	}
	return nil
}

// EnvBool reports the boolean value of an environment variable.
// ok is false when the variable is unset or empty.
func EnvBool(name string) (value, ok bool, err error) {
	return envBool(name)
}

func envBool(name string) (bool, bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, output.UserErrorf("%s must be a boolean, got %q", name, raw)
	}
	return v, true, nil
}
