package output

import (
	"io"
	"os"
	"slices"
)

// ColorModes lists the accepted values of the --color flag.
var ColorModes = []string{"auto", "always", "never"}

// ParseColorMode validates a --color flag value. Empty means "auto".
func ParseColorMode(mode string) (string, error) {
	if mode == "" {
		return "auto", nil
	}
	if !slices.Contains(ColorModes, mode) {
		return "", UserErrorf("invalid --color value %q (want auto, always or never)", mode)
	}
	return mode, nil
}

// ResolveColorMode determines whether styles are enabled from the --color
// mode and actual TTY detection:
//   - "never":  always disable colors (returns false)
//   - "always": always enable colors (returns true)
//   - "auto":   use the detected isTTY value (default behavior)
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for os.File that is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
