// Package output provides console output and error handling for the sampy CLI.
//
// # Printer
//
// Every tool command reports through a Printer, which renders lipgloss styles
// on terminals and plain text when piped:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), output.IsTTY(cmd.OutOrStdout()))
//	printer.Step("Installing Prettier...")
//	printer.Success("Created .prettierrc")
//	printer.Hint("Run pnpm format to format the project")
//	printer.Warn("could not find global CSS file to clean up")
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, unknown tool)
//	output.ExitSystemError // 2: System error (malformed manifest, I/O error)
//
// Errors created with NewUserError, NewSystemError and
// NewSystemErrorWithCause carry their exit code; GetExitCode recovers it at
// the process boundary.
package output
