// Package exitcode defines process exit codes for the todo CLI.
package exitcode

const (
	// Success indicates successful completion, including no-op completes.
	Success = 0

	// Failure indicates a runtime failure: unknown task id or file I/O.
	Failure = 1

	// Usage indicates bad arguments: unknown command, missing or non-integer id.
	Usage = 2
)
