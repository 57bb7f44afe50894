// Package exitcode lists the process exit codes.
package exitcode

const (
	Success = 0

	// UserError covers bad arguments, bad indexes, unknown commands and
	// invalid settings.
	UserError = 1

	// AuthError covers missing credentials and rejected tokens.
	AuthError = 2

	// BackendError covers remote API and network failures.
	BackendError = 3

	// Interrupted is returned when SIGINT or SIGTERM ended the run.
	Interrupted = 130
)
