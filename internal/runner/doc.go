// Package runner executes external tools (the transfer tool, git, pip and
// free-form setup commands) as blocking subprocesses. Output is streamed to
// the configured writers; a non-zero exit is reported as a *ProcessError and
// never retried.
package runner
