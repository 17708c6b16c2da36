// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Commands run with a context and are traced through the context logger in
// verbose mode. Failures are reported as [*ExitError], which carries the exit
// code and trimmed stderr so callers can tell "key not found" style exits
// apart from real failures.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, repoPath, "git", "rev-parse", "HEAD")
//	var exitErr *cmd.ExitError
//	if errors.As(err, &exitErr) && exitErr.Code == 1 {
//	    // handle the documented exit code
//	}
//
// dlcmd shells out to git rather than using a Go git library so that it reads
// repositories exactly the way the review server's git does.
package cmd
