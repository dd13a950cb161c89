// Package cmd runs external commands for ptable.
//
// Commands are started with a context so that Ctrl-C stops them. Stderr is
// captured and becomes the error message when the command fails, which
// keeps failures readable for users.
//
// # Usage
//
//	err := cmd.StreamContext(ctx, "", "python", []string{"train.py"}, func(line string) error {
//	    return handle(line)
//	})
//
// Lines are delivered while the command is still running, so a table fed
// from them updates live.
package cmd
