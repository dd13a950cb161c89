package cmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/raphi011/ptable/internal/log"
)

// maxLine bounds a single line of command output.
const maxLine = 1 << 20

// StreamContext runs a command and calls fn for every line it writes to
// stdout, as soon as the line is complete. An error from fn stops the
// command and is returned.
func StreamContext(ctx context.Context, dir, name string, args []string, fn func(line string) error) error {
	log.FromContext(ctx).Debug("exec", "cmd", strings.Join(append([]string{name}, args...), " "), "dir", dir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr
	stdout, err := c.StdoutPipe()
	if err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return err
	}

	fnErr := scanLines(stdout, fn)
	if fnErr != nil {
		cancel()
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := c.Wait()

	if fnErr != nil {
		return fnErr
	}
	if waitErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return waitErr
	}
	return nil
}

func scanLines(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
