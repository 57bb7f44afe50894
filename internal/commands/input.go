package commands

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// readLine reads one line without its line ending.
// A final line with no newline is returned with a nil error; the following
// call returns io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readLineContext is readLine that gives up when ctx is cancelled.
// After a cancellation r must not be read again, since the abandoned read
// may still complete.
func readLineContext(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		line, err := readLine(r)
		ch <- result{line, err}
	}()

	select {
	case res := <-ch:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
