package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexRequired indicates no task index was provided.
var ErrIndexRequired = errors.New("task index required")

// ParseIndex parses a 0-based task index from the first positional argument.
// Range checking is left to the task list so that out-of-range and negative
// indexes report the same way.
func ParseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrIndexRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	s := strings.TrimSpace(args[0])
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task index: %s", args[0])
	}
	return n, nil
}

// ParsePriority parses a signed integer priority.
func ParsePriority(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid priority: %s", s)
	}
	return n, nil
}
