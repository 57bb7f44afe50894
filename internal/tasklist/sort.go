package tasklist

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the comparison sorts.
type Algorithm int

const (
	Bubble Algorithm = iota
	Selection
	Insertion
)

// Algorithms lists every supported algorithm in menu order.
var Algorithms = []Algorithm{Bubble, Selection, Insertion}

// String returns the display name, e.g. "Bubble Sort".
func (a Algorithm) String() string {
	switch a {
	case Bubble:
		return "Bubble Sort"
	case Selection:
		return "Selection Sort"
	case Insertion:
		return "Insertion Sort"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Key returns the lowercase name accepted by ParseAlgorithm.
func (a Algorithm) Key() string {
	switch a {
	case Bubble:
		return "bubble"
	case Selection:
		return "selection"
	case Insertion:
		return "insertion"
	default:
		return ""
	}
}

// ParseAlgorithm resolves a name or single-letter alias (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bubble", "b":
		return Bubble, nil
	case "selection", "s":
		return Selection, nil
	case "insertion", "i":
		return Insertion, nil
	default:
		return 0, fmt.Errorf("unknown sort algorithm: %s", name)
	}
}

func (a Algorithm) sortFunc() func([]Task) {
	switch a {
	case Selection:
		return SelectionSort
	case Insertion:
		return InsertionSort
	default:
		return BubbleSort
	}
}

// BubbleSort sorts tasks in place by descending priority.
// Adjacent tasks are swapped only when the left one has strictly lower
// priority, so equal priorities keep their input order.
func BubbleSort(tasks []Task) {
	n := len(tasks)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if tasks[j].Priority < tasks[j+1].Priority {
				tasks[j], tasks[j+1] = tasks[j+1], tasks[j]
				swapped = true
			}
		}
		// A pass without swaps means the rest is already in order.
		if !swapped {
			return
		}
	}
}

// SelectionSort sorts tasks in place by descending priority.
// The first maximum found wins on ties; the sort is not stable.
func SelectionSort(tasks []Task) {
	n := len(tasks)
	for i := 0; i < n-1; i++ {
		maxIndex := i
		for j := i + 1; j < n; j++ {
			if tasks[j].Priority > tasks[maxIndex].Priority {
				maxIndex = j
			}
		}
		tasks[i], tasks[maxIndex] = tasks[maxIndex], tasks[i]
	}
}

// InsertionSort sorts tasks in place by descending priority.
// Stable on ties.
func InsertionSort(tasks []Task) {
	for i := 1; i < len(tasks); i++ {
		key := tasks[i]
		j := i - 1
		for j >= 0 && tasks[j].Priority < key.Priority {
			tasks[j+1] = tasks[j]
			j--
		}
		tasks[j+1] = key
	}
}
