package tasklist

import (
	"errors"
	"testing"
)

func descriptions(l *TaskList) []string {
	var out []string
	for _, e := range l.Snapshot() {
		out = append(out, e.Description)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	l := New()
	l.Append("first", 1)
	l.Append("second", 9)
	l.Append("", -4)

	if l.Len() != 3 {
		t.Fatalf("expected length 3, got %d", l.Len())
	}

	snap := l.Snapshot()
	want := []Entry{
		{Index: 0, Description: "first", Priority: 1},
		{Index: 1, Description: "second", Priority: 9},
		{Index: 2, Description: "", Priority: -4},
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], snap[i])
		}
	}
}

func TestSnapshot_Empty(t *testing.T) {
	var l TaskList
	snap := l.Snapshot()
	if snap == nil || len(snap) != 0 {
		t.Errorf("expected empty non-nil snapshot, got %#v", snap)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := New()
	l.Append("a", 1)

	snap := l.Snapshot()
	snap[0].Description = "changed"

	if got := l.Snapshot()[0].Description; got != "a" {
		t.Errorf("snapshot mutation leaked into list: %q", got)
	}
}

func TestRemoveAt_EmptyList(t *testing.T) {
	l := New()
	err := l.RemoveAt(0)
	if !errors.Is(err, ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected length 0, got %d", l.Len())
	}
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"equal to length", 3},
		{"negative", -1},
		{"far past end", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			l.Append("a", 1)
			l.Append("b", 2)
			l.Append("c", 3)

			err := l.RemoveAt(tt.index)
			if !errors.Is(err, ErrInvalidIndex) {
				t.Fatalf("expected ErrInvalidIndex, got %v", err)
			}
			if got := descriptions(l); !equalStrings(got, []string{"a", "b", "c"}) {
				t.Errorf("list changed after failed removal: %v", got)
			}
		})
	}
}

func TestRemoveAt_ShiftsLeft(t *testing.T) {
	for k := 0; k < 4; k++ {
		l := New()
		all := []string{"a", "b", "c", "d"}
		for i, d := range all {
			l.Append(d, i)
		}

		if err := l.RemoveAt(k); err != nil {
			t.Fatalf("RemoveAt(%d): unexpected error: %v", k, err)
		}

		var want []string
		want = append(want, all[:k]...)
		want = append(want, all[k+1:]...)

		if l.Len() != 3 {
			t.Errorf("RemoveAt(%d): expected length 3, got %d", k, l.Len())
		}
		if got := descriptions(l); !equalStrings(got, want) {
			t.Errorf("RemoveAt(%d): expected %v, got %v", k, want, got)
		}
		for i, e := range l.Snapshot() {
			if e.Index != i {
				t.Errorf("RemoveAt(%d): entry %d has index %d", k, i, e.Index)
			}
		}
	}
}

func TestRemoveAt_LastRemainingTask(t *testing.T) {
	l := New()
	l.Append("only", 1)

	if err := l.RemoveAt(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(l.RemoveAt(0), ErrEmptyList) {
		t.Error("expected ErrEmptyList after removing the last task")
	}
}

func TestClone_IsIndependent(t *testing.T) {
	l := New()
	l.Append("low", 1)
	l.Append("high", 9)

	c := l.Clone()
	c.Sort(Bubble)
	c.Append("extra", 0)

	if got := descriptions(l); !equalStrings(got, []string{"low", "high"}) {
		t.Errorf("original changed by clone: %v", got)
	}
	if got := descriptions(c); !equalStrings(got, []string{"high", "low", "extra"}) {
		t.Errorf("unexpected clone order: %v", got)
	}
}

func TestEndToEnd_BubbleThenRemove(t *testing.T) {
	l := New()
	l.Append("Write report", 5)
	l.Append("Call client", 9)
	l.Append("Buy milk", 1)

	l.Sort(Bubble)

	want := []Entry{
		{Index: 0, Description: "Call client", Priority: 9},
		{Index: 1, Description: "Write report", Priority: 5},
		{Index: 2, Description: "Buy milk", Priority: 1},
	}
	snap := l.Snapshot()
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("after sort, entry %d: expected %+v, got %+v", i, want[i], snap[i])
		}
	}

	if err := l.RemoveAt(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want = []Entry{
		{Index: 0, Description: "Call client", Priority: 9},
		{Index: 1, Description: "Buy milk", Priority: 1},
	}
	snap = l.Snapshot()
	if len(snap) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(snap))
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("after remove, entry %d: expected %+v, got %+v", i, want[i], snap[i])
		}
	}
}
