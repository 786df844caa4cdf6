package sim

import (
	"strconv"
	"testing"
)

func TestLogBufferKeepsNewestLines(t *testing.T) {
	b := NewLogBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Append("line " + strconv.Itoa(i))
	}
	got := b.Tail(10)
	want := []string{"line 3", "line 4", "line 5"}
	if len(got) != len(want) {
		t.Fatalf("Tail returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tail[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLogBufferTailLimit(t *testing.T) {
	b := NewLogBuffer(5)
	b.Append("only")
	if got := b.Tail(3); len(got) != 1 || got[0] != "only" {
		t.Errorf("Tail = %v", got)
	}
	if got := NewLogBuffer(2).Tail(4); len(got) != 0 {
		t.Errorf("Tail of empty buffer = %v", got)
	}
}
