package util

import "testing"

func TestSeededSequencesRepeat(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		ca, cb := Cell(a, 8), Cell(b, 8)
		if ca != cb {
			t.Fatalf("draw %d: %v != %v", i, ca, cb)
		}
		if ca.Row < 0 || ca.Row >= 8 || ca.Col < 0 || ca.Col >= 8 {
			t.Fatalf("draw %d off board: %v", i, ca)
		}
	}
}
