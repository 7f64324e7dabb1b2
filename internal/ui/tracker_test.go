package ui

import "testing"

func TestRequestTracker_InOrder(t *testing.T) {
	var tr requestTracker

	g1 := tr.next()
	if !tr.pending() {
		t.Error("pending() = false after next()")
	}
	if !tr.complete(g1) {
		t.Error("complete(g1) = false, want true")
	}
	if tr.pending() {
		t.Error("pending() = true after the only chain completed")
	}
}

func TestRequestTracker_OutOfOrder(t *testing.T) {
	var tr requestTracker

	slow := tr.next()
	fast := tr.next()

	if !tr.complete(fast) {
		t.Fatal("complete(fast) = false, want true")
	}
	if !tr.stale(slow) {
		t.Error("stale(slow) = false after a newer chain completed")
	}
	if tr.complete(slow) {
		t.Error("complete(slow) = true, a stale response must be discarded")
	}
	if tr.applied != fast {
		t.Errorf("applied = %d, want %d", tr.applied, fast)
	}
}

func TestRequestTracker_OlderCompletesWhileNewerInFlight(t *testing.T) {
	var tr requestTracker

	first := tr.next()
	second := tr.next()

	if !tr.complete(first) {
		t.Error("complete(first) = false; nothing newer has completed yet")
	}
	if !tr.pending() {
		t.Error("pending() = false while the second chain is in flight")
	}
	if !tr.complete(second) {
		t.Error("complete(second) = false, want true")
	}
}
