package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("")
	next := gen.NextFunc()

	if got := next(); got != "res-1" {
		t.Fatalf("expected res-1, got %q", got)
	}
	if got := gen.Next(); got != "res-2" {
		t.Fatalf("expected res-2, got %q", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id from nil generator, got %q", got)
	}
}
