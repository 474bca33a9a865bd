package utils

import "testing"

func TestMakeMap(t *testing.T) {
	m := MakeMap("feed_id", "42")

	if len(m) != 1 {
		t.Fatalf("Expected map with one entry, got %d", len(m))
	}
	if m["feed_id"] != "42" {
		t.Errorf("Expected value %q, got %q", "42", m["feed_id"])
	}
}
