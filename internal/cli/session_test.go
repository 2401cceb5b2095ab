package cli

import "testing"

func TestResolveSessionID(t *testing.T) {
	if got := resolveSessionID("evening-chat"); got != "evening-chat" {
		t.Errorf("explicit session ID not kept: %q", got)
	}

	first := resolveSessionID("")
	second := resolveSessionID("")
	if first == "" || second == "" {
		t.Fatal("expected generated session IDs")
	}
	if first == second {
		t.Errorf("generated session IDs should differ, both %q", first)
	}
}
