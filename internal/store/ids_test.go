package store

import (
	"strings"
	"testing"
)

func TestNewRandomID_PrefixAndLength(t *testing.T) {
	id, err := newRandomID(prefixTask)
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "tsk-") {
		t.Fatalf("expected tsk prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "tsk-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected id suffix len %d, got %d (%q)", want, got, suffix)
	}
	if suffix != strings.ToLower(suffix) {
		t.Fatalf("expected lower-case suffix, got %q", suffix)
	}
}

func TestNextID_SkipsExisting(t *testing.T) {
	s := New(Options{})
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ws, err := s.CreateWorkspace(WorkspaceInput{Name: "w"})
		if err != nil {
			t.Fatalf("CreateWorkspace: %v", err)
		}
		if seen[ws.ID] {
			t.Fatalf("duplicate id %q", ws.ID)
		}
		seen[ws.ID] = true
	}
}
