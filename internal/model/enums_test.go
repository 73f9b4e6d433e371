package model

import "testing"

func TestParseTaskStatus_AcceptsBothVocabularies(t *testing.T) {
	cases := map[string]TaskStatus{
		"":            StatusTodo,
		"TODO":        StatusTodo,
		"todo":        StatusTodo,
		"IN_PROGRESS": StatusInProgress,
		"in-progress": StatusInProgress,
		"review":      StatusReview,
		"COMPLETED":   StatusCompleted,
		"CANCELLED":   StatusBlocked,
		" blocked ":   StatusBlocked,
	}
	for in, want := range cases {
		got, err := ParseTaskStatus(in)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTaskStatus(%q): expected %q; got %q", in, want, got)
		}
	}
	if _, err := ParseTaskStatus("someday"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestParseViewType_RejectsUnknown(t *testing.T) {
	if v, err := ParseViewType("Board"); err != nil || v != ViewBoard {
		t.Fatalf("ParseViewType(Board): got (%q, %v)", v, err)
	}
	if _, err := ParseViewType("kanban"); err == nil {
		t.Fatalf("expected error for kanban")
	}
	if _, err := ParseViewType(""); err == nil {
		t.Fatalf("expected error for empty view")
	}
}

func TestParsePriorityAndColor_Defaults(t *testing.T) {
	if p, err := ParsePriority(""); err != nil || p != PriorityNormal {
		t.Fatalf("ParsePriority(\"\"): got (%q, %v)", p, err)
	}
	if c, err := ParseSpaceColor(""); err != nil || c != ColorPurple {
		t.Fatalf("ParseSpaceColor(\"\"): got (%q, %v)", c, err)
	}
	if _, err := ParseSpaceColor("teal"); err == nil {
		t.Fatalf("expected error for teal")
	}
}

func TestTaskClone_DoesNotAlias(t *testing.T) {
	parent := "tsk-parent"
	orig := Task{
		ID:         "tsk-1",
		ParentID:   &parent,
		Tags:       []string{"a"},
		Checklists: []Checklist{{ID: "chk-1", Items: []ChecklistItem{{ID: "cki-1"}}}},
	}
	cp := orig.Clone()
	cp.Tags[0] = "b"
	cp.Checklists[0].Items[0].IsCompleted = true
	*cp.ParentID = "other"

	if orig.Tags[0] != "a" {
		t.Fatalf("tags aliased")
	}
	if orig.Checklists[0].Items[0].IsCompleted {
		t.Fatalf("checklist items aliased")
	}
	if *orig.ParentID != "tsk-parent" {
		t.Fatalf("parent id aliased")
	}
}
