package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"workboard/internal/model"
)

func strPtr(s string) *string { return &s }

// seed builds one workspace -> space -> list and selects each level.
func seed(t *testing.T, s *Store) (model.Workspace, model.Space, model.List) {
	t.Helper()
	ws, err := s.CreateWorkspace(WorkspaceInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	sp, err := s.CreateSpace(ws.ID, SpaceInput{Name: "Engineering", Color: model.ColorBlue})
	if err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}
	if err := s.SelectSpace(sp.ID); err != nil {
		t.Fatalf("SelectSpace: %v", err)
	}
	l, err := s.CreateList(sp.ID, ListInput{Name: "Sprint 1"})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if err := s.SelectList(l.ID); err != nil {
		t.Fatalf("SelectList: %v", err)
	}
	return ws, sp, l
}

func TestCreateWorkspace_SelectsItAndStampsTimes(t *testing.T) {
	s := New(Options{})
	ws, err := s.CreateWorkspace(WorkspaceInput{Name: "  Acme  "})
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	if ws.Name != "Acme" {
		t.Fatalf("expected trimmed name, got %q", ws.Name)
	}
	if !ws.CreatedAt.Equal(ws.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v vs %v", ws.CreatedAt, ws.UpdatedAt)
	}
	if got := s.Selection().WorkspaceID; got != ws.ID {
		t.Fatalf("expected current workspace %q, got %q", ws.ID, got)
	}
}

func TestCreate_ValidatesInput(t *testing.T) {
	s := New(Options{})
	if _, err := s.CreateWorkspace(WorkspaceInput{Name: "   "}); !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(s.Workspaces()) != 0 {
		t.Fatalf("expected no workspaces after failed create")
	}
	ws, _ := s.CreateWorkspace(WorkspaceInput{Name: "w"})
	if _, err := s.CreateSpace(ws.ID, SpaceInput{Name: "s", Color: "teal"}); !IsValidation(err) {
		t.Fatalf("expected ValidationError for color, got %v", err)
	}
}

func TestCreate_UnknownParentIsNotFound(t *testing.T) {
	s := New(Options{})
	_, err := s.CreateSpace("ws-missing", SpaceInput{Name: "x"})
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "workspace" || nf.ID != "ws-missing" {
		t.Fatalf("expected workspace NotFoundError, got %v", err)
	}
	if _, err := s.CreateTask("", TaskInput{Title: "x"}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestExampleScenario_TaskWithDefaults(t *testing.T) {
	s := New(Options{})
	_, sp, l := seed(t, s)
	task, err := s.CreateTask("", TaskInput{Title: "Write proposal"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ListID != l.ID || task.Status != model.StatusTodo || task.Priority != model.PriorityNormal {
		t.Fatalf("unexpected task: %+v", task)
	}

	tasks, err := s.TasksInSpace(sp.ID)
	if err != nil {
		t.Fatalf("TasksInSpace: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("expected one task in space, got %+v", tasks)
	}

	tree := s.Tree()
	if len(tree) != 1 || len(tree[0].Spaces) != 1 || len(tree[0].Spaces[0].Lists) != 1 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}
	if got := tree[0].Spaces[0].Lists[0].Tasks[0].Title; got != "Write proposal" {
		t.Fatalf("expected task in tree, got %q", got)
	}
}

func TestUpdateTask_MergesPatchAndAdvancesUpdatedAt(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(Options{Now: func() time.Time { return fixed }})
	_, _, l := seed(t, s)
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	orig, err := s.CreateTask(l.ID, TaskInput{Title: "t", Description: "keep me", Tags: []string{"a"}, DueDate: &due})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	st := model.StatusInProgress
	got, err := s.UpdateTask(l.ID, orig.ID, TaskPatch{Status: &st})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if got.Status != model.StatusInProgress {
		t.Fatalf("expected status in-progress, got %q", got.Status)
	}
	if !got.UpdatedAt.After(orig.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance with a frozen clock: %v vs %v", got.UpdatedAt, orig.UpdatedAt)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("createdAt changed")
	}

	// Everything but status and updatedAt is untouched.
	got.Status = orig.Status
	got.UpdatedAt = orig.UpdatedAt
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("patch touched other fields:\n got=%+v\nwant=%+v", got, orig)
	}
}

func TestUpdateTask_NormalizesLegacyStatus(t *testing.T) {
	s := New(Options{})
	_, _, l := seed(t, s)
	task, _ := s.CreateTask(l.ID, TaskInput{Title: "t", Status: "IN_PROGRESS"})
	if task.Status != model.StatusInProgress {
		t.Fatalf("expected in-progress, got %q", task.Status)
	}
	cancelled := model.TaskStatus("CANCELLED")
	task, err := s.UpdateTask("", task.ID, TaskPatch{Status: &cancelled})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if task.Status != model.StatusBlocked {
		t.Fatalf("expected blocked, got %q", task.Status)
	}
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	s := New(Options{})
	ws, sp, l := seed(t, s)
	if _, err := s.UpdateWorkspace("ws-nope", WorkspacePatch{Name: strPtr("x")}); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := s.UpdateSpace(ws.ID, "spc-nope", SpacePatch{Name: strPtr("x")}); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := s.UpdateList("spc-other", l.ID, ListPatch{Name: strPtr("x")}); !IsNotFound(err) {
		t.Fatalf("expected NotFound for wrong parent, got %v", err)
	}
	before, _ := s.List(l.ID)
	if before.Name != "Sprint 1" {
		t.Fatalf("list changed by failed update: %+v", before)
	}
	if _, err := s.UpdateTask(l.ID, "tsk-nope", TaskPatch{Title: strPtr("x")}); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	_ = sp
}

func TestDeleteSpace_CascadesAndClearsPointers(t *testing.T) {
	s := New(Options{})
	ws, sp, l := seed(t, s)
	task, _ := s.CreateTask(l.ID, TaskInput{Title: "t"})
	sub, _ := s.CreateSubtask(task.ID, TaskInput{Title: "sub"})
	if err := s.SelectTask(task.ID); err != nil {
		t.Fatalf("SelectTask: %v", err)
	}

	// A task elsewhere that depends on the doomed one.
	other, _ := s.CreateSpace(ws.ID, SpaceInput{Name: "Other"})
	otherList, _ := s.CreateList(other.ID, ListInput{Name: "L"})
	keeper, _ := s.CreateTask(otherList.ID, TaskInput{Title: "keeper"})
	if _, err := s.AddDependency(keeper.ID, sub.ID); err != nil {
		t.Fatalf("AddDependency: %v", err)
	}

	if err := s.DeleteSpace(ws.ID, sp.ID); err != nil {
		t.Fatalf("DeleteSpace: %v", err)
	}
	for _, id := range []string{l.ID} {
		if _, err := s.List(id); !IsNotFound(err) {
			t.Fatalf("expected list gone, got %v", err)
		}
	}
	for _, id := range []string{task.ID, sub.ID} {
		if _, err := s.Task(id); !IsNotFound(err) {
			t.Fatalf("expected task %s gone, got %v", id, err)
		}
	}
	sel := s.Selection()
	if sel.WorkspaceID != ws.ID || sel.SpaceID != "" || sel.ListID != "" || sel.TaskID != "" {
		t.Fatalf("unexpected selection after delete: %+v", sel)
	}
	got, _ := s.Task(keeper.ID)
	if len(got.Dependencies) != 0 {
		t.Fatalf("expected dependency pruned, got %v", got.Dependencies)
	}
	w, _ := s.Workspace(ws.ID)
	if !reflect.DeepEqual(w.SpaceIDs, []string{other.ID}) {
		t.Fatalf("expected only other space left, got %v", w.SpaceIDs)
	}
}

func TestDeleteWorkspace_RemovesEverything(t *testing.T) {
	s := New(Options{})
	ws, _, l := seed(t, s)
	if _, err := s.CreateTask(l.ID, TaskInput{Title: "t"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := s.DeleteWorkspace(ws.ID); err != nil {
		t.Fatalf("DeleteWorkspace: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Workspaces)+len(snap.Spaces)+len(snap.Lists)+len(snap.Tasks) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if s.Selection() != (Selection{}) {
		t.Fatalf("expected cleared selection, got %+v", s.Selection())
	}
	if err := s.DeleteWorkspace(ws.ID); !IsNotFound(err) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestSelect_NotFoundLeavesPointerUnchanged(t *testing.T) {
	s := New(Options{})
	ws, sp, _ := seed(t, s)
	if err := s.SelectSpace("spc-nope"); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if got := s.Selection().SpaceID; got != sp.ID {
		t.Fatalf("pointer changed to %q", got)
	}

	// A space from another workspace is not selectable from this one.
	ws2, _ := s.CreateWorkspace(WorkspaceInput{Name: "Second"})
	foreign, _ := s.CreateSpace(ws2.ID, SpaceInput{Name: "Foreign"})
	if err := s.SelectWorkspace(ws.ID); err != nil {
		t.Fatalf("SelectWorkspace: %v", err)
	}
	if err := s.SelectSpace(foreign.ID); !IsNotFound(err) {
		t.Fatalf("expected NotFound for foreign space, got %v", err)
	}
}

func TestSelectWorkspace_ClearsDescendants(t *testing.T) {
	s := New(Options{})
	ws, _, l := seed(t, s)
	task, _ := s.CreateTask(l.ID, TaskInput{Title: "t"})
	_ = s.SelectTask(task.ID)

	ws2, _ := s.CreateWorkspace(WorkspaceInput{Name: "Second"})
	if got := s.Selection(); got != (Selection{WorkspaceID: ws2.ID}) {
		t.Fatalf("expected only workspace selected, got %+v", got)
	}
	if err := s.SelectWorkspace(ws.ID); err != nil {
		t.Fatalf("SelectWorkspace: %v", err)
	}
	if got := s.Selection(); got.SpaceID != "" || got.TaskID != "" {
		t.Fatalf("expected stale pointers cleared, got %+v", got)
	}
}

func TestMoveTask_MovesSubtreeAtomically(t *testing.T) {
	s := New(Options{})
	_, sp, a := seed(t, s)
	b, _ := s.CreateList(sp.ID, ListInput{Name: "B"})
	task, _ := s.CreateTask(a.ID, TaskInput{Title: "t"})
	sub, _ := s.CreateSubtask(task.ID, TaskInput{Title: "sub"})

	moved, err := s.MoveTask(task.ID, a.ID, b.ID)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.ListID != b.ID || !moved.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("unexpected moved task: %+v", moved)
	}
	inA, _ := s.Tasks(a.ID)
	inB, _ := s.Tasks(b.ID)
	if len(inA) != 0 || len(inB) != 1 || inB[0].ID != task.ID {
		t.Fatalf("expected task only in B, got A=%v B=%v", inA, inB)
	}
	gotSub, _ := s.Task(sub.ID)
	if gotSub.ListID != b.ID {
		t.Fatalf("expected subtask to follow, got list %q", gotSub.ListID)
	}
	all, _ := s.TasksInSpace(sp.ID)
	if len(all) != 2 {
		t.Fatalf("expected exactly two tasks in space, got %d", len(all))
	}
}

func TestMoveTask_DetachesSubtask(t *testing.T) {
	s := New(Options{})
	_, sp, a := seed(t, s)
	b, _ := s.CreateList(sp.ID, ListInput{Name: "B"})
	parent, _ := s.CreateTask(a.ID, TaskInput{Title: "p"})
	sub, _ := s.CreateSubtask(parent.ID, TaskInput{Title: "sub"})

	moved, err := s.MoveTask(sub.ID, a.ID, b.ID)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.ParentID != nil {
		t.Fatalf("expected detached subtask, got parent %v", *moved.ParentID)
	}
	p, _ := s.Task(parent.ID)
	if len(p.SubtaskIDs) != 0 {
		t.Fatalf("expected parent without subtasks, got %v", p.SubtaskIDs)
	}
}

func TestMoveTask_DeselectsCurrentTaskLeavingCurrentList(t *testing.T) {
	s := New(Options{})
	_, sp, a := seed(t, s)
	b, _ := s.CreateList(sp.ID, ListInput{Name: "B"})
	task, _ := s.CreateTask(a.ID, TaskInput{Title: "t"})
	if err := s.SelectTask(task.ID); err != nil {
		t.Fatalf("SelectTask: %v", err)
	}

	if _, err := s.MoveTask(task.ID, a.ID, b.ID); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	sel := s.Selection()
	if sel.ListID != a.ID || sel.TaskID != "" {
		t.Fatalf("expected list %s with no task selected; got %+v", a.ID, sel)
	}

	if err := s.SelectList(b.ID); err != nil {
		t.Fatalf("SelectList: %v", err)
	}
	if err := s.SelectTask(task.ID); err != nil {
		t.Fatalf("SelectTask in destination: %v", err)
	}

	// Moving a task that is not current keeps the selection.
	other, _ := s.CreateTask(b.ID, TaskInput{Title: "other"})
	if _, err := s.MoveTask(other.ID, b.ID, a.ID); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if got := s.Selection().TaskID; got != task.ID {
		t.Fatalf("expected %s to stay selected; got %q", task.ID, got)
	}
}

func TestMoveTask_WrongSourceIsNotFound(t *testing.T) {
	s := New(Options{})
	_, sp, a := seed(t, s)
	b, _ := s.CreateList(sp.ID, ListInput{Name: "B"})
	task, _ := s.CreateTask(a.ID, TaskInput{Title: "t"})
	if _, err := s.MoveTask(task.ID, b.ID, a.ID); !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := s.MoveTask(task.ID, a.ID, "lst-nope"); !IsNotFound(err) {
		t.Fatalf("expected NotFound for destination, got %v", err)
	}
	inA, _ := s.Tasks(a.ID)
	if len(inA) != 1 {
		t.Fatalf("failed move changed source list: %v", inA)
	}
}

func TestSetView_ValidatesAndLeavesTreeAlone(t *testing.T) {
	s := New(Options{})
	seed(t, s)
	before := s.Snapshot()
	if s.View() != model.ViewList {
		t.Fatalf("expected default list view, got %q", s.View())
	}
	if err := s.SetView(model.ViewBoard); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	if err := s.SetView("kanban"); !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.View() != model.ViewBoard {
		t.Fatalf("expected board, got %q", s.View())
	}
	after := s.Snapshot()
	after.CurrentView = before.CurrentView
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("SetView changed the tree")
	}
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := New(Options{})
	ws, _, _ := seed(t, s)
	got, _ := s.Workspace(ws.ID)
	got.SpaceIDs[0] = "mutated"
	again, _ := s.Workspace(ws.ID)
	if again.SpaceIDs[0] == "mutated" {
		t.Fatalf("caller mutation leaked into the store")
	}
}
