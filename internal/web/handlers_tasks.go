package web

import (
	"net/http"

	"workboard/internal/store"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.Tasks(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in store.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.CreateTask(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Task(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var p store.TaskPatch
	if err := decodeJSON(r, &p); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.UpdateTask("", r.PathValue("id"), p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask("", r.PathValue("id")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectTask walks the selection down to the task's list before selecting it.
func (s *Server) handleSelectTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Task(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	l, err := s.store.List(t.ListID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sp, err := s.store.Space(l.SpaceID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	for _, step := range []func() error{
		func() error { return s.store.SelectWorkspace(sp.WorkspaceID) },
		func() error { return s.store.SelectSpace(sp.ID) },
		func() error { return s.store.SelectList(l.ID) },
		func() error { return s.store.SelectTask(t.ID) },
	} {
		if err := step(); err != nil {
			writeFailure(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.store.Selection())
}

type moveRequest struct {
	FromListID string `json:"fromListId,omitempty"`
	ToListID   string `json:"toListId"`
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	var in moveRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	id := r.PathValue("id")
	if in.FromListID == "" {
		t, err := s.store.Task(id)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		in.FromListID = t.ListID
	}
	t, err := s.store.MoveTask(id, in.FromListID, in.ToListID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListSubtasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.Subtasks(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateSubtask(w http.ResponseWriter, r *http.Request) {
	var in store.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.CreateSubtask(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var in store.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	if u, ok := userFrom(r.Context()); ok {
		in.CreatedBy = u.ID
	}
	t, err := s.store.AddComment(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleAddChecklist(w http.ResponseWriter, r *http.Request) {
	var in store.ChecklistInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.AddChecklist(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type checklistItemRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

func (s *Server) handleSetChecklistItem(w http.ResponseWriter, r *http.Request) {
	var in checklistItemRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.SetChecklistItem(r.PathValue("id"), r.PathValue("checklistID"), r.PathValue("itemID"), in.IsCompleted)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddCustomField(w http.ResponseWriter, r *http.Request) {
	var in store.CustomFieldInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.AddCustomField(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type timeRequest struct {
	TimeSpent int `json:"timeSpent"`
}

func (s *Server) handleUpdateTime(w http.ResponseWriter, r *http.Request) {
	var in timeRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.UpdateTimeTracking(r.PathValue("id"), in.TimeSpent)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type dependencyRequest struct {
	DependsOn string `json:"dependsOn"`
}

func (s *Server) handleAddDependency(w http.ResponseWriter, r *http.Request) {
	var in dependencyRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.AddDependency(r.PathValue("id"), in.DependsOn)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type attachmentRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAddAttachment(w http.ResponseWriter, r *http.Request) {
	var in attachmentRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	t, err := s.store.AddAttachment(r.PathValue("id"), in.URL)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
