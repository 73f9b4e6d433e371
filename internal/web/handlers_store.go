package web

import (
	"net/http"

	"workboard/internal/model"
	"workboard/internal/store"
)

// Workspaces

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Workspaces())
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var in store.WorkspaceInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	if u, ok := userFrom(r.Context()); ok && len(in.Members) == 0 {
		in.Members = []string{u.ID}
	}
	ws, err := s.store.CreateWorkspace(in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.Workspace(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleUpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	var p store.WorkspacePatch
	if err := decodeJSON(r, &p); err != nil {
		writeFailure(w, r, err)
		return
	}
	ws, err := s.store.UpdateWorkspace(r.PathValue("id"), p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteWorkspace(r.PathValue("id")); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SelectWorkspace(r.PathValue("id")); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Selection())
}

type memberRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var in memberRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	if _, err := s.auth.User(in.UserID); err != nil {
		writeFailure(w, r, err)
		return
	}
	ws, err := s.store.AddMember(r.PathValue("id"), in.UserID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ws, err := s.store.RemoveMember(r.PathValue("id"), r.PathValue("userID"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// Spaces

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := s.store.Spaces(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spaces)
}

func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	var in store.SpaceInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	sp, err := s.store.CreateSpace(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := s.store.Space(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := s.store.Space(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	var p store.SpacePatch
	if err := decodeJSON(r, &p); err != nil {
		writeFailure(w, r, err)
		return
	}
	sp, err = s.store.UpdateSpace(sp.WorkspaceID, sp.ID, p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := s.store.Space(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := s.store.DeleteSpace(sp.WorkspaceID, sp.ID); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectSpace selects the owning workspace first so a space can be opened from anywhere.
func (s *Server) handleSelectSpace(w http.ResponseWriter, r *http.Request) {
	sp, err := s.store.Space(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := s.store.SelectWorkspace(sp.WorkspaceID); err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := s.store.SelectSpace(sp.ID); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Selection())
}

func (s *Server) handleTasksInSpace(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.TasksInSpace(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Lists

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.Lists(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var in store.ListInput
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	l, err := s.store.CreateList(r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.List(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.List(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	var p store.ListPatch
	if err := decodeJSON(r, &p); err != nil {
		writeFailure(w, r, err)
		return
	}
	l, err = s.store.UpdateList(l.SpaceID, l.ID, p)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.List(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := s.store.DeleteList(l.SpaceID, l.ID); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.List(r.PathValue("id"))
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
	} {
		if err := step(); err != nil {
			writeFailure(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.store.Selection())
}

// Selection, view, tree

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Selection())
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.store.ClearSelection()
	writeJSON(w, http.StatusOK, s.store.Selection())
}

type viewRequest struct {
	View string `json:"view"`
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"view": s.store.View()})
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var in viewRequest
	if err := decodeJSON(r, &in); err != nil {
		writeFailure(w, r, err)
		return
	}
	v, err := model.ParseViewType(in.View)
	if err != nil {
		writeFailure(w, r, store.ValidationError{Field: "view", Reason: err.Error()})
		return
	}
	if err := s.store.SetView(v); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"view": s.store.View()})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Tree())
}
