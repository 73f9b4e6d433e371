package store

// Selection holds the current-entity pointers, one per level.
// Each pointer is empty or names an entity present in the store.
type Selection struct {
	WorkspaceID string `json:"currentWorkspaceId,omitempty"`
	SpaceID     string `json:"currentSpaceId,omitempty"`
	ListID      string `json:"currentListId,omitempty"`
	TaskID      string `json:"currentTaskId,omitempty"`
}

func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// SelectWorkspace makes id current. Switching workspaces clears the space, list and task pointers.
func (s *Store) SelectWorkspace(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[id]; !ok {
		return NotFoundError{Kind: "workspace", ID: id}
	}
	if s.cur.WorkspaceID == id {
		return nil
	}
	s.cur = Selection{WorkspaceID: id}
	s.changedLocked()
	return nil
}

// SelectSpace makes id current; it must belong to the current workspace.
func (s *Store) SelectSpace(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.spaces[id]
	if !ok || s.cur.WorkspaceID == "" || sp.WorkspaceID != s.cur.WorkspaceID {
		return NotFoundError{Kind: "space", ID: id, Parent: s.cur.WorkspaceID}
	}
	if s.cur.SpaceID == id {
		return nil
	}
	s.cur.SpaceID = id
	s.cur.ListID = ""
	s.cur.TaskID = ""
	s.changedLocked()
	return nil
}

// SelectList makes id current; it must belong to the current space.
func (s *Store) SelectList(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok || s.cur.SpaceID == "" || l.SpaceID != s.cur.SpaceID {
		return NotFoundError{Kind: "list", ID: id, Parent: s.cur.SpaceID}
	}
	if s.cur.ListID == id {
		return nil
	}
	s.cur.ListID = id
	s.cur.TaskID = ""
	s.changedLocked()
	return nil
}

// SelectTask makes id current; it must belong to the current list (subtasks included).
func (s *Store) SelectTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || s.cur.ListID == "" || t.ListID != s.cur.ListID {
		return NotFoundError{Kind: "task", ID: id, Parent: s.cur.ListID}
	}
	if s.cur.TaskID == id {
		return nil
	}
	s.cur.TaskID = id
	s.changedLocked()
	return nil
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == (Selection{}) {
		return
	}
	s.cur = Selection{}
	s.changedLocked()
}

// repairSelectionLocked empties pointers that no longer resolve, and those below an emptied level.
func (s *Store) repairSelectionLocked() {
	if _, ok := s.workspaces[s.cur.WorkspaceID]; !ok {
		s.cur = Selection{}
		return
	}
	if sp, ok := s.spaces[s.cur.SpaceID]; !ok || sp.WorkspaceID != s.cur.WorkspaceID {
		s.cur.SpaceID, s.cur.ListID, s.cur.TaskID = "", "", ""
		return
	}
	if l, ok := s.lists[s.cur.ListID]; !ok || l.SpaceID != s.cur.SpaceID {
		s.cur.ListID, s.cur.TaskID = "", ""
		return
	}
	if t, ok := s.tasks[s.cur.TaskID]; !ok || t.ListID != s.cur.ListID {
		s.cur.TaskID = ""
	}
}
