package store

import "workboard/internal/model"

// CreateWorkspace adds a workspace and makes it current.
func (s *Store) CreateWorkspace(in WorkspaceInput) (model.Workspace, error) {
	name, err := checkName("name", in.Name, maxNameLen)
	if err != nil {
		return model.Workspace{}, err
	}
	if err := checkDescription(in.Description); err != nil {
		return model.Workspace{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.nextIDLocked(prefixWorkspace)
	if err != nil {
		return model.Workspace{}, err
	}
	now := s.stamp(timeZero)
	ws := &model.Workspace{
		ID:          id,
		Name:        name,
		Description: in.Description,
		Members:     cleanStrings(in.Members),
		SpaceIDs:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.workspaces[id] = ws
	s.order = append(s.order, id)
	s.cur = Selection{WorkspaceID: id}
	s.changedLocked()
	return ws.Clone(), nil
}

func (s *Store) UpdateWorkspace(id string, p WorkspacePatch) (model.Workspace, error) {
	var name string
	if p.Name != nil {
		n, err := checkName("name", *p.Name, maxNameLen)
		if err != nil {
			return model.Workspace{}, err
		}
		name = n
	}
	if p.Description != nil {
		if err := checkDescription(*p.Description); err != nil {
			return model.Workspace{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return model.Workspace{}, NotFoundError{Kind: "workspace", ID: id}
	}
	if p.empty() {
		return ws.Clone(), nil
	}
	if p.Name != nil {
		ws.Name = name
	}
	if p.Description != nil {
		ws.Description = *p.Description
	}
	if p.Members != nil {
		ws.Members = cleanStrings(*p.Members)
	}
	ws.UpdatedAt = s.stamp(ws.UpdatedAt)
	s.changedLocked()
	return ws.Clone(), nil
}

// DeleteWorkspace removes the workspace and everything under it.
func (s *Store) DeleteWorkspace(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[id]; !ok {
		return NotFoundError{Kind: "workspace", ID: id}
	}
	removed := map[string]bool{}
	s.removeWorkspaceLocked(id, removed)
	s.afterRemoveLocked(removed)
	return nil
}

func (s *Store) AddMember(workspaceID, userID string) (model.Workspace, error) {
	if userID == "" {
		return model.Workspace{}, ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return model.Workspace{}, NotFoundError{Kind: "workspace", ID: workspaceID}
	}
	for _, m := range ws.Members {
		if m == userID {
			return ws.Clone(), nil
		}
	}
	ws.Members = append(ws.Members, userID)
	ws.UpdatedAt = s.stamp(ws.UpdatedAt)
	s.changedLocked()
	return ws.Clone(), nil
}

func (s *Store) RemoveMember(workspaceID, userID string) (model.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return model.Workspace{}, NotFoundError{Kind: "workspace", ID: workspaceID}
	}
	n := len(ws.Members)
	ws.Members = removeID(ws.Members, userID)
	if len(ws.Members) == n {
		return model.Workspace{}, NotFoundError{Kind: "member", ID: userID, Parent: workspaceID}
	}
	ws.UpdatedAt = s.stamp(ws.UpdatedAt)
	s.changedLocked()
	return ws.Clone(), nil
}

func (s *Store) Workspaces() []model.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Workspace, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workspaces[id].Clone())
	}
	return out
}

func (s *Store) Workspace(id string) (model.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return model.Workspace{}, NotFoundError{Kind: "workspace", ID: id}
	}
	return ws.Clone(), nil
}
