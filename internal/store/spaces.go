package store

import (
	"fmt"

	"workboard/internal/model"
)

// CreateSpace appends a space to workspaceID, or to the current workspace when empty.
func (s *Store) CreateSpace(workspaceID string, in SpaceInput) (model.Space, error) {
	name, err := checkName("name", in.Name, maxNameLen)
	if err != nil {
		return model.Space{}, err
	}
	color, err := checkSpaceColor(in.Color)
	if err != nil {
		return model.Space{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if workspaceID == "" {
		if workspaceID = s.cur.WorkspaceID; workspaceID == "" {
			return model.Space{}, fmt.Errorf("%w: workspace", ErrNoSelection)
		}
	}
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return model.Space{}, NotFoundError{Kind: "workspace", ID: workspaceID}
	}
	id, err := s.nextIDLocked(prefixSpace)
	if err != nil {
		return model.Space{}, err
	}
	now := s.stamp(timeZero)
	sp := &model.Space{
		ID:          id,
		WorkspaceID: ws.ID,
		Name:        name,
		Color:       color,
		ListIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.spaces[id] = sp
	ws.SpaceIDs = append(ws.SpaceIDs, id)
	s.changedLocked()
	return sp.Clone(), nil
}

// UpdateSpace patches a space. A non-empty workspaceID must be the space's parent.
func (s *Store) UpdateSpace(workspaceID, id string, p SpacePatch) (model.Space, error) {
	var name string
	if p.Name != nil {
		n, err := checkName("name", *p.Name, maxNameLen)
		if err != nil {
			return model.Space{}, err
		}
		name = n
	}
	var color model.SpaceColor
	if p.Color != nil {
		c, err := checkSpaceColor(*p.Color)
		if err != nil {
			return model.Space{}, err
		}
		color = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, err := s.spaceLocked(workspaceID, id)
	if err != nil {
		return model.Space{}, err
	}
	if p.empty() {
		return sp.Clone(), nil
	}
	if p.Name != nil {
		sp.Name = name
	}
	if p.Color != nil {
		sp.Color = color
	}
	sp.UpdatedAt = s.stamp(sp.UpdatedAt)
	s.changedLocked()
	return sp.Clone(), nil
}

func (s *Store) DeleteSpace(workspaceID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, err := s.spaceLocked(workspaceID, id)
	if err != nil {
		return err
	}
	ws := s.workspaces[sp.WorkspaceID]
	ws.SpaceIDs = removeID(ws.SpaceIDs, id)
	removed := map[string]bool{}
	s.removeSpaceLocked(id, removed)
	s.afterRemoveLocked(removed)
	return nil
}

func (s *Store) Spaces(workspaceID string) ([]model.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return nil, NotFoundError{Kind: "workspace", ID: workspaceID}
	}
	out := make([]model.Space, 0, len(ws.SpaceIDs))
	for _, id := range ws.SpaceIDs {
		out = append(out, s.spaces[id].Clone())
	}
	return out, nil
}

func (s *Store) Space(id string) (model.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, err := s.spaceLocked("", id)
	if err != nil {
		return model.Space{}, err
	}
	return sp.Clone(), nil
}

func (s *Store) spaceLocked(workspaceID, id string) (*model.Space, error) {
	sp, ok := s.spaces[id]
	if !ok || (workspaceID != "" && sp.WorkspaceID != workspaceID) {
		return nil, NotFoundError{Kind: "space", ID: id, Parent: workspaceID}
	}
	return sp, nil
}
