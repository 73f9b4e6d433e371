package store

import "workboard/internal/model"

// View returns the active view mode. It defaults to list.
func (s *Store) View() model.ViewType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView changes the active view mode. It never touches the entity tree.
func (s *Store) SetView(v model.ViewType) error {
	if !v.Valid() {
		return ValidationError{Field: "view", Reason: "expected list|board|calendar|gantt|timeline"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == v {
		return nil
	}
	s.view = v
	s.changedLocked()
	return nil
}
