package store

import (
	"fmt"
	"strings"

	"workboard/internal/model"
)

// CreateList appends a list to spaceID, or to the current space when empty.
func (s *Store) CreateList(spaceID string, in ListInput) (model.List, error) {
	name, err := checkName("name", in.Name, maxNameLen)
	if err != nil {
		return model.List{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if spaceID == "" {
		if spaceID = s.cur.SpaceID; spaceID == "" {
			return model.List{}, fmt.Errorf("%w: space", ErrNoSelection)
		}
	}
	sp, ok := s.spaces[spaceID]
	if !ok {
		return model.List{}, NotFoundError{Kind: "space", ID: spaceID}
	}
	id, err := s.nextIDLocked(prefixList)
	if err != nil {
		return model.List{}, err
	}
	now := s.stamp(timeZero)
	l := &model.List{
		ID:        id,
		SpaceID:   sp.ID,
		Name:      name,
		Color:     strings.TrimSpace(in.Color),
		TaskIDs:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.lists[id] = l
	sp.ListIDs = append(sp.ListIDs, id)
	s.changedLocked()
	return l.Clone(), nil
}

func (s *Store) UpdateList(spaceID, id string, p ListPatch) (model.List, error) {
	var name string
	if p.Name != nil {
		n, err := checkName("name", *p.Name, maxNameLen)
		if err != nil {
			return model.List{}, err
		}
		name = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.listLocked(spaceID, id)
	if err != nil {
		return model.List{}, err
	}
	if p.empty() {
		return l.Clone(), nil
	}
	if p.Name != nil {
		l.Name = name
	}
	if p.Color != nil {
		l.Color = strings.TrimSpace(*p.Color)
	}
	l.UpdatedAt = s.stamp(l.UpdatedAt)
	s.changedLocked()
	return l.Clone(), nil
}

func (s *Store) DeleteList(spaceID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.listLocked(spaceID, id)
	if err != nil {
		return err
	}
	sp := s.spaces[l.SpaceID]
	sp.ListIDs = removeID(sp.ListIDs, id)
	removed := map[string]bool{}
	s.removeListLocked(id, removed)
	s.afterRemoveLocked(removed)
	return nil
}

func (s *Store) Lists(spaceID string) ([]model.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.spaces[spaceID]
	if !ok {
		return nil, NotFoundError{Kind: "space", ID: spaceID}
	}
	out := make([]model.List, 0, len(sp.ListIDs))
	for _, id := range sp.ListIDs {
		out = append(out, s.lists[id].Clone())
	}
	return out, nil
}

func (s *Store) List(id string) (model.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, err := s.listLocked("", id)
	if err != nil {
		return model.List{}, err
	}
	return l.Clone(), nil
}

func (s *Store) listLocked(spaceID, id string) (*model.List, error) {
	l, ok := s.lists[id]
	if !ok || (spaceID != "" && l.SpaceID != spaceID) {
		return nil, NotFoundError{Kind: "list", ID: id, Parent: spaceID}
	}
	return l, nil
}
