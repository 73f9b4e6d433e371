package store

import "time"

var timeZero time.Time

func (s *Store) removeWorkspaceLocked(id string, removed map[string]bool) {
	ws := s.workspaces[id]
	for _, sid := range ws.SpaceIDs {
		s.removeSpaceLocked(sid, removed)
	}
	delete(s.workspaces, id)
	s.order = removeID(s.order, id)
	removed[id] = true
}

func (s *Store) removeSpaceLocked(id string, removed map[string]bool) {
	sp := s.spaces[id]
	for _, lid := range sp.ListIDs {
		s.removeListLocked(lid, removed)
	}
	delete(s.spaces, id)
	removed[id] = true
}

func (s *Store) removeListLocked(id string, removed map[string]bool) {
	l := s.lists[id]
	for _, tid := range l.TaskIDs {
		s.removeTaskLocked(tid, removed)
	}
	delete(s.lists, id)
	removed[id] = true
}

// removeTaskLocked drops a task and its subtasks from the arena. Detaching from
// the parent collection is the caller's job.
func (s *Store) removeTaskLocked(id string, removed map[string]bool) {
	t := s.tasks[id]
	for _, cid := range t.SubtaskIDs {
		s.removeTaskLocked(cid, removed)
	}
	delete(s.tasks, id)
	removed[id] = true
}

// afterRemoveLocked prunes dependency references to removed tasks, repairs
// the selection and schedules a save.
func (s *Store) afterRemoveLocked(removed map[string]bool) {
	for _, t := range s.tasks {
		n := len(t.Dependencies)
		t.Dependencies = keepKnown(t.Dependencies, func(id string) bool { return !removed[id] })
		if len(t.Dependencies) != n {
			t.UpdatedAt = s.stamp(t.UpdatedAt)
		}
	}
	s.repairSelectionLocked()
	s.changedLocked()
}
