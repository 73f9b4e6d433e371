package store

import (
	"fmt"
	"strings"

	"workboard/internal/model"
)

// CreateTask appends a top-level task to listID, or to the current list when empty.
func (s *Store) CreateTask(listID string, in TaskInput) (model.Task, error) {
	t, err := newTask(in)
	if err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if listID == "" {
		if listID = s.cur.ListID; listID == "" {
			return model.Task{}, fmt.Errorf("%w: list", ErrNoSelection)
		}
	}
	l, ok := s.lists[listID]
	if !ok {
		return model.Task{}, NotFoundError{Kind: "list", ID: listID}
	}
	if err := s.insertTaskLocked(t, l.ID); err != nil {
		return model.Task{}, err
	}
	l.TaskIDs = append(l.TaskIDs, t.ID)
	s.changedLocked()
	return t.Clone(), nil
}

// CreateSubtask adds a task under parentID (the current task when empty), in the parent's list.
func (s *Store) CreateSubtask(parentID string, in TaskInput) (model.Task, error) {
	t, err := newTask(in)
	if err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if parentID == "" {
		if parentID = s.cur.TaskID; parentID == "" {
			return model.Task{}, fmt.Errorf("%w: task", ErrNoSelection)
		}
	}
	parent, ok := s.tasks[parentID]
	if !ok {
		return model.Task{}, NotFoundError{Kind: "task", ID: parentID}
	}
	pid := parent.ID
	t.ParentID = &pid
	if err := s.insertTaskLocked(t, parent.ListID); err != nil {
		return model.Task{}, err
	}
	parent.SubtaskIDs = append(parent.SubtaskIDs, t.ID)
	s.changedLocked()
	return t.Clone(), nil
}

func newTask(in TaskInput) (*model.Task, error) {
	title, err := checkName("title", in.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	status, err := checkStatus(in.Status)
	if err != nil {
		return nil, err
	}
	priority, err := checkPriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if err := checkMinutes("timeEstimate", in.TimeEstimate); err != nil {
		return nil, err
	}
	if err := checkDates(in.StartDate, in.DueDate); err != nil {
		return nil, err
	}
	t := &model.Task{
		Title:        title,
		Description:  in.Description,
		Status:       status,
		Priority:     priority,
		Assignees:    cleanStrings(in.Assignees),
		Tags:         cleanStrings(in.Tags),
		StartDate:    utcPtr(in.StartDate),
		DueDate:      utcPtr(in.DueDate),
		SubtaskIDs:   []string{},
		Checklists:   []model.Checklist{},
		Comments:     []model.Comment{},
		CustomFields: []model.CustomField{},
		Dependencies: []string{},
		Attachments:  []string{},
	}
	if in.TimeEstimate != nil {
		v := *in.TimeEstimate
		t.TimeEstimate = &v
	}
	return t, nil
}

func (s *Store) insertTaskLocked(t *model.Task, listID string) error {
	id, err := s.nextIDLocked(prefixTask)
	if err != nil {
		return err
	}
	now := s.stamp(timeZero)
	t.ID = id
	t.ListID = listID
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[id] = t
	return nil
}

// UpdateTask patches a task. A non-empty listID must be the task's list.
func (s *Store) UpdateTask(listID, id string, p TaskPatch) (model.Task, error) {
	var (
		title    string
		status   model.TaskStatus
		priority model.Priority
		err      error
	)
	if p.Title != nil {
		if title, err = checkName("title", *p.Title, maxTitleLen); err != nil {
			return model.Task{}, err
		}
	}
	if p.Status != nil {
		if status, err = checkStatus(*p.Status); err != nil {
			return model.Task{}, err
		}
	}
	if p.Priority != nil {
		if priority, err = checkPriority(*p.Priority); err != nil {
			return model.Task{}, err
		}
	}
	if err := checkMinutes("timeEstimate", p.TimeEstimate); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.taskLocked(listID, id)
	if err != nil {
		return model.Task{}, err
	}
	if p.empty() {
		return t.Clone(), nil
	}

	start, due := t.StartDate, t.DueDate
	if p.StartDate != nil {
		start = utcPtr(p.StartDate)
	}
	if p.ClearStartDate {
		start = nil
	}
	if p.DueDate != nil {
		due = utcPtr(p.DueDate)
	}
	if p.ClearDueDate {
		due = nil
	}
	if err := checkDates(start, due); err != nil {
		return model.Task{}, err
	}

	if p.Title != nil {
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = status
	}
	if p.Priority != nil {
		t.Priority = priority
	}
	if p.Assignees != nil {
		t.Assignees = cleanStrings(*p.Assignees)
	}
	if p.Tags != nil {
		t.Tags = cleanStrings(*p.Tags)
	}
	if p.TimeEstimate != nil {
		v := *p.TimeEstimate
		t.TimeEstimate = &v
	}
	t.StartDate, t.DueDate = start, due
	t.UpdatedAt = s.stamp(t.UpdatedAt)
	s.changedLocked()
	return t.Clone(), nil
}

// DeleteTask removes a task with its subtasks and prunes dependencies on them.
func (s *Store) DeleteTask(listID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.taskLocked(listID, id)
	if err != nil {
		return err
	}
	s.detachTaskLocked(t)
	removed := map[string]bool{}
	s.removeTaskLocked(id, removed)
	s.afterRemoveLocked(removed)
	return nil
}

// MoveTask moves a task (with its subtasks) from one list to the end of another.
// A subtask leaves its parent and becomes a top-level task in the destination.
// A current task that leaves the current list is deselected.
func (s *Store) MoveTask(taskID, fromListID, toListID string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[fromListID]; !ok {
		return model.Task{}, NotFoundError{Kind: "list", ID: fromListID}
	}
	t, err := s.taskLocked(fromListID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	dest, ok := s.lists[toListID]
	if !ok {
		return model.Task{}, NotFoundError{Kind: "list", ID: toListID}
	}
	if fromListID == toListID && t.ParentID == nil {
		return t.Clone(), nil
	}

	s.detachTaskLocked(t)
	t.ParentID = nil
	dest.TaskIDs = append(dest.TaskIDs, t.ID)
	s.relistLocked(t, dest.ID)
	s.repairSelectionLocked()
	s.changedLocked()
	return t.Clone(), nil
}

// detachTaskLocked unlinks t from its parent task or list.
func (s *Store) detachTaskLocked(t *model.Task) {
	if t.ParentID != nil {
		if parent, ok := s.tasks[*t.ParentID]; ok {
			parent.SubtaskIDs = removeID(parent.SubtaskIDs, t.ID)
			return
		}
	}
	if l, ok := s.lists[t.ListID]; ok {
		l.TaskIDs = removeID(l.TaskIDs, t.ID)
	}
}

func (s *Store) relistLocked(t *model.Task, listID string) {
	t.ListID = listID
	t.UpdatedAt = s.stamp(t.UpdatedAt)
	for _, cid := range t.SubtaskIDs {
		s.relistLocked(s.tasks[cid], listID)
	}
}

// Tasks returns the top-level tasks of a list, in order.
func (s *Store) Tasks(listID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[listID]
	if !ok {
		return nil, NotFoundError{Kind: "list", ID: listID}
	}
	out := make([]model.Task, 0, len(l.TaskIDs))
	for _, id := range l.TaskIDs {
		out = append(out, s.tasks[id].Clone())
	}
	return out, nil
}

func (s *Store) Task(id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.taskLocked("", id)
	if err != nil {
		return model.Task{}, err
	}
	return t.Clone(), nil
}

func (s *Store) Subtasks(taskID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.taskLocked("", taskID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(t.SubtaskIDs))
	for _, id := range t.SubtaskIDs {
		out = append(out, s.tasks[id].Clone())
	}
	return out, nil
}

// TasksInSpace returns every task of every list in the space, parents before their subtasks.
func (s *Store) TasksInSpace(spaceID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.spaces[spaceID]
	if !ok {
		return nil, NotFoundError{Kind: "space", ID: spaceID}
	}
	out := []model.Task{}
	for _, lid := range sp.ListIDs {
		for _, tid := range s.lists[lid].TaskIDs {
			out = s.appendTaskTreeLocked(out, tid)
		}
	}
	return out, nil
}

func (s *Store) taskLocked(listID, id string) (*model.Task, error) {
	id = strings.TrimSpace(id)
	t, ok := s.tasks[id]
	if !ok || (listID != "" && t.ListID != listID) {
		return nil, NotFoundError{Kind: "task", ID: id, Parent: listID}
	}
	return t, nil
}
