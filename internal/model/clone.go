package model

import (
	"encoding/json"
	"time"
)

// Clone methods return deep copies so values handed out by the store never alias its arena.

func (w Workspace) Clone() Workspace {
	w.Members = cloneStrings(w.Members)
	w.SpaceIDs = cloneStrings(w.SpaceIDs)
	return w
}

func (s Space) Clone() Space {
	s.ListIDs = cloneStrings(s.ListIDs)
	return s
}

func (l List) Clone() List {
	l.TaskIDs = cloneStrings(l.TaskIDs)
	return l
}

func (t Task) Clone() Task {
	t.ParentID = cloneStringPtr(t.ParentID)
	t.SubtaskIDs = cloneStrings(t.SubtaskIDs)
	t.Assignees = cloneStrings(t.Assignees)
	t.Tags = cloneStrings(t.Tags)
	t.StartDate = cloneTimePtr(t.StartDate)
	t.DueDate = cloneTimePtr(t.DueDate)
	t.TimeEstimate = cloneIntPtr(t.TimeEstimate)
	t.TimeSpent = cloneIntPtr(t.TimeSpent)
	t.Dependencies = cloneStrings(t.Dependencies)
	t.Attachments = cloneStrings(t.Attachments)

	if t.Checklists != nil {
		out := make([]Checklist, len(t.Checklists))
		for i, c := range t.Checklists {
			out[i] = c.Clone()
		}
		t.Checklists = out
	}
	if t.Comments != nil {
		t.Comments = append([]Comment(nil), t.Comments...)
	}
	if t.CustomFields != nil {
		out := make([]CustomField, len(t.CustomFields))
		for i, f := range t.CustomFields {
			f.Value = append(json.RawMessage(nil), f.Value...)
			out[i] = f
		}
		t.CustomFields = out
	}
	return t
}

func (c Checklist) Clone() Checklist {
	if c.Items == nil {
		return c
	}
	items := make([]ChecklistItem, len(c.Items))
	for i, it := range c.Items {
		it.AssignedTo = cloneStringPtr(it.AssignedTo)
		it.DueDate = cloneTimePtr(it.DueDate)
		items[i] = it
	}
	c.Items = items
	return c
}

func cloneStrings(xs []string) []string {
	if xs == nil {
		return nil
	}
	return append(make([]string, 0, len(xs)), xs...)
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
