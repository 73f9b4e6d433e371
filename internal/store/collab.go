package store

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"workboard/internal/model"
)

type CommentInput struct {
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy"`
}

type ChecklistInput struct {
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
}

type CustomFieldInput struct {
	Name  string          `json:"name"`
	Type  model.FieldType `json:"type"`
	Value json.RawMessage `json:"value"`
}

// mutateTask runs fn on the task under the write lock and refreshes updatedAt when fn succeeds.
func (s *Store) mutateTask(taskID string, fn func(t *model.Task) error) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.taskLocked("", taskID)
	if err != nil {
		return model.Task{}, err
	}
	if err := fn(t); err != nil {
		return model.Task{}, err
	}
	t.UpdatedAt = s.stamp(t.UpdatedAt)
	s.changedLocked()
	return t.Clone(), nil
}

func (s *Store) AddComment(taskID string, in CommentInput) (model.Task, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Task{}, ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return model.Task{}, ValidationError{Field: "createdBy", Reason: "must not be empty"}
	}
	return s.mutateTask(taskID, func(t *model.Task) error {
		id, err := newRandomID(prefixComment)
		if err != nil {
			return err
		}
		now := s.stamp(timeZero)
		t.Comments = append(t.Comments, model.Comment{
			ID:        id,
			Content:   content,
			CreatedBy: strings.TrimSpace(in.CreatedBy),
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

func (s *Store) AddChecklist(taskID string, in ChecklistInput) (model.Task, error) {
	title, err := checkName("title", in.Title, maxTitleLen)
	if err != nil {
		return model.Task{}, err
	}
	return s.mutateTask(taskID, func(t *model.Task) error {
		id, err := newRandomID(prefixChecklist)
		if err != nil {
			return err
		}
		c := model.Checklist{ID: id, Title: title, Items: []model.ChecklistItem{}}
		for _, content := range in.Items {
			content = strings.TrimSpace(content)
			if content == "" {
				continue
			}
			iid, err := newRandomID(prefixItem)
			if err != nil {
				return err
			}
			c.Items = append(c.Items, model.ChecklistItem{ID: iid, Content: content})
		}
		t.Checklists = append(t.Checklists, c)
		return nil
	})
}

// SetChecklistItem marks one checklist item completed or open.
func (s *Store) SetChecklistItem(taskID, checklistID, itemID string, completed bool) (model.Task, error) {
	return s.mutateTask(taskID, func(t *model.Task) error {
		for ci := range t.Checklists {
			c := &t.Checklists[ci]
			if c.ID != checklistID {
				continue
			}
			for ii := range c.Items {
				if c.Items[ii].ID == itemID {
					c.Items[ii].IsCompleted = completed
					return nil
				}
			}
			return NotFoundError{Kind: "checklist item", ID: itemID, Parent: checklistID}
		}
		return NotFoundError{Kind: "checklist", ID: checklistID, Parent: taskID}
	})
}

// AddCustomField sets a named field on the task, replacing an existing field of the same name.
func (s *Store) AddCustomField(taskID string, in CustomFieldInput) (model.Task, error) {
	name, err := checkName("name", in.Name, maxNameLen)
	if err != nil {
		return model.Task{}, err
	}
	if err := checkFieldValue(in.Type, in.Value); err != nil {
		return model.Task{}, err
	}
	value := append(json.RawMessage(nil), in.Value...)
	return s.mutateTask(taskID, func(t *model.Task) error {
		for i := range t.CustomFields {
			if strings.EqualFold(t.CustomFields[i].Name, name) {
				t.CustomFields[i].Type = in.Type
				t.CustomFields[i].Value = value
				return nil
			}
		}
		id, err := newRandomID(prefixField)
		if err != nil {
			return err
		}
		t.CustomFields = append(t.CustomFields, model.CustomField{ID: id, Name: name, Type: in.Type, Value: value})
		return nil
	})
}

func checkFieldValue(typ model.FieldType, raw json.RawMessage) error {
	if !typ.Valid() {
		return ValidationError{Field: "type", Reason: "expected text|number|date|select|user"}
	}
	if len(raw) == 0 || !json.Valid(raw) {
		return ValidationError{Field: "value", Reason: "must be valid JSON"}
	}
	bad := ValidationError{Field: "value", Reason: "does not match type " + string(typ)}
	switch typ {
	case model.FieldText:
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return bad
		}
	case model.FieldNumber:
		var v float64
		if json.Unmarshal(raw, &v) != nil {
			return bad
		}
	case model.FieldDate:
		var v string
		if json.Unmarshal(raw, &v) != nil {
			return bad
		}
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			if _, err := time.Parse(time.DateOnly, v); err != nil {
				return bad
			}
		}
	case model.FieldSelect:
		var v struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		}
		if json.Unmarshal(raw, &v) != nil || v.ID == "" {
			var str string
			if json.Unmarshal(raw, &str) != nil || str == "" {
				return bad
			}
		}
	case model.FieldUser:
		var one string
		if json.Unmarshal(raw, &one) == nil {
			return nil
		}
		var many []string
		if json.Unmarshal(raw, &many) != nil {
			return bad
		}
	}
	return nil
}

// UpdateTimeTracking records the total minutes spent on a task.
func (s *Store) UpdateTimeTracking(taskID string, minutes int) (model.Task, error) {
	if err := checkMinutes("timeSpent", &minutes); err != nil {
		return model.Task{}, err
	}
	return s.mutateTask(taskID, func(t *model.Task) error {
		v := minutes
		t.TimeSpent = &v
		return nil
	})
}

// AddDependency records that taskID depends on dependsOnID. Self references and cycles are rejected.
func (s *Store) AddDependency(taskID, dependsOnID string) (model.Task, error) {
	return s.mutateTask(taskID, func(t *model.Task) error {
		if _, ok := s.tasks[dependsOnID]; !ok {
			return NotFoundError{Kind: "task", ID: dependsOnID}
		}
		if dependsOnID == t.ID || s.dependsOnLocked(dependsOnID, t.ID, map[string]bool{}) {
			return ErrDependencyCycle
		}
		t.Dependencies = appendUnique(t.Dependencies, dependsOnID)
		return nil
	})
}

// dependsOnLocked reports whether from reaches target through dependency edges.
func (s *Store) dependsOnLocked(from, target string, seen map[string]bool) bool {
	if from == target {
		return true
	}
	if seen[from] {
		return false
	}
	seen[from] = true
	t, ok := s.tasks[from]
	if !ok {
		return false
	}
	for _, d := range t.Dependencies {
		if s.dependsOnLocked(d, target, seen) {
			return true
		}
	}
	return false
}

func (s *Store) AddAttachment(taskID, rawURL string) (model.Task, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.Task{}, ValidationError{Field: "url", Reason: "expected an http(s) URL"}
	}
	return s.mutateTask(taskID, func(t *model.Task) error {
		t.Attachments = append(t.Attachments, rawURL)
		return nil
	})
}
