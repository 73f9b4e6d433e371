package store

import (
	"strings"
	"time"
	"unicode/utf8"

	"workboard/internal/model"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxTitleLen       = 200
)

type WorkspaceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

type SpaceInput struct {
	Name  string           `json:"name"`
	Color model.SpaceColor `json:"color,omitempty"`
}

type ListInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type TaskInput struct {
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Status       model.TaskStatus `json:"status,omitempty"`
	Priority     model.Priority   `json:"priority,omitempty"`
	Assignees    []string         `json:"assignees,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	StartDate    *time.Time       `json:"startDate,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	TimeEstimate *int             `json:"timeEstimate,omitempty"`
}

// Patches carry only the fields to change; nil fields are preserved.

type WorkspacePatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Members     *[]string `json:"members,omitempty"`
}

type SpacePatch struct {
	Name  *string           `json:"name,omitempty"`
	Color *model.SpaceColor `json:"color,omitempty"`
}

type ListPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type TaskPatch struct {
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Status       *model.TaskStatus `json:"status,omitempty"`
	Priority     *model.Priority   `json:"priority,omitempty"`
	Assignees    *[]string         `json:"assignees,omitempty"`
	Tags         *[]string         `json:"tags,omitempty"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	TimeEstimate *int              `json:"timeEstimate,omitempty"`

	ClearStartDate bool `json:"clearStartDate,omitempty"`
	ClearDueDate   bool `json:"clearDueDate,omitempty"`
}

func (p WorkspacePatch) empty() bool {
	return p.Name == nil && p.Description == nil && p.Members == nil
}

func (p SpacePatch) empty() bool { return p.Name == nil && p.Color == nil }

func (p ListPatch) empty() bool { return p.Name == nil && p.Color == nil }

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil &&
		p.Assignees == nil && p.Tags == nil && p.StartDate == nil && p.DueDate == nil &&
		p.TimeEstimate == nil && !p.ClearStartDate && !p.ClearDueDate
}

func checkName(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(v) > max {
		return "", ValidationError{Field: field, Reason: "too long"}
	}
	return v, nil
}

func checkDescription(v string) error {
	if utf8.RuneCountInString(v) > maxDescriptionLen {
		return ValidationError{Field: "description", Reason: "too long"}
	}
	return nil
}

func checkStatus(st model.TaskStatus) (model.TaskStatus, error) {
	out, err := model.ParseTaskStatus(string(st))
	if err != nil {
		return "", ValidationError{Field: "status", Reason: err.Error()}
	}
	return out, nil
}

func checkPriority(p model.Priority) (model.Priority, error) {
	out, err := model.ParsePriority(string(p))
	if err != nil {
		return "", ValidationError{Field: "priority", Reason: err.Error()}
	}
	return out, nil
}

func checkSpaceColor(c model.SpaceColor) (model.SpaceColor, error) {
	out, err := model.ParseSpaceColor(string(c))
	if err != nil {
		return "", ValidationError{Field: "color", Reason: err.Error()}
	}
	return out, nil
}

func checkMinutes(field string, v *int) error {
	if v != nil && *v < 0 {
		return ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func checkDates(start, due *time.Time) error {
	if start != nil && due != nil && due.Before(*start) {
		return ValidationError{Field: "dueDate", Reason: "before startDate"}
	}
	return nil
}

// cleanStrings trims entries and drops blanks and duplicates, keeping order.
func cleanStrings(xs []string) []string {
	out := make([]string, 0, len(xs))
	seen := map[string]bool{}
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
