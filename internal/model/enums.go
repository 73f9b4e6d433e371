package model

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// ParseTaskStatus accepts both status vocabularies seen in imported data
// (todo|in-progress|review|completed|blocked and TODO|IN_PROGRESS|COMPLETED|CANCELLED).
func ParseTaskStatus(s string) (TaskStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	switch norm {
	case "", "todo":
		return StatusTodo, nil
	case "in-progress", "doing":
		return StatusInProgress, nil
	case "review":
		return StatusReview, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "blocked", "cancelled", "canceled":
		return StatusBlocked, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected todo|in-progress|review|completed|blocked)", s)
	}
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNormal, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority: %q (expected urgent|high|medium|normal|low)", s)
	}
	return p, nil
}

type SpaceColor string

const (
	ColorPurple SpaceColor = "purple"
	ColorBlue   SpaceColor = "blue"
	ColorGreen  SpaceColor = "green"
	ColorYellow SpaceColor = "yellow"
	ColorRed    SpaceColor = "red"
	ColorPink   SpaceColor = "pink"
)

func (c SpaceColor) Valid() bool {
	switch c {
	case ColorPurple, ColorBlue, ColorGreen, ColorYellow, ColorRed, ColorPink:
		return true
	}
	return false
}

func ParseSpaceColor(s string) (SpaceColor, error) {
	c := SpaceColor(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return ColorPurple, nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("invalid color: %q (expected purple|blue|green|yellow|red|pink)", s)
	}
	return c, nil
}

// ViewType is the visual mode a space is rendered in.
type ViewType string

const (
	ViewList     ViewType = "list"
	ViewBoard    ViewType = "board"
	ViewCalendar ViewType = "calendar"
	ViewGantt    ViewType = "gantt"
	ViewTimeline ViewType = "timeline"
)

func (v ViewType) Valid() bool {
	switch v {
	case ViewList, ViewBoard, ViewCalendar, ViewGantt, ViewTimeline:
		return true
	}
	return false
}

func ParseViewType(s string) (ViewType, error) {
	v := ViewType(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("invalid view: %q (expected list|board|calendar|gantt|timeline)", s)
	}
	return v, nil
}

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
	FieldUser   FieldType = "user"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldSelect, FieldUser:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserSuspended:
		return true
	}
	return false
}
