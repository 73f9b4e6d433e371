package model

import (
	"encoding/json"
	"time"
)

type Workspace struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	SpaceIDs    []string `json:"spaceIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Space struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	Name        string     `json:"name"`
	Color       SpaceColor `json:"color"`
	ListIDs     []string   `json:"listIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type List struct {
	ID      string `json:"id"`
	SpaceID string `json:"spaceId"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`

	// TaskIDs holds top-level tasks only; subtasks hang off their parent task.
	TaskIDs []string `json:"taskIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Task struct {
	ID     string `json:"id"`
	ListID string `json:"listId"`

	ParentID   *string  `json:"parentId,omitempty"`
	SubtaskIDs []string `json:"subtaskIds"`

	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Assignees   []string   `json:"assignees"`
	Tags        []string   `json:"tags"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`

	Checklists   []Checklist   `json:"checklists"`
	Comments     []Comment     `json:"comments"`
	CustomFields []CustomField `json:"customFields"`

	// Minutes.
	TimeEstimate *int `json:"timeEstimate,omitempty"`
	TimeSpent    *int `json:"timeSpent,omitempty"`

	Dependencies []string `json:"dependencies"`
	Attachments  []string `json:"attachments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Checklist struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

type ChecklistItem struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	IsCompleted bool       `json:"isCompleted"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type CustomField struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  FieldType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	DisplayName  string     `json:"displayName,omitempty"`
	PasswordHash string     `json:"passwordHash"`
	Avatar       string     `json:"avatar,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	Status       UserStatus `json:"status"`
	Timezone     string     `json:"timezone"`
	Language     string     `json:"language"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips credentials before a user leaves the process boundary.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
