// Package domain defines the persistence models for organizations, projects,
// tasks and comments, plus the integration log and settings tables. These
// types are mapped with GORM and shared by the repository, service and
// integration layers.
package domain

import (
	"time"
)

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
)

// TaskStatus is the lifecycle state of a Task. TaskDone is terminal for
// notification purposes.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the known task states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Valid reports whether s is one of the known project states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Organization is the top-level tenant. Slug doubles as the chat channel name.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name: display name.
//   - Slug: unique URL-safe key, derived from Name when empty.
//   - ContactEmail: fallback contact for the tenant.
type Organization struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(100);not null"`
	Slug         string    `json:"slug"          gorm:"type:varchar(120);not null;uniqueIndex"`
	ContactEmail string    `json:"contact_email" gorm:"type:varchar(254);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Organization.
func (Organization) TableName() string { return "organizations" }

// Project is a named unit of work within an Organization.
type Project struct {
	ID             uint          `json:"id"              gorm:"primaryKey"`
	OrganizationID uint          `json:"organization_id" gorm:"not null;index:idx_project_org_status,priority:1"`
	Name           string        `json:"name"            gorm:"type:varchar(200);not null"`
	Description    string        `json:"description"     gorm:"type:text"`
	Status         ProjectStatus `json:"status"          gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_project_org_status,priority:2"`
	DueDate        *time.Time    `json:"due_date,omitempty" gorm:"index"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Organization *Organization `json:"-" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Project.
func (Project) TableName() string { return "projects" }

// Task is a trackable unit of work within a Project. AssigneeEmail is empty
// when unassigned.
type Task struct {
	ID            uint       `json:"id"             gorm:"primaryKey"`
	ProjectID     uint       `json:"project_id"     gorm:"not null;index:idx_task_project_status,priority:1"`
	Title         string     `json:"title"          gorm:"type:varchar(200);not null"`
	Description   string     `json:"description"    gorm:"type:text"`
	Status        TaskStatus `json:"status"         gorm:"type:varchar(20);not null;default:'TODO';index:idx_task_project_status,priority:2"`
	AssigneeEmail string     `json:"assignee_email" gorm:"type:varchar(254);index"`
	DueDate       *time.Time `json:"due_date,omitempty" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Task.
func (Task) TableName() string { return "tasks" }

// Organization returns the owning organization through the loaded Project,
// or nil when the association was not preloaded.
func (t *Task) Organization() *Organization {
	if t == nil || t.Project == nil {
		return nil
	}
	return t.Project.Organization
}

// IsOverdue reports whether the task has a due date before now and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != TaskDone
}

// TaskComment is a timestamped remark attached to a Task.
type TaskComment struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	TaskID      uint      `json:"task_id"      gorm:"not null;index:idx_comment_task_ts,priority:1"`
	Content     string    `json:"content"      gorm:"type:text;not null"`
	AuthorEmail string    `json:"author_email" gorm:"type:varchar(254);not null;index"`
	Timestamp   time.Time `json:"timestamp"    gorm:"autoCreateTime;index:idx_comment_task_ts,priority:2"`

	Task *Task `json:"-" gorm:"foreignKey:TaskID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for TaskComment.
func (TaskComment) TableName() string { return "task_comments" }
