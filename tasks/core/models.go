package core

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	CategoryID  int64      `db:"category_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Priority    Priority   `db:"priority"`
	DueDate     *time.Time `db:"due_date"` // Nil без срока
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	// Tags is loaded alongside the task, ordered by tag id.
	Tags []Tag `db:"-"`
}

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TaskInput is the user-supplied part of a task for create and update.
type TaskInput struct {
	Title       string  `field:"title" validate:"required,max=255"`
	Description string  `field:"description"`
	CategoryID  int64   `field:"category_id" validate:"required,gt=0"`
	Priority    string  `field:"priority" validate:"required,oneof=low medium high"`
	DueDate     string  `field:"due_date" validate:"omitempty,date"`
	TagIDs      []int64 `field:"tags" validate:"dive,gt=0"`
}

// TaskForm carries what a create or edit form needs. Task is nil for a new form.
type TaskForm struct {
	Task       *Task
	Categories []Category
	Tags       []Tag
}

type ListTasksFilter struct {
	UserID     int64
	CategoryID *int64
	Priority   *Priority
}
