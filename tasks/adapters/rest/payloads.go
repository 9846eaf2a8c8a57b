package rest

import (
	"time"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

// TaskIn is accepted as JSON or as a form; tags repeat in forms.
type TaskIn struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	CategoryID  int64   `json:"category_id" form:"category_id"`
	Priority    string  `json:"priority" form:"priority"`
	DueDate     string  `json:"due_date" form:"due_date"`
	Tags        []int64 `json:"tags" form:"tags"`
}

func (in TaskIn) ToCore() core.TaskInput {
	return core.TaskInput{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		TagIDs:      in.Tags,
	}
}

type TaskOut struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CategoryID  int64      `json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *string    `json:"due_date"` // YYYY-MM-DD
	Tags        []core.Tag `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func TaskFromCore(t core.Task) TaskOut {
	var due *string
	if t.DueDate != nil {
		s := t.DueDate.Format(time.DateOnly)
		due = &s
	}

	tags := t.Tags
	if tags == nil {
		tags = []core.Tag{}
	}

	return TaskOut{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		DueDate:     due,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TasksFromCore(items []core.Task) []TaskOut {
	out := make([]TaskOut, 0, len(items))
	for _, t := range items {
		out = append(out, TaskFromCore(t))
	}
	return out
}

type FormOut struct {
	Task       *TaskOut        `json:"task,omitempty"`
	Categories []core.Category `json:"categories"`
	Tags       []core.Tag      `json:"tags"`
}

func FormFromCore(f core.TaskForm) FormOut {
	out := FormOut{
		Categories: f.Categories,
		Tags:       f.Tags,
	}
	if out.Categories == nil {
		out.Categories = []core.Category{}
	}
	if out.Tags == nil {
		out.Tags = []core.Tag{}
	}
	if f.Task != nil {
		t := TaskFromCore(*f.Task)
		out.Task = &t
	}
	return out
}
