package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// DB is the storage port. CreateTask, UpdateTask and DeleteTask write the
// task row and its tag membership in one transaction.
type DB interface {
	Pinger

	// categories and tags are read-only here
	GetCategory(ctx context.Context, id int64) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListTags(ctx context.Context) ([]Tag, error)
	FindTags(ctx context.Context, ids []int64) ([]Tag, error)

	// tasks
	CreateTask(ctx context.Context, t Task, tagIDs []int64) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t Task, tagIDs []int64) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Tasks is the task resource as seen by transports.
type Tasks interface {
	Pinger

	ListTasks(ctx context.Context, userID int64, f ListTasksFilter) ([]Task, error)
	NewTaskForm(ctx context.Context) (TaskForm, error)
	CreateTask(ctx context.Context, userID int64, in TaskInput) (Task, error)
	GetTask(ctx context.Context, userID, id int64) (Task, error)
	EditTaskForm(ctx context.Context, userID, id int64) (TaskForm, error)
	UpdateTask(ctx context.Context, userID, id int64, in TaskInput) (Task, error)
	DeleteTask(ctx context.Context, userID, id int64) error
}
