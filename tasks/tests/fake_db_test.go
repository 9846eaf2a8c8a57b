package tests

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextCategoryID int64
	nextTagID      int64
	nextTaskID     int64

	categories map[int64]core.Category
	tags       map[int64]core.Tag
	tasks      map[int64]core.Task
	taskTags   map[int64][]int64

	// writes counts CreateTask, UpdateTask and DeleteTask calls.
	writes  int
	pingErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextCategoryID: 1,
		nextTagID:      1,
		nextTaskID:     1,
		categories:     make(map[int64]core.Category),
		tags:           make(map[int64]core.Tag),
		tasks:          make(map[int64]core.Task),
		taskTags:       make(map[int64][]int64),
	}
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	out.Tags = slices.Clone(t.Tags)
	return out
}

func (db *fakeDB) addCategory(name string) core.Category {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := core.Category{ID: db.nextCategoryID, Name: name, CreatedAt: time.Now()}
	db.nextCategoryID++
	db.categories[c.ID] = c
	return c
}

func (db *fakeDB) addTag(name string) core.Tag {
	db.mu.Lock()
	defer db.mu.Unlock()

	t := core.Tag{ID: db.nextTagID, Name: name, CreatedAt: time.Now()}
	db.nextTagID++
	db.tags[t.ID] = t
	return t
}

func (db *fakeDB) writeCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.writes
}

func (db *fakeDB) Ping(context.Context) error {
	return db.pingErr
}

func (db *fakeDB) GetCategory(_ context.Context, id int64) (core.Category, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	category, ok := db.categories[id]
	if !ok {
		return core.Category{}, core.ErrCategoryNotFound
	}
	return category, nil
}

func (db *fakeDB) ListCategories(context.Context) ([]core.Category, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Category, 0, len(db.categories))
	for _, category := range db.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) ListTags(context.Context) ([]core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Tag, 0, len(db.tags))
	for _, tag := range db.tags {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) FindTags(_ context.Context, ids []int64) ([]core.Tag, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := []core.Tag{}
	for _, id := range ids {
		if tag, ok := db.tags[id]; ok {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// withTags must be called with db.mu held.
func (db *fakeDB) withTags(t core.Task) core.Task {
	out := cloneTask(t)
	out.Tags = []core.Tag{}
	for _, id := range db.taskTags[t.ID] {
		out.Tags = append(out.Tags, db.tags[id])
	}
	return out
}

// setTags must be called with db.mu held.
func (db *fakeDB) setTags(taskID int64, tagIDs []int64) error {
	ids := slices.Clone(tagIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if _, ok := db.tags[id]; !ok {
			return core.ErrTaskInvalidArgs
		}
	}
	db.taskTags[taskID] = ids
	return nil
}

func (db *fakeDB) CreateTask(_ context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	if strings.TrimSpace(t.Title) == "" || t.UserID <= 0 {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.writes++

	if _, ok := db.categories[t.CategoryID]; !ok {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	t.ID = db.nextTaskID
	if err := db.setTags(t.ID, tagIDs); err != nil {
		return core.Task{}, err
	}
	db.nextTaskID++

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Tags = nil

	db.tasks[t.ID] = cloneTask(t)
	return db.withTags(t), nil
}

func (db *fakeDB) GetTask(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return db.withTags(task), nil
}

func (db *fakeDB) ListTasks(_ context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if task.UserID != f.UserID {
			continue
		}
		if f.CategoryID != nil && task.CategoryID != *f.CategoryID {
			continue
		}
		if f.Priority != nil && task.Priority != *f.Priority {
			continue
		}
		out = append(out, db.withTags(task))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	if t.ID <= 0 || strings.TrimSpace(t.Title) == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.writes++

	current, ok := db.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	if _, ok := db.categories[t.CategoryID]; !ok {
		return core.Task{}, core.ErrTaskInvalidArgs
	}
	if err := db.setTags(t.ID, tagIDs); err != nil {
		return core.Task{}, err
	}

	t.UserID = current.UserID
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = time.Now()
	t.Tags = nil

	db.tasks[t.ID] = cloneTask(t)
	return db.withTags(t), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.writes++

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}

	delete(db.tasks, id)
	delete(db.taskTags, id)
	return nil
}

var _ core.DB = (*fakeDB)(nil)
