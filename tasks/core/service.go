package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	db               DB
	enforceOwnership bool
}

type Option func(*Service)

// WithOwnershipCheck makes GetTask, EditTaskForm, UpdateTask and DeleteTask
// report tasks owned by another user as ErrTaskNotFound. ListTasks is always
// owner-scoped.
func WithOwnershipCheck(enabled bool) Option {
	return func(s *Service) {
		s.enforceOwnership = enabled
	}
}

func NewService(db DB, opts ...Option) *Service {
	s := &Service{
		db:               db,
		enforceOwnership: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Tasks = (*Service)(nil)

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) ListTasks(ctx context.Context, userID int64, f ListTasksFilter) ([]Task, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	if f.CategoryID != nil && *f.CategoryID <= 0 {
		return nil, fieldError("category_id", "must be a positive id")
	}
	if f.Priority != nil && !isValidPriority(*f.Priority) {
		return nil, fieldError("priority", "must be one of: low, medium, high")
	}

	f.UserID = userID
	return s.db.ListTasks(ctx, f)
}

func (s *Service) NewTaskForm(ctx context.Context) (TaskForm, error) {
	return s.form(ctx, nil)
}

func (s *Service) CreateTask(ctx context.Context, userID int64, in TaskInput) (Task, error) {
	if userID <= 0 {
		return Task{}, ErrUnauthenticated
	}

	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Task{}, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return Task{}, err
	}

	t := Task{UserID: userID}
	applyInput(&t, in)

	return s.db.CreateTask(ctx, t, in.TagIDs)
}

func (s *Service) GetTask(ctx context.Context, userID, id int64) (Task, error) {
	if userID <= 0 {
		return Task{}, ErrUnauthenticated
	}
	if id <= 0 {
		return Task{}, ErrTaskNotFound
	}
	return s.ownedTask(ctx, userID, id)
}

func (s *Service) EditTaskForm(ctx context.Context, userID, id int64) (TaskForm, error) {
	t, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return TaskForm{}, err
	}
	return s.form(ctx, &t)
}

func (s *Service) UpdateTask(ctx context.Context, userID, id int64, in TaskInput) (Task, error) {
	if userID <= 0 {
		return Task{}, ErrUnauthenticated
	}

	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return Task{}, err
	}

	if id <= 0 {
		return Task{}, ErrTaskNotFound
	}
	cur, err := s.ownedTask(ctx, userID, id)
	if err != nil {
		return Task{}, err
	}

	if err := s.checkReferences(ctx, in); err != nil {
		return Task{}, err
	}

	applyInput(&cur, in)

	return s.db.UpdateTask(ctx, cur, in.TagIDs)
}

func (s *Service) DeleteTask(ctx context.Context, userID, id int64) error {
	if userID <= 0 {
		return ErrUnauthenticated
	}
	if id <= 0 {
		return ErrTaskNotFound
	}
	if s.enforceOwnership {
		if _, err := s.ownedTask(ctx, userID, id); err != nil {
			return err
		}
	}
	return s.db.DeleteTask(ctx, id)
}

// Helpers

func (s *Service) ownedTask(ctx context.Context, userID, id int64) (Task, error) {
	t, err := s.db.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if s.enforceOwnership && t.UserID != userID {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *Service) form(ctx context.Context, t *Task) (TaskForm, error) {
	categories, err := s.db.ListCategories(ctx)
	if err != nil {
		return TaskForm{}, err
	}
	tags, err := s.db.ListTags(ctx)
	if err != nil {
		return TaskForm{}, err
	}
	return TaskForm{Task: t, Categories: categories, Tags: tags}, nil
}

// checkReferences verifies that the category and every tag in in exist.
func (s *Service) checkReferences(ctx context.Context, in TaskInput) error {
	fields := map[string]string{}

	if _, err := s.db.GetCategory(ctx, in.CategoryID); err != nil {
		if !errors.Is(err, ErrCategoryNotFound) {
			return err
		}
		fields["category_id"] = "category does not exist"
	}

	if len(in.TagIDs) > 0 {
		found, err := s.db.FindTags(ctx, in.TagIDs)
		if err != nil {
			return err
		}
		if missing := missingTagIDs(in.TagIDs, found); len(missing) > 0 {
			fields["tags"] = "unknown tag ids: " + joinIDs(missing)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// applyInput copies a validated input onto t.
func applyInput(t *Task, in TaskInput) {
	t.Title = in.Title
	t.Description = in.Description
	t.CategoryID = in.CategoryID
	t.Priority = Priority(in.Priority)
	t.DueDate = nil
	if in.DueDate != "" {
		// already validated
		d, _ := parseDate(in.DueDate)
		t.DueDate = &d
	}
}

func isValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func missingTagIDs(want []int64, found []Tag) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, t := range found {
		have[t.ID] = struct{}{}
	}

	var out []int64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ", ")
}

