package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mmbalbas1132/Task-Management-System/tasks/adapters/rest"
	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
	"github.com/mmbalbas1132/Task-Management-System/tasks/pkg/res"
)

const (
	msgCreated = "task created successfully"
	msgUpdated = "task updated successfully"
	msgDeleted = "task deleted successfully"
)

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parsePriority(s string) (core.Priority, bool) {
	switch p := core.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case core.PriorityLow, core.PriorityMedium, core.PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

func NewListTasksHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f core.ListTasksFilter

		if v := c.QueryParam("category_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				return res.Error(c, "invalid category_id", http.StatusBadRequest)
			}
			f.CategoryID = &id
		}

		if v := c.QueryParam("priority"); v != "" {
			p, ok := parsePriority(v)
			if !ok {
				return res.Error(c, "invalid priority", http.StatusBadRequest)
			}
			f.Priority = &p
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, rest.UserID(c), f)
		if err != nil {
			return rest.WriteErr(c, log, err)
		}
		return res.Json(c, map[string]any{"tasks": rest.TasksFromCore(items)}, http.StatusOK)
	}
}

func NewTaskFormHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		form, err := svc.NewTaskForm(ctx)
		if err != nil {
			return rest.WriteErr(c, log, err)
		}
		return res.Json(c, rest.FormFromCore(form), http.StatusOK)
	}
}

func NewCreateTaskHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in rest.TaskIn
		if err := c.Bind(&in); err != nil {
			return res.Error(c, "invalid request body", http.StatusBadRequest)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, rest.UserID(c), in.ToCore())
		if err != nil {
			return rest.WriteErr(c, log, err)
		}

		log.Info("task created", "id", t.ID, "user_id", t.UserID)
		c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/tasks/%d", t.ID))
		return res.Message(c, msgCreated, http.StatusCreated, map[string]any{"task": rest.TaskFromCore(t)})
	}
}

func NewGetTaskHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return res.Error(c, "invalid id", http.StatusBadRequest)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, rest.UserID(c), id)
		if err != nil {
			return rest.WriteErr(c, log, err)
		}
		return res.Json(c, rest.TaskFromCore(t), http.StatusOK)
	}
}

func NewEditTaskFormHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return res.Error(c, "invalid id", http.StatusBadRequest)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		form, err := svc.EditTaskForm(ctx, rest.UserID(c), id)
		if err != nil {
			return rest.WriteErr(c, log, err)
		}
		return res.Json(c, rest.FormFromCore(form), http.StatusOK)
	}
}

func NewUpdateTaskHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return res.Error(c, "invalid id", http.StatusBadRequest)
		}

		var in rest.TaskIn
		if err := c.Bind(&in); err != nil {
			return res.Error(c, "invalid request body", http.StatusBadRequest)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		t, err := svc.UpdateTask(ctx, rest.UserID(c), id, in.ToCore())
		if err != nil {
			return rest.WriteErr(c, log, err)
		}

		log.Info("task updated", "id", t.ID, "user_id", rest.UserID(c))
		return res.Message(c, msgUpdated, http.StatusOK, map[string]any{"task": rest.TaskFromCore(t)})
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc core.Tasks, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return res.Error(c, "invalid id", http.StatusBadRequest)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, rest.UserID(c), id); err != nil {
			return rest.WriteErr(c, log, err)
		}

		log.Info("task deleted", "id", id, "user_id", rest.UserID(c))
		return res.Message(c, msgDeleted, http.StatusOK, nil)
	}
}
