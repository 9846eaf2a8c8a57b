package handlers

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

func Register(e *echo.Echo, log *slog.Logger, svc core.Tasks, auth echo.MiddlewareFunc, timeout time.Duration) {
	// ping
	e.GET("/ping", NewPingHandler(log, map[string]core.Pinger{"db": svc}, timeout))

	// tasks
	g := e.Group("/tasks", auth)
	g.GET("", NewListTasksHandler(log, svc, timeout))
	g.GET("/create", NewTaskFormHandler(log, svc, timeout))
	g.POST("", NewCreateTaskHandler(log, svc, timeout))
	g.GET("/:id", NewGetTaskHandler(log, svc, timeout))
	g.GET("/:id/edit", NewEditTaskFormHandler(log, svc, timeout))
	g.PUT("/:id", NewUpdateTaskHandler(log, svc, timeout))
	g.PATCH("/:id", NewUpdateTaskHandler(log, svc, timeout))
	g.DELETE("/:id", NewDeleteTaskHandler(log, svc, timeout))
}
